// Package cache holds the in-process read cache for user lookups.
//
// The directory is read-heavy: profile lookups by id and by username vastly
// outnumber writes, so single-user reads are answered from memory once
// fetched. Listings and searches are never cached; their result sets shift
// with every write and caching them would serve stale pages.
package cache

import (
	"sync"

	"github.com/MKhiriev/go-user-directory/models"
)

// UserCache is a dual-keyed in-memory cache of user records. Every entry is
// reachable under both its id and its username, and both keys always point at
// the same snapshot of the record.
//
// Consistency model: writers must call [UserCache.Invalidate] (or
// [UserCache.Clear]) before their change is observable, so the cache never
// outlives the database row it mirrors. Entries have no TTL; the database is
// the only writer of user data, which makes explicit invalidation sufficient.
type UserCache struct {
	mu         sync.RWMutex
	byID       map[int64]models.User
	byUsername map[string]models.User
}

// NewUserCache returns an empty cache ready for use.
func NewUserCache() *UserCache {
	return &UserCache{
		byID:       make(map[int64]models.User),
		byUsername: make(map[string]models.User),
	}
}

// GetByID returns the cached record for id, if present.
func (c *UserCache) GetByID(id int64) (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	user, ok := c.byID[id]
	return user, ok
}

// GetByUsername returns the cached record for username, if present.
func (c *UserCache) GetByUsername(username string) (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	user, ok := c.byUsername[username]
	return user, ok
}

// Put stores one record under both of its keys, replacing any entry those
// keys held before.
func (c *UserCache) Put(user models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID[user.ID] = user
	c.byUsername[user.Username] = user
}

// Invalidate drops every entry belonging to the user with the given id.
//
// The usernames argument carries username keys that may no longer match the
// entry cached under id — after a rename both the old and the new username
// must be passed, otherwise the old name would keep serving the stale record.
func (c *UserCache) Invalidate(id int64, usernames ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if user, ok := c.byID[id]; ok {
		delete(c.byUsername, user.Username)
		delete(c.byID, id)
	}
	for _, username := range usernames {
		if user, ok := c.byUsername[username]; ok {
			delete(c.byID, user.ID)
			delete(c.byUsername, username)
		}
	}
}

// Clear empties the cache entirely.
func (c *UserCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID = make(map[int64]models.User)
	c.byUsername = make(map[string]models.User)
}

// Len reports the number of distinct cached users.
func (c *UserCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.byID)
}
