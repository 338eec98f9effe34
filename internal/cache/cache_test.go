package cache

import (
	"sync"
	"testing"

	"github.com/MKhiriev/go-user-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(id int64, username string) models.User {
	return models.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Enabled:  true,
		Roles:    []models.Role{models.RoleUser},
	}
}

func TestUserCache_PutAndGet(t *testing.T) {
	c := NewUserCache()
	user := testUser(1, "jdoe")

	c.Put(user)

	byID, ok := c.GetByID(1)
	require.True(t, ok)
	assert.Equal(t, user, byID)

	byName, ok := c.GetByUsername("jdoe")
	require.True(t, ok)
	assert.Equal(t, user, byName)

	assert.Equal(t, 1, c.Len())
}

func TestUserCache_MissReturnsFalse(t *testing.T) {
	c := NewUserCache()

	_, ok := c.GetByID(404)
	assert.False(t, ok)

	_, ok = c.GetByUsername("ghost")
	assert.False(t, ok)
}

func TestUserCache_PutReplacesBothKeys(t *testing.T) {
	c := NewUserCache()
	c.Put(testUser(1, "jdoe"))

	renamed := testUser(1, "jdoe")
	renamed.Email = "new@example.com"
	c.Put(renamed)

	byName, ok := c.GetByUsername("jdoe")
	require.True(t, ok)
	assert.Equal(t, "new@example.com", byName.Email)
	assert.Equal(t, 1, c.Len())
}

func TestUserCache_InvalidateDropsBothKeys(t *testing.T) {
	c := NewUserCache()
	c.Put(testUser(1, "jdoe"))

	c.Invalidate(1)

	_, ok := c.GetByID(1)
	assert.False(t, ok)
	_, ok = c.GetByUsername("jdoe")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestUserCache_InvalidateAfterRenameDropsOldUsername(t *testing.T) {
	c := NewUserCache()
	c.Put(testUser(1, "jdoe"))

	// the entry under "jdoe" still carries the pre-rename snapshot; both the
	// old and the new username must stop serving it
	c.Invalidate(1, "jdoe", "johnny")

	_, ok := c.GetByID(1)
	assert.False(t, ok)
	_, ok = c.GetByUsername("jdoe")
	assert.False(t, ok)
	_, ok = c.GetByUsername("johnny")
	assert.False(t, ok)
}

func TestUserCache_InvalidateUnknownIDIsNoop(t *testing.T) {
	c := NewUserCache()
	c.Put(testUser(1, "jdoe"))

	c.Invalidate(999, "ghost")

	assert.Equal(t, 1, c.Len())
}

func TestUserCache_Clear(t *testing.T) {
	c := NewUserCache()
	c.Put(testUser(1, "jdoe"))
	c.Put(testUser(2, "jsmith"))

	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.GetByUsername("jsmith")
	assert.False(t, ok)
}

func TestUserCache_ConcurrentAccess(t *testing.T) {
	c := NewUserCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			c.Put(testUser(id, "user"+string(rune('a'+id%26))))
		}(int64(i))
		go func(id int64) {
			defer wg.Done()
			c.GetByID(id)
			c.Invalidate(id)
		}(int64(i))
	}
	wg.Wait()
}
