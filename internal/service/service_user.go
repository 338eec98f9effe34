package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-directory/internal/cache"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
)

// userService is the concrete implementation of UserService.
// It fronts the UserRepository with an in-memory read cache for single-user
// lookups and keeps that cache consistent across every mutation.
type userService struct {
	// userRepository is the data-access layer used to persist and look up users.
	userRepository store.UserRepository

	// cache answers repeated id/username lookups without a database round
	// trip. Listings bypass it entirely.
	cache *cache.UserCache

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewUserService constructs a UserService wired to the given repository and
// read cache.
//
// The returned service is safe for concurrent use.
func NewUserService(userRepository store.UserRepository, userCache *cache.UserCache, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		cache:          userCache,
		logger:         logger,
	}
}

// FindAll returns one page of the full directory. Results always come from
// the database so that freshly created users appear immediately.
func (s *userService) FindAll(ctx context.Context, page models.PageRequest) (models.Page[models.User], error) {
	log := logger.FromContext(ctx)

	users, total, err := s.userRepository.FindAll(ctx, page)
	if err != nil {
		log.Err(err).Int("page", page.Page).Int("size", page.Size).Msg("user listing failed")
		return models.Page[models.User]{}, fmt.Errorf("user listing failed: %w", err)
	}

	return models.NewPage(users, page.Page, page.Size, total), nil
}

// Search returns one page of users matching term as a case-insensitive
// substring of username, email, first name, or last name. A blank term is
// equivalent to FindAll.
func (s *userService) Search(ctx context.Context, term string, page models.PageRequest) (models.Page[models.User], error) {
	log := logger.FromContext(ctx)

	users, total, err := s.userRepository.FindBySearchTerm(ctx, term, page)
	if err != nil {
		log.Err(err).Str("term", term).Msg("user search failed")
		return models.Page[models.User]{}, fmt.Errorf("user search failed: %w", err)
	}

	return models.NewPage(users, page.Page, page.Size, total), nil
}

// FindByID returns the user with the given id, serving repeated lookups from
// the read cache.
//
// Returns store.ErrUserNotFound (wrapped) when no such user exists.
func (s *userService) FindByID(ctx context.Context, id int64) (models.User, error) {
	if user, ok := s.cache.GetByID(id); ok {
		return user, nil
	}

	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user lookup by id failed")
		return models.User{}, fmt.Errorf("user lookup by id failed: %w", err)
	}

	s.cache.Put(user)
	return user, nil
}

// FindByUsername returns the user with the given username, serving repeated
// lookups from the read cache.
//
// Returns store.ErrUserNotFound (wrapped) when no such user exists.
func (s *userService) FindByUsername(ctx context.Context, username string) (models.User, error) {
	if user, ok := s.cache.GetByUsername(username); ok {
		return user, nil
	}

	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user lookup by username failed")
		return models.User{}, fmt.Errorf("user lookup by username failed: %w", err)
	}

	s.cache.Put(user)
	return user, nil
}

// FindByEmail returns the user with the given email. Email lookups are not
// cached; they are rare compared to id and username lookups.
func (s *userService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user lookup by email failed")
		return models.User{}, fmt.Errorf("user lookup by email failed: %w", err)
	}

	return user, nil
}

// Create persists a new user and returns it with server-assigned fields.
// The whole read cache is dropped afterwards so that no lookup key can serve
// a pre-creation miss or conflict-stale entry.
//
// Returns:
//   - ErrInvalidDataProvided if Username or Email is empty.
//   - store.ErrUserAlreadyExists (wrapped) on a username or email collision.
func (s *userService) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Username == "" || user.Email == "" {
		log.Error().Str("username", user.Username).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	created, err := s.userRepository.Create(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation failed")
		return models.User{}, fmt.Errorf("user creation failed: %w", err)
	}

	s.cache.Clear()

	log.Info().Int64("id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

// Update overwrites the user identified by id with the given attributes and
// returns the updated record. Both the id key and every username key that
// could still serve the pre-update record are invalidated.
//
// Returns:
//   - store.ErrUserNotFound (wrapped) when id does not exist.
//   - store.ErrUserAlreadyExists (wrapped) on a username or email collision.
func (s *userService) Update(ctx context.Context, id int64, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.ID = id
	updated, err := s.userRepository.Update(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	// after a rename both the old and the new username key are stale
	s.cache.Invalidate(id, user.Username, updated.Username)

	log.Info().Int64("id", id).Str("username", updated.Username).Msg("user updated")
	return updated, nil
}

// Delete removes the user identified by id and drops its cache entries.
//
// Returns store.ErrUserNotFound (wrapped) when id does not exist, so deleting
// the same user twice always fails on the second call.
func (s *userService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if err := s.userRepository.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	s.cache.Invalidate(id)

	log.Info().Int64("id", id).Msg("user deleted")
	return nil
}

// ExistsByUsername reports whether a user with the given username exists.
func (s *userService) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	log := logger.FromContext(ctx)

	exists, err := s.userRepository.ExistsByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("username existence check failed")
		return false, fmt.Errorf("username existence check failed: %w", err)
	}

	return exists, nil
}

// ExistsByEmail reports whether a user with the given email exists.
func (s *userService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	log := logger.FromContext(ctx)

	exists, err := s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("email existence check failed")
		return false, fmt.Errorf("email existence check failed: %w", err)
	}

	return exists, nil
}
