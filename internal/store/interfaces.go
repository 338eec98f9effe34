//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

package store

import (
	"context"

	"github.com/MKhiriev/go-user-directory/models"
)

// UserRepository is the persistence gateway for the [models.User] entity.
//
// Lookup methods return [ErrUserNotFound] when no record matches; list
// methods return the matched page plus the total element count across all
// pages. Create and Update surface unique-constraint violations as
// [ErrUserAlreadyExists].
type UserRepository interface {
	// FindAll returns one page of users in the requested order with the
	// total user count.
	FindAll(ctx context.Context, page models.PageRequest) ([]models.User, int64, error)

	// FindBySearchTerm returns one page of users whose username, email,
	// first name, or last name contains term case-insensitively. A blank
	// term matches all users.
	FindBySearchTerm(ctx context.Context, term string, page models.PageRequest) ([]models.User, int64, error)

	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// Create persists a new user together with its role set and returns the
	// record with server-assigned fields (ID, CreatedAt, UpdatedAt).
	Create(ctx context.Context, user models.User) (models.User, error)

	// Update overwrites the identity attributes, enabled flag, and role set
	// of the user with the given ID and refreshes UpdatedAt.
	Update(ctx context.Context, user models.User) (models.User, error)

	// Delete removes the user record and its roles.
	Delete(ctx context.Context, id int64) error

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
