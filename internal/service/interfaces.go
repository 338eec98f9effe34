package service

import (
	"context"

	"github.com/MKhiriev/go-user-directory/models"
)

// UserService is the business layer of the user directory. It owns the read
// cache, so every mutation keeps cached lookups consistent with the database.
type UserService interface {
	FindAll(ctx context.Context, page models.PageRequest) (models.Page[models.User], error)
	Search(ctx context.Context, term string, page models.PageRequest) (models.Page[models.User], error)

	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)

	Create(ctx context.Context, user models.User) (models.User, error)
	Update(ctx context.Context, id int64, user models.User) (models.User, error)
	Delete(ctx context.Context, id int64) error

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type AuthService interface {
	CreateToken(ctx context.Context, username string, roles []models.Role) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
