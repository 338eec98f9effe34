package service

import (
	"github.com/MKhiriev/go-user-directory/internal/cache"
	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
)

type Services struct {
	UserService UserService
	AuthService AuthService
}

func NewServices(storages *store.Storages, userCache *cache.UserCache, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		UserService: NewUserService(storages.UserRepository, userCache, logger),
		AuthService: NewAuthService(cfg.App, logger),
	}
}
