// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// declared in errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Pagination.DefaultPageSize < 1 ||
		cfg.Pagination.MaxPageSize < 1 ||
		cfg.Pagination.MaxPageSize < cfg.Pagination.DefaultPageSize {
		return ErrInvalidPaginationConfigs
	}

	if len(cfg.CORS.AllowedOrigins) == 0 ||
		len(cfg.CORS.AllowedMethods) == 0 ||
		len(cfg.CORS.AllowedHeaders) == 0 ||
		cfg.CORS.MaxAge < 0 {
		return ErrInvalidCORSConfigs
	}

	if cfg.Password.Strength < 1 {
		return ErrInvalidPasswordConfigs
	}

	return nil
}
