package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token sign key or issuer).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, a missing listen address or non-positive timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidPaginationConfigs indicates inconsistent pagination bounds
	// (non-positive sizes, or a maximum below the default).
	ErrInvalidPaginationConfigs = errors.New("invalid pagination configuration")
	// ErrInvalidCORSConfigs indicates an incomplete CORS policy.
	ErrInvalidCORSConfigs = errors.New("invalid CORS configuration")
	// ErrInvalidPasswordConfigs indicates a non-positive password strength.
	ErrInvalidPasswordConfigs = errors.New("invalid password policy configuration")
)
