package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(cfg config.App) AuthService {
	return NewAuthService(cfg, logger.Nop())
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "user-directory",
		TokenDuration: time.Hour,
	}
}

func TestAuthService_CreateAndParseToken(t *testing.T) {
	svc := newTestAuthService(testAppConfig())
	ctx := context.Background()

	issued, err := svc.CreateToken(ctx, "jdoe", []models.Role{models.RoleAdmin, models.RoleUser})
	require.NoError(t, err)
	require.NotEmpty(t, issued.SignedString)

	parsed, err := svc.ParseToken(ctx, issued.SignedString)
	require.NoError(t, err)

	assert.Equal(t, "jdoe", parsed.Username)
	assert.Equal(t, []models.Role{models.RoleAdmin, models.RoleUser}, parsed.Roles)
}

func TestAuthService_CreateToken_InvalidConfig(t *testing.T) {
	svc := newTestAuthService(config.App{TokenIssuer: "user-directory"})

	_, err := svc.CreateToken(context.Background(), "jdoe", nil)
	require.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := newTestAuthService(testAppConfig())

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenDuration = -time.Minute
	issuer := newTestAuthService(cfg)

	issued, err := issuer.CreateToken(context.Background(), "jdoe", nil)
	require.NoError(t, err)

	verifier := newTestAuthService(testAppConfig())
	_, err = verifier.ParseToken(context.Background(), issued.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongIssuer(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenIssuer = "another-service"
	issuer := newTestAuthService(cfg)

	issued, err := issuer.CreateToken(context.Background(), "jdoe", nil)
	require.NoError(t, err)

	verifier := newTestAuthService(testAppConfig())
	_, err = verifier.ParseToken(context.Background(), issued.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongSignKey(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenSignKey = "other-key"
	issuer := newTestAuthService(cfg)

	issued, err := issuer.CreateToken(context.Background(), "jdoe", nil)
	require.NoError(t, err)

	verifier := newTestAuthService(testAppConfig())
	_, err = verifier.ParseToken(context.Background(), issued.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
