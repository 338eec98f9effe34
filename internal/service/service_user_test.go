package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-user-directory/internal/cache"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/mock"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUserService(t *testing.T) (*userService, *mock.MockUserRepository, *cache.UserCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	userCache := cache.NewUserCache()

	svc := &userService{
		userRepository: repo,
		cache:          userCache,
		logger:         logger.Nop(),
	}
	return svc, repo, userCache
}

func storedUser(id int64, username string) models.User {
	return models.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Enabled:  true,
		Roles:    []models.Role{models.RoleUser},
	}
}

func TestUserService_FindByID_CachesSecondLookup(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()
	user := storedUser(1, "jdoe")

	// exactly one repository hit for two lookups
	repo.EXPECT().FindByID(ctx, int64(1)).Return(user, nil).Times(1)

	first, err := svc.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, user, first)

	second, err := svc.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, user, second)
}

func TestUserService_FindByID_NotFound(t *testing.T) {
	svc, repo, userCache := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().FindByID(ctx, int64(404)).Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.FindByID(ctx, 404)
	require.ErrorIs(t, err, store.ErrUserNotFound)
	assert.Equal(t, 0, userCache.Len(), "misses must not be cached")
}

func TestUserService_FindByUsername_CachesSecondLookup(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()
	user := storedUser(1, "jdoe")

	repo.EXPECT().FindByUsername(ctx, "jdoe").Return(user, nil).Times(1)

	_, err := svc.FindByUsername(ctx, "jdoe")
	require.NoError(t, err)

	cached, err := svc.FindByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, user, cached)
}

func TestUserService_FindByID_ServesEntryCachedByUsername(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()
	user := storedUser(1, "jdoe")

	repo.EXPECT().FindByUsername(ctx, "jdoe").Return(user, nil).Times(1)

	_, err := svc.FindByUsername(ctx, "jdoe")
	require.NoError(t, err)

	// dual-keyed cache: the username lookup populated the id key too
	byID, err := svc.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, user, byID)
}

func TestUserService_FindByEmail_NotCached(t *testing.T) {
	svc, repo, userCache := newTestUserService(t)
	ctx := context.Background()
	user := storedUser(1, "jdoe")

	repo.EXPECT().FindByEmail(ctx, "jdoe@example.com").Return(user, nil).Times(2)

	_, err := svc.FindByEmail(ctx, "jdoe@example.com")
	require.NoError(t, err)
	_, err = svc.FindByEmail(ctx, "jdoe@example.com")
	require.NoError(t, err)

	assert.Equal(t, 0, userCache.Len())
}

func TestUserService_Create_Success(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()

	draft := models.User{Username: "jdoe", Email: "jdoe@example.com", Enabled: true, Roles: []models.Role{models.RoleUser}}
	created := storedUser(1, "jdoe")

	repo.EXPECT().Create(ctx, draft).Return(created, nil)

	got, err := svc.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestUserService_Create_InvalidData(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	_, err := svc.Create(context.Background(), models.User{Username: "jdoe"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUserService_Create_Conflict(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()
	draft := models.User{Username: "jdoe", Email: "jdoe@example.com"}

	repo.EXPECT().Create(ctx, draft).Return(models.User{}, store.ErrUserAlreadyExists)

	_, err := svc.Create(ctx, draft)
	require.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestUserService_Create_ClearsCache(t *testing.T) {
	svc, repo, userCache := newTestUserService(t)
	ctx := context.Background()

	userCache.Put(storedUser(7, "cached"))
	draft := models.User{Username: "jdoe", Email: "jdoe@example.com"}
	repo.EXPECT().Create(ctx, draft).Return(storedUser(1, "jdoe"), nil)

	_, err := svc.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, 0, userCache.Len())
}

func TestUserService_Update_InvalidatesOldAndNewUsername(t *testing.T) {
	svc, repo, userCache := newTestUserService(t)
	ctx := context.Background()

	userCache.Put(storedUser(1, "old"))

	updated := storedUser(1, "new")
	repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, int64(1), user.ID, "path id must win over any body id")
			return updated, nil
		})

	got, err := svc.Update(ctx, 1, models.User{ID: 999, Username: "new", Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Username)

	_, ok := userCache.GetByID(1)
	assert.False(t, ok)
	_, ok = userCache.GetByUsername("old")
	assert.False(t, ok)
	_, ok = userCache.GetByUsername("new")
	assert.False(t, ok)
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().Update(ctx, gomock.Any()).Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Update(ctx, 404, models.User{Username: "ghost", Email: "g@example.com"})
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_Delete_Success(t *testing.T) {
	svc, repo, userCache := newTestUserService(t)
	ctx := context.Background()

	userCache.Put(storedUser(1, "jdoe"))
	repo.EXPECT().Delete(ctx, int64(1)).Return(nil)

	require.NoError(t, svc.Delete(ctx, 1))

	_, ok := userCache.GetByID(1)
	assert.False(t, ok)
	_, ok = userCache.GetByUsername("jdoe")
	assert.False(t, ok)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, int64(404)).Return(store.ErrUserNotFound)

	err := svc.Delete(ctx, 404)
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_FindAll_BuildsPageEnvelope(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()
	page := models.PageRequest{Page: 1, Size: 2}

	users := []models.User{storedUser(3, "u3"), storedUser(4, "u4")}
	repo.EXPECT().FindAll(ctx, page).Return(users, int64(5), nil)

	got, err := svc.FindAll(ctx, page)
	require.NoError(t, err)

	assert.Equal(t, users, got.Content)
	assert.Equal(t, int64(5), got.TotalElements)
	assert.Equal(t, 3, got.TotalPages)
	assert.False(t, got.First)
	assert.False(t, got.Last)
	assert.Equal(t, 2, got.NumberOfElements)
	assert.False(t, got.Empty)
}

func TestUserService_Search_PassesTermThrough(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()
	page := models.PageRequest{Page: 0, Size: 20}

	repo.EXPECT().FindBySearchTerm(ctx, "smith", page).Return(nil, int64(0), nil)

	got, err := svc.Search(ctx, "smith", page)
	require.NoError(t, err)

	assert.True(t, got.Empty)
	assert.True(t, got.First)
	assert.True(t, got.Last)
	assert.Equal(t, 0, got.TotalPages)
}

func TestUserService_Search_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().FindBySearchTerm(ctx, "x", gomock.Any()).Return(nil, int64(0), errors.New("db down"))

	_, err := svc.Search(ctx, "x", models.PageRequest{Size: 20})
	require.Error(t, err)
}

func TestUserService_Exists(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()

	repo.EXPECT().ExistsByUsername(ctx, "jdoe").Return(true, nil)
	repo.EXPECT().ExistsByEmail(ctx, "ghost@example.com").Return(false, nil)

	exists, err := svc.ExistsByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.ExistsByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
