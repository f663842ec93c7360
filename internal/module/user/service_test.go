package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/problemhub/server/internal/module/auth"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func newTestService(t *testing.T) (*Service, Repository) {
	t.Helper()

	repo := NewRepository(setupTestDB(t))
	jwt := auth.NewJWTManager(&auth.JWTConfig{
		Secret:            "test-secret-key-that-is-long-enough",
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            "test",
	})
	return NewService(repo, jwt, nil, nil, zap.NewNop()), repo
}

func TestService_Register(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("registers and logs in", func(t *testing.T) {
		resp, err := svc.Register(ctx, &RegisterRequest{
			Email:    "alice@example.com",
			Password: "password123",
			Name:     "Alice",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.Nil(t, resp.User.CurrentTeamID)
		assert.False(t, resp.User.IsAdmin)
	})

	t.Run("normalizes email", func(t *testing.T) {
		resp, err := svc.Register(ctx, &RegisterRequest{
			Email:    "  Bob@Example.COM ",
			Password: "password123",
			Name:     "Bob",
		})
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", resp.User.Email)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterRequest{
			Email:    "alice@example.com",
			Password: "password123",
			Name:     "Alice Again",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterRequest{
			Email:    "short@example.com",
			Password: "short",
			Name:     "Short",
		})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestService_Login(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, &LoginRequest{
			Email:    "alice@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_ChangePassword(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)
	userID := resp.User.ID

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, userID, &ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "newpassword456",
		})
		assert.ErrorIs(t, err, ErrIncorrectPassword)
	})

	t.Run("changes password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, userID, &ChangePasswordRequest{
			CurrentPassword: "password123",
			NewPassword:     "newpassword456",
		})
		require.NoError(t, err)

		u, err := repo.GetByID(ctx, userID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpassword456")))
	})
}

func TestService_UpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	name := "Alice Updated"
	avatar := "https://example.com/avatar.png"
	u, err := svc.UpdateProfile(ctx, resp.User.ID, &UpdateProfileRequest{
		Name:      &name,
		AvatarURL: &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", u.Name)
	assert.Equal(t, avatar, u.AvatarURL)
}

func TestService_IsAdmin(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Email:    "admin@example.com",
		Password: "password123",
		Name:     "Admin",
	})
	require.NoError(t, err)

	isAdmin, err := svc.IsAdmin(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	u, err := repo.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	u.IsAdmin = true
	require.NoError(t, repo.Update(ctx, u))

	isAdmin, err = svc.IsAdmin(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	t.Run("unknown user is not admin", func(t *testing.T) {
		isAdmin, err := svc.IsAdmin(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, isAdmin)
	})
}

func TestRepository_CurrentTeam(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	teamID := uuid.New()
	users := make([]*User, 3)
	for i, name := range []string{"a", "b", "c"} {
		u := &User{
			ID:           uuid.New(),
			Email:        name + "@example.com",
			Name:         name,
			PasswordHash: "x",
		}
		require.NoError(t, repo.Create(ctx, u))
		users[i] = u
	}

	// Point two of them at the team.
	require.NoError(t, repo.SetCurrentTeam(ctx, users[0].ID, &teamID))
	require.NoError(t, repo.SetCurrentTeam(ctx, users[1].ID, &teamID))

	require.NoError(t, repo.ClearCurrentTeam(ctx, teamID))

	for _, u := range users {
		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CurrentTeamID)
	}

	t.Run("set for unknown user", func(t *testing.T) {
		err := repo.SetCurrentTeam(ctx, uuid.New(), &teamID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
