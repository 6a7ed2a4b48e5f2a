package service

import (
	"context"
	"testing"
	"time"

	"github.com/makeey/notsofluffy.pl-sub000/config"
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/repository"
	"github.com/makeey/notsofluffy.pl-sub000/internal/db"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryTokenStore stands in for the Redis store in tests
type memoryTokenStore struct {
	tokens map[string]uint
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]uint)}
}

func (s *memoryTokenStore) Save(_ context.Context, tokenID string, userID uint, _ time.Duration) error {
	s.tokens[tokenID] = userID
	return nil
}

func (s *memoryTokenStore) Consume(_ context.Context, tokenID string) (bool, error) {
	if _, ok := s.tokens[tokenID]; !ok {
		return false, nil
	}
	delete(s.tokens, tokenID)
	return true, nil
}

func (s *memoryTokenStore) Revoke(_ context.Context, tokenID string) error {
	delete(s.tokens, tokenID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
}

func setupAuthServiceTest(t *testing.T) (AuthService, *memoryTokenStore) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	store := newMemoryTokenStore()
	authService := NewAuthService(repository.NewUserRepository(testDB), store, testJWTConfig())
	return authService, store
}

func TestAuthService_Register_Success(t *testing.T) {
	authService, store := setupAuthServiceTest(t)

	user, pair, err := authService.Register(context.Background(), RegisterRequest{
		Email:     "anna@example.com",
		Password:  "sekretne-haslo",
		FirstName: "Anna",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.NotEqual(t, "sekretne-haslo", user.PasswordHash)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Len(t, store.tokens, 1)
}

func TestAuthService_Register_Validation(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register(context.Background(), RegisterRequest{
		Email:    "not-an-email",
		Password: "sekretne-haslo",
	})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, _, err = authService.Register(context.Background(), RegisterRequest{
		Email:    "anna@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register(context.Background(), RegisterRequest{
		Email:    "anna@example.com",
		Password: "sekretne-haslo",
	})
	require.NoError(t, err)

	_, _, err = authService.Register(context.Background(), RegisterRequest{
		Email:    "anna@example.com",
		Password: "inne-haslo-123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register(context.Background(), RegisterRequest{
		Email:    "anna@example.com",
		Password: "sekretne-haslo",
	})
	require.NoError(t, err)

	user, pair, err := authService.Login(context.Background(), LoginRequest{
		Email:    "anna@example.com",
		Password: "sekretne-haslo",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.NotEmpty(t, pair.AccessToken)

	_, _, err = authService.Login(context.Background(), LoginRequest{
		Email:    "anna@example.com",
		Password: "zle-haslo",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "sekretne-haslo",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, pair, err := authService.Register(context.Background(), RegisterRequest{
		Email:    "anna@example.com",
		Password: "sekretne-haslo",
	})
	require.NoError(t, err)

	fresh, err := authService.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)

	// The consumed token cannot be replayed
	_, err = authService.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	// But the rotated one works
	_, err = authService.Refresh(context.Background(), fresh.RefreshToken)
	require.NoError(t, err)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, pair, err := authService.Register(context.Background(), RegisterRequest{
		Email:    "anna@example.com",
		Password: "sekretne-haslo",
	})
	require.NoError(t, err)

	_, err = authService.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	_, err = authService.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestAuthService_Logout_RevokesRefresh(t *testing.T) {
	authService, store := setupAuthServiceTest(t)

	_, pair, err := authService.Register(context.Background(), RegisterRequest{
		Email:    "anna@example.com",
		Password: "sekretne-haslo",
	})
	require.NoError(t, err)

	require.NoError(t, authService.Logout(context.Background(), pair.RefreshToken))
	assert.Len(t, store.tokens, 0)

	_, err = authService.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	// Logout with a bad token is a no-op
	require.NoError(t, authService.Logout(context.Background(), "garbage"))
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, _, err := authService.Register(context.Background(), RegisterRequest{
		Email:     "anna@example.com",
		Password:  "sekretne-haslo",
		FirstName: "Anna",
		LastName:  "Nowak",
	})
	require.NoError(t, err)

	phone := "+48 600 100 200"
	updated, err := authService.UpdateProfile(user.ID, UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Anna", updated.FirstName)

	_, err = authService.UpdateProfile(9999, UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_TokenClaims(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, pair, err := authService.Register(context.Background(), RegisterRequest{
		Email:    "anna@example.com",
		Password: "sekretne-haslo",
	})
	require.NoError(t, err)

	claims, err := util.ValidateToken(pair.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, util.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "client", claims.Role)
}
