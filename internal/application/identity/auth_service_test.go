package identity

import (
	"context"
	"testing"
	"time"

	"github.com/agrilink/backend/internal/domain/identity"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/agrilink/backend/internal/infrastructure/auth"
	"github.com/agrilink/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "unit-test-secret-key-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "agrilink-test",
		MaxRefreshCount:        10,
	})
}

type authFixture struct {
	userRepo  *MockUserRepository
	orgRepo   *MockOrganizationRepository
	blacklist *auth.InMemoryTokenBlacklist
	service   *AuthService
}

func newAuthFixture() *authFixture {
	userRepo := &MockUserRepository{}
	orgRepo := &MockOrganizationRepository{}
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(userRepo, orgRepo, newTestJWTService(), blacklist, zap.NewNop())
	return &authFixture{userRepo: userRepo, orgRepo: orgRepo, blacklist: blacklist, service: svc}
}

func newTestAccount(t *testing.T, isBuyer, isOperator bool) (*identity.Organization, *identity.User) {
	t.Helper()
	org, err := identity.NewOrganization("Verdant Farms", "office@verdant.example", isBuyer, isOperator)
	require.NoError(t, err)
	user, err := identity.NewUser(org.ID, "anna@verdant.example", "s3cretpass", "Anna")
	require.NoError(t, err)
	org.ClearDomainEvents()
	user.ClearDomainEvents()
	return org, user
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tokens and organization roles", func(t *testing.T) {
		f := newAuthFixture()
		org, user := newTestAccount(t, true, false)

		f.userRepo.On("FindByEmail", ctx, "anna@verdant.example").Return(user, nil)
		f.orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		result, err := f.service.Login(ctx, LoginInput{Email: "anna@verdant.example", Password: "s3cretpass"})
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.True(t, result.User.IsBuyer)
		assert.False(t, result.User.IsOperator)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		f := newAuthFixture()
		_, user := newTestAccount(t, true, false)

		f.userRepo.On("FindByEmail", ctx, "anna@verdant.example").Return(user, nil)

		_, err := f.service.Login(ctx, LoginInput{Email: "anna@verdant.example", Password: "wrongpass1"})
		assertDomainErrorCode(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("rejects unknown email with the same error code", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("FindByEmail", ctx, "ghost@nowhere.example").Return(nil, shared.ErrNotFound)

		_, err := f.service.Login(ctx, LoginInput{Email: "ghost@nowhere.example", Password: "whatever1"})
		assertDomainErrorCode(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("rejects disabled accounts", func(t *testing.T) {
		f := newAuthFixture()
		_, user := newTestAccount(t, true, false)
		require.NoError(t, user.Disable())

		f.userRepo.On("FindByEmail", ctx, "anna@verdant.example").Return(user, nil)

		_, err := f.service.Login(ctx, LoginInput{Email: "anna@verdant.example", Password: "s3cretpass"})
		assertDomainErrorCode(t, err, "ACCOUNT_DISABLED")
	})

	t.Run("rejects suspended organizations", func(t *testing.T) {
		f := newAuthFixture()
		org, user := newTestAccount(t, true, false)
		require.NoError(t, org.Suspend())

		f.userRepo.On("FindByEmail", ctx, "anna@verdant.example").Return(user, nil)
		f.orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)

		_, err := f.service.Login(ctx, LoginInput{Email: "anna@verdant.example", Password: "s3cretpass"})
		assertDomainErrorCode(t, err, "ORG_SUSPENDED")
	})
}

func TestAuthServiceRefreshToken(t *testing.T) {
	ctx := context.Background()

	loginResult := func(t *testing.T, f *authFixture, org *identity.Organization, user *identity.User) *LoginResult {
		t.Helper()
		f.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
		f.orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)
		result, err := f.service.Login(ctx, LoginInput{Email: user.Email, Password: "s3cretpass"})
		require.NoError(t, err)
		return result
	}

	t.Run("issues a fresh pair for an active user", func(t *testing.T) {
		f := newAuthFixture()
		org, user := newTestAccount(t, false, true)
		result := loginResult(t, f, org, user)

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		refreshed, err := f.service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: result.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, result.RefreshToken, refreshed.RefreshToken)
	})

	t.Run("rejects refresh for a disabled user", func(t *testing.T) {
		f := newAuthFixture()
		org, user := newTestAccount(t, false, true)
		result := loginResult(t, f, org, user)

		require.NoError(t, user.Disable())
		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err := f.service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: result.RefreshToken})
		assertDomainErrorCode(t, err, "ACCOUNT_DISABLED")
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "garbage"})
		assertDomainErrorCode(t, err, "TOKEN_INVALID")
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists the presented token", func(t *testing.T) {
		f := newAuthFixture()
		_, user := newTestAccount(t, true, false)

		err := f.service.Logout(ctx, LogoutInput{
			UserID:   user.ID,
			TokenJTI: "jti-123",
			TokenTTL: time.Minute,
		})
		require.NoError(t, err)

		blacklisted, err := f.blacklist.IsBlacklisted(ctx, "jti-123")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("is a no-op without a token id", func(t *testing.T) {
		f := newAuthFixture()
		_, user := newTestAccount(t, true, false)

		err := f.service.Logout(ctx, LogoutInput{UserID: user.ID})
		require.NoError(t, err)
	})
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes the password and invalidates existing sessions", func(t *testing.T) {
		f := newAuthFixture()
		_, user := newTestAccount(t, true, false)
		issuedAt := time.Now().Add(-time.Minute)

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		err := f.service.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "s3cretpass",
			NewPassword: "n3wsecret99",
		})
		require.NoError(t, err)

		assert.True(t, user.VerifyPassword("n3wsecret99"))

		invalidated, err := f.blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), issuedAt)
		require.NoError(t, err)
		assert.True(t, invalidated)
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		f := newAuthFixture()
		_, user := newTestAccount(t, true, false)

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := f.service.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "not-the-password",
			NewPassword: "n3wsecret99",
		})
		require.Error(t, err)
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
