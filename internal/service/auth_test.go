package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthconnect/config"
	"healthconnect/internal/domain"
	"healthconnect/pkg/auth"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, dto domain.CreateUserDTO, passwordHash string) (int64, error) {
	id := r.nextID
	r.nextID++
	r.users[id] = &domain.User{
		ID:           id,
		Email:        dto.Email,
		DisplayName:  dto.DisplayName,
		PasswordHash: passwordHash,
		Role:         dto.Role,
		IsActive:     true,
	}
	return id, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int, error) { return len(r.users), nil }

type fakeAuthRepo struct {
	sessions    map[string]*domain.Session
	resetTokens map[string]*domain.PasswordResetToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		sessions:    map[string]*domain.Session{},
		resetTokens: map[string]*domain.PasswordResetToken{},
	}
}

func (r *fakeAuthRepo) CreateSession(ctx context.Context, session domain.Session) error {
	r.sessions[session.ID] = &session
	return nil
}

func (r *fakeAuthRepo) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	for _, s := range r.sessions {
		if s.RefreshToken == refreshToken {
			return s, nil
		}
	}
	return nil, domain.ErrNoActiveSession
}

func (r *fakeAuthRepo) DeleteSession(ctx context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrNoActiveSession
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeAuthRepo) DeleteSessionsByUserID(ctx context.Context, userID int64) error {
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *fakeAuthRepo) CreateResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	r.resetTokens[token.Token] = &token
	return nil
}

func (r *fakeAuthRepo) GetResetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	t, ok := r.resetTokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (r *fakeAuthRepo) MarkResetTokenUsed(ctx context.Context, token string) error {
	t, ok := r.resetTokens[token]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	t.UsedAt = &now
	return nil
}

func newAuthService(t *testing.T) (*AuthServiceImpl, *fakeUserRepo, *fakeAuthRepo) {
	t.Helper()

	userRepo := newFakeUserRepo()
	authRepo := newFakeAuthRepo()

	svc := NewAuthService(authRepo, userRepo, config.JWTConfig{
		SigningKey:      "test-signing-key",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}, config.BookingConfig{
		ResetTokenTTL: time.Hour,
	}, zap.NewNop())

	return svc, userRepo, authRepo
}

func registerPatient(t *testing.T, svc *AuthServiceImpl) int64 {
	t.Helper()

	id, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:       "patient@example.com",
		Password:    "password123",
		DisplayName: "Demo Patient",
		Role:        domain.UserRolePatient,
	})
	require.NoError(t, err)

	return id
}

func TestRegister(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)

	id := registerPatient(t, svc)

	user, err := userRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "patient@example.com", user.Email)
	assert.Equal(t, domain.UserRolePatient, user.Role)
	// пароль хранится только в виде хеша
	assert.NotContains(t, user.PasswordHash, "password123")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	registerPatient(t, svc)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "patient@example.com",
		Password: "another-pass",
		Role:     domain.UserRolePatient,
	})

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyInUse)
}

func TestLogin(t *testing.T) {
	svc, _, authRepo := newAuthService(t)

	registerPatient(t, svc)

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "patient@example.com",
		Password: "password123",
	}, "test-agent", "127.0.0.1")

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Len(t, authRepo.sessions, 1)

	userID, role, err := svc.ParseToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)
	assert.Equal(t, domain.UserRolePatient, role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)

	id := registerPatient(t, svc)

	tests := []struct {
		name    string
		prepare func()
		email   string
		pass    string
	}{
		{"неизвестный email", func() {}, "nobody@example.com", "password123"},
		{"неверный пароль", func() {}, "patient@example.com", "wrong-pass"},
		{"деактивированный аккаунт", func() {
			userRepo.users[id].IsActive = false
		}, "patient@example.com", "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepare()

			_, err := svc.Login(context.Background(), domain.LoginRequest{
				Email:    tt.email,
				Password: tt.pass,
			}, "test-agent", "127.0.0.1")

			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestRefreshTokensRotatesSession(t *testing.T) {
	svc, _, authRepo := newAuthService(t)

	registerPatient(t, svc)

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "patient@example.com",
		Password: "password123",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(context.Background(), tokens.RefreshToken, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)
	assert.Len(t, authRepo.sessions, 1)

	// старый refresh-токен больше не действует
	_, err = svc.RefreshTokens(context.Background(), tokens.RefreshToken, "test-agent", "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestRefreshTokensExpiredSession(t *testing.T) {
	svc, _, authRepo := newAuthService(t)

	registerPatient(t, svc)

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "patient@example.com",
		Password: "password123",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	for _, s := range authRepo.sessions {
		s.ExpiresAt = time.Now().Add(-time.Minute)
	}

	_, err = svc.RefreshTokens(context.Background(), tokens.RefreshToken, "test-agent", "127.0.0.1")

	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	assert.Empty(t, authRepo.sessions)
}

func TestLogout(t *testing.T) {
	svc, _, authRepo := newAuthService(t)

	registerPatient(t, svc)

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "patient@example.com",
		Password: "password123",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))
	assert.Empty(t, authRepo.sessions)

	// повторный выход без активной сессии
	err = svc.Logout(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	svc, _, _ := newAuthService(t)
	other, _, _ := newAuthService(t)
	other.jwtConfig.SigningKey = "another-key"

	registerPatient(t, other)

	tokens, err := other.Login(context.Background(), domain.LoginRequest{
		Email:    "patient@example.com",
		Password: "password123",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	_, _, err = svc.ParseToken(context.Background(), tokens.AccessToken)

	assert.Error(t, err)
}

func TestPasswordReset(t *testing.T) {
	svc, userRepo, authRepo := newAuthService(t)

	id := registerPatient(t, svc)

	// активная сессия должна закрыться после сброса
	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "patient@example.com",
		Password: "password123",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(context.Background(), "patient@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), token, "new-password"))

	assert.Empty(t, authRepo.sessions)

	ok, err := auth.VerifyPassword("new-password", userRepo.users[id].PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// токен одноразовый
	err = svc.ConfirmPasswordReset(context.Background(), token, "third-password")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestPasswordResetExpiredToken(t *testing.T) {
	svc, _, authRepo := newAuthService(t)

	registerPatient(t, svc)

	token, err := svc.RequestPasswordReset(context.Background(), "patient@example.com")
	require.NoError(t, err)

	authRepo.resetTokens[token].ExpiresAt = time.Now().Add(-time.Minute)

	err = svc.ConfirmPasswordReset(context.Background(), token, "new-password")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
