package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthconnect/config"
	"healthconnect/internal/domain"
	"healthconnect/internal/repository"
	"healthconnect/pkg/auth"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

type AuthServiceImpl struct {
	authRepo      repository.AuthRepository
	userRepo      repository.UserRepository
	jwtConfig     config.JWTConfig
	resetTokenTTL time.Duration
	logger        *zap.Logger
}

func NewAuthService(authRepo repository.AuthRepository, userRepo repository.UserRepository, jwtConfig config.JWTConfig, bookingConfig config.BookingConfig, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		authRepo:      authRepo,
		userRepo:      userRepo,
		jwtConfig:     jwtConfig,
		resetTokenTTL: bookingConfig.ResetTokenTTL,
		logger:        logger,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, dto domain.RegisterRequest) (int64, error) {
	existingUser, err := s.userRepo.GetByEmail(ctx, dto.Email)
	if err == nil && existingUser != nil {
		return 0, domain.ErrEmailAlreadyInUse
	}

	hashedPassword, err := auth.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return 0, errors.New("ошибка при регистрации пользователя")
	}

	createUserDTO := domain.CreateUserDTO{
		Email:       dto.Email,
		DisplayName: dto.DisplayName,
		Role:        dto.Role,
	}

	userID, err := s.userRepo.Create(ctx, createUserDTO, hashedPassword)
	if err != nil {
		s.logger.Error("ошибка при создании пользователя", zap.Error(err))
		return 0, errors.New("ошибка при регистрации пользователя")
	}

	return userID, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, dto.Email)
	if err != nil {
		s.logger.Warn("пользователь не найден", zap.String("email", dto.Email), zap.Error(err))
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(dto.Password, user.PasswordHash)
	if err != nil || !ok {
		s.logger.Warn("неверный пароль", zap.Int64("userId", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.generateTokens(user.ID, user.Role)
	if err != nil {
		s.logger.Error("ошибка генерации токенов", zap.Error(err))
		return nil, errors.New("ошибка при аутентификации")
	}

	session := domain.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		RefreshToken: tokens.RefreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenTTL),
		CreatedAt:    time.Now(),
	}

	err = s.authRepo.CreateSession(ctx, session)
	if err != nil {
		s.logger.Error("ошибка сохранения сессии", zap.Error(err))
		return nil, errors.New("ошибка при аутентификации")
	}

	return tokens, nil
}

func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Warn("ошибка получения сессии", zap.Error(err))
		return nil, domain.ErrNoActiveSession
	}

	if session.ExpiresAt.Before(time.Now()) {
		s.authRepo.DeleteSession(ctx, session.ID)
		return nil, domain.ErrNoActiveSession
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		s.logger.Error("пользователь не найден", zap.Int64("userId", session.UserID), zap.Error(err))
		return nil, domain.ErrAccountNotFound
	}

	if !user.IsActive {
		return nil, domain.ErrNoActiveSession
	}

	err = s.authRepo.DeleteSession(ctx, session.ID)
	if err != nil {
		s.logger.Warn("ошибка удаления старой сессии", zap.Error(err))
	}

	tokens, err := s.generateTokens(user.ID, user.Role)
	if err != nil {
		s.logger.Error("ошибка генерации токенов", zap.Error(err))
		return nil, errors.New("ошибка при обновлении токенов")
	}

	newSession := domain.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		RefreshToken: tokens.RefreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenTTL),
		CreatedAt:    time.Now(),
	}

	err = s.authRepo.CreateSession(ctx, newSession)
	if err != nil {
		s.logger.Error("ошибка сохранения новой сессии", zap.Error(err))
		return nil, errors.New("ошибка при обновлении токенов")
	}

	return tokens, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Warn("сессия не найдена при выходе", zap.Error(err))
		return domain.ErrNoActiveSession
	}

	err = s.authRepo.DeleteSession(ctx, session.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			return err
		}
		s.logger.Error("ошибка удаления сессии", zap.Error(err))
		return errors.New("ошибка при выходе")
	}

	return nil
}

func (s *AuthServiceImpl) ParseToken(ctx context.Context, tokenString string) (int64, domain.UserRole, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})

	if err != nil {
		return 0, "", fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("недействительный токен")
	}

	return claims.UserID, claims.Role, nil
}

// RequestPasswordReset выдает одноразовый токен сброса. Токен возвращается
// вызывающему: отправка письма остается за внешним каналом доставки.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("запрос сброса пароля для неизвестного email", zap.String("email", email))
		return "", domain.ErrAccountNotFound
	}

	token, err := auth.GenerateRandomToken(32)
	if err != nil {
		s.logger.Error("ошибка генерации токена сброса", zap.Error(err))
		return "", errors.New("ошибка при сбросе пароля")
	}

	reset := domain.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.resetTokenTTL),
		CreatedAt: time.Now(),
	}

	if err = s.authRepo.CreateResetToken(ctx, reset); err != nil {
		s.logger.Error("ошибка сохранения токена сброса", zap.Error(err))
		return "", errors.New("ошибка при сбросе пароля")
	}

	return token, nil
}

func (s *AuthServiceImpl) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	reset, err := s.authRepo.GetResetToken(ctx, token)
	if err != nil {
		return domain.ErrNotFound
	}

	if reset.UsedAt != nil || reset.ExpiresAt.Before(time.Now()) {
		return domain.ErrNotFound
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return errors.New("ошибка при сбросе пароля")
	}

	if err = s.userRepo.UpdatePassword(ctx, reset.UserID, hashedPassword); err != nil {
		s.logger.Error("ошибка обновления пароля", zap.Error(err))
		return errors.New("ошибка при сбросе пароля")
	}

	if err = s.authRepo.MarkResetTokenUsed(ctx, token); err != nil {
		s.logger.Warn("ошибка отметки токена сброса", zap.Error(err))
	}

	// Все активные сессии закрываются, старые refresh-токены недействительны.
	if err = s.authRepo.DeleteSessionsByUserID(ctx, reset.UserID); err != nil {
		s.logger.Warn("ошибка закрытия сессий после сброса пароля", zap.Error(err))
	}

	return nil
}

func (s *AuthServiceImpl) generateTokens(userID int64, role domain.UserRole) (*domain.Tokens, error) {
	accessTokenClaims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Role:   role,
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("ошибка подписи access token: %w", err)
	}

	refreshToken, err := auth.GenerateRandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации refresh token: %w", err)
	}

	return &domain.Tokens{
		AccessToken:  accessTokenString,
		RefreshToken: refreshToken,
	}, nil
}
