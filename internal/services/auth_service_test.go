package services_test

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"productos/internal/errs"
	"productos/internal/models"
	"productos/internal/services"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}

	mockRepo.On("GetByUsername", ctx, user.Username).Return(nil, errs.NewNotFoundError("Usuario", user.Username)).Once()
	mockRepo.On("GetByEmail", ctx, user.Email).Return(nil, errs.NewNotFoundError("Usuario", user.Email)).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

	require.NoError(t, authService.RegisterUser(ctx, user))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	var conflict *errs.ConflictError

	mockRepo.On("GetByUsername", ctx, "testuser").Return(&models.User{ID: "1"}, nil).Once()
	err := authService.RegisterUser(ctx, &models.User{Username: "testuser", Email: "x@example.com"})
	require.True(t, errors.As(err, &conflict))
	assert.Contains(t, err.Error(), "testuser")

	mockRepo.On("GetByUsername", ctx, "other").Return(nil, errs.NewNotFoundError("Usuario", "other")).Once()
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(ctx, &models.User{Username: "other", Email: "test@example.com"})
	require.True(t, errors.As(err, &conflict))
	assert.Contains(t, err.Error(), "test@example.com")

	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: "user-123", Username: "testuser", Email: "test@example.com", Password: string(hashed)}

	mockRepo.On("GetByUsername", ctx, "testuser").Return(user, nil).Twice()
	mockRepo.On("GetByUsername", ctx, "ghost").Return(nil, errs.NewNotFoundError("Usuario", "ghost")).Once()

	token, err := authService.LoginUser(ctx, "testuser", "password123")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(testJWTSecret), nil })
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])

	var unauthorized *errs.UnauthorizedError

	_, err = authService.LoginUser(ctx, "testuser", "wrongpassword")
	assert.True(t, errors.As(err, &unauthorized))

	_, err = authService.LoginUser(ctx, "ghost", "password123")
	assert.True(t, errors.As(err, &unauthorized))

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, time.Hour)

	sign := func(exp time.Duration, secret string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id":  "user-123",
			"username": "testuser",
			"exp":      time.Now().Add(exp).Unix(),
		})
		s, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	claims, err := authService.ValidateToken(sign(time.Hour, testJWTSecret))
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	var unauthorized *errs.UnauthorizedError
	for name, token := range map[string]string{
		"garbage":      "invalid.token.string",
		"expired":      sign(-time.Hour, testJWTSecret),
		"wrong secret": sign(time.Hour, "another_secret"),
	} {
		_, err := authService.ValidateToken(token)
		assert.True(t, errors.As(err, &unauthorized), name)
	}
}
