package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/student-report-api/internal/models"
	appErrors "github.com/noah-isme/student-report-api/pkg/errors"
)

type mockAuthRepo struct {
	user             *models.User
	findErr          error
	lastLoginUpdated bool
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.user == nil {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func newAuthUser(t *testing.T, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "user-1",
		Email:        "teacher@example.com",
		PasswordHash: string(hash),
		FullName:     "Bu Sari",
		Role:         models.RoleTeacher,
		ClassroomID:  ptr("c1"),
		Active:       active,
	}
}

func newAuthServiceForTest(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "student-report-api",
	})
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	repo := &mockAuthRepo{user: newAuthUser(t, true)}
	svc := newAuthServiceForTest(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "teacher@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, models.RoleTeacher, resp.User.Role)
	assert.True(t, repo.lastLoginUpdated)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	actor := claims.Actor()
	assert.Equal(t, "user-1", actor.UserID)
	require.NotNil(t, actor.ClassroomID)
	assert.Equal(t, "c1", *actor.ClassroomID)
	assert.Equal(t, "student-report-api", claims.Issuer)
}

func TestAuthServiceLoginFailures(t *testing.T) {
	cases := []struct {
		name   string
		repo   *mockAuthRepo
		req    models.LoginRequest
		expect *appErrors.Error
	}{
		{"unknown email", &mockAuthRepo{}, models.LoginRequest{Email: "nobody@example.com", Password: "secret123"}, appErrors.ErrInvalidCredentials},
		{"wrong password", &mockAuthRepo{user: newAuthUser(t, true)}, models.LoginRequest{Email: "teacher@example.com", Password: "nope"}, appErrors.ErrInvalidCredentials},
		{"inactive", &mockAuthRepo{user: newAuthUser(t, false)}, models.LoginRequest{Email: "teacher@example.com", Password: "secret123"}, appErrors.ErrInactiveAccount},
		{"invalid payload", &mockAuthRepo{}, models.LoginRequest{Email: "not-an-email"}, appErrors.ErrValidation},
		{"repository failure", &mockAuthRepo{findErr: errors.New("db down")}, models.LoginRequest{Email: "teacher@example.com", Password: "secret123"}, appErrors.ErrInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newAuthServiceForTest(tc.repo).Login(context.Background(), tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expect)
			assert.False(t, tc.repo.lastLoginUpdated)
		})
	}
}

func TestAuthServiceValidateTokenRejects(t *testing.T) {
	svc := newAuthServiceForTest(&mockAuthRepo{})

	_, err := svc.ValidateToken("garbage")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	other := NewAuthService(&mockAuthRepo{}, nil, nil, AuthConfig{AccessTokenSecret: "another-secret"})
	token, _, err := other.GenerateToken(newAuthUser(t, true))
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	claims := &models.JWTClaims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(hs512)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
