package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-report-api/internal/models"
	appErrors "github.com/noah-isme/student-report-api/pkg/errors"
)

type authServiceMock struct {
	resp *models.LoginResponse
	err  error
	last models.LoginRequest
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	m.last = req
	return m.resp, m.err
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &authServiceMock{resp: &models.LoginResponse{AccessToken: "token", ExpiresIn: 3600}}
	h := NewAuthHandler(svc)

	c, w := newGinContext(http.MethodPost, "/auth/login", []byte(`{"email":"a@example.com","password":"secret"}`))
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@example.com", svc.last.Email)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "token", data["access_token"])
}

func TestAuthHandlerLoginErrors(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{err: appErrors.ErrInvalidCredentials})

	c, w := newGinContext(http.MethodPost, "/auth/login", []byte(`{"email":"a@example.com","password":"bad"}`))
	h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = newGinContext(http.MethodPost, "/auth/login", []byte(`not json`))
	h.Login(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
