package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"taskflow/internal/errors"
	"taskflow/internal/model"
)

// stubAuthService satisfies service.AuthService with canned results.
type stubAuthService struct {
	registerErr error
	loginErr    error
	user        *model.User
	token       string
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error) {
	if s.registerErr != nil {
		return nil, "", s.registerErr
	}
	return s.user, s.token, nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.user, s.token, nil
}

func (s *stubAuthService) Me(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.user, nil
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newAuthServer(svc *stubAuthService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	h := NewAuthHandler(svc)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	return e
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	e := newAuthServer(&stubAuthService{})

	rec := postJSON(e, "/auth/register", `{"name":"A","email":"nope","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "validation failed", resp.Message)
	assert.Len(t, resp.Errors, 3)

	fields := make([]string, 0, len(resp.Errors))
	for _, fe := range resp.Errors {
		fields = append(fields, fe.Field)
		assert.NotEmpty(t, fe.Message)
	}
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	e := newAuthServer(&stubAuthService{registerErr: errors.ErrEmailTaken})

	rec := postJSON(e, "/auth/register", `{"name":"Test User","email":"taken@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, errors.ErrEmailTaken.Error(), resp.Message)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	user := &model.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: "test@example.com",
		Role:  model.RoleUser,
	}
	e := newAuthServer(&stubAuthService{user: user, token: "signed-token"})

	rec := postJSON(e, "/auth/register", `{"name":"Test User","email":"test@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool     `json:"success"`
		Data    AuthData `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "signed-token", resp.Data.Token)
	assert.Equal(t, user.Email, resp.Data.User.Email)
}

func TestAuthHandler_Login_UniformFailure(t *testing.T) {
	e := newAuthServer(&stubAuthService{loginErr: errors.ErrInvalidCredentials})

	rec := postJSON(e, "/auth/login", `{"email":"test@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "wrong email or password", resp.Message)
}
