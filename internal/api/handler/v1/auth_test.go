package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growoff/growoff-api/internal/api/handler/v1/response"
	"github.com/growoff/growoff-api/internal/config"
	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/service"
)

type fakeAuthService struct {
	signupErr error
	loginErr  error
	user      domain.User
}

func (f *fakeAuthService) Signup(_ context.Context, email, _, name string) (domain.User, error) {
	if f.signupErr != nil {
		return domain.User{}, f.signupErr
	}

	f.user.Email = email
	f.user.DisplayName = name

	return f.user, nil
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (domain.User, error) {
	if f.loginErr != nil {
		return domain.User{}, f.loginErr
	}

	return f.user, nil
}

func newAuthRouter(svc AuthService) *gin.Engine {
	handler := NewAuthHandler(&config.APIConfig{JWTSigningKey: "test-signing-key"}, svc)

	router := gin.New()
	router.POST("/auth/signup", handler.HandleSignup)
	router.POST("/auth/login", handler.HandleLogin)

	return router
}

func TestAuthHandler_HandleSignup(t *testing.T) {
	t.Run("valid signup", func(t *testing.T) {
		router := newAuthRouter(&fakeAuthService{user: domain.User{ID: "u1", Role: domain.RoleContestant}})

		body := `{"email":"grower@example.com","password":"passw0rd12","confirm_password":"passw0rd12"}`
		rec := serve(router, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "u1", got.ID)
		assert.Equal(t, "grower@example.com", got.Email)
	})

	t.Run("password without a digit", func(t *testing.T) {
		router := newAuthRouter(&fakeAuthService{})

		body := `{"email":"grower@example.com","password":"passwords","confirm_password":"passwords"}`
		rec := serve(router, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("mismatched confirm password", func(t *testing.T) {
		router := newAuthRouter(&fakeAuthService{})

		body := `{"email":"grower@example.com","password":"passw0rd12","confirm_password":"passw0rd13"}`
		rec := serve(router, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		router := newAuthRouter(&fakeAuthService{signupErr: service.ErrUserEmailExists})

		body := `{"email":"grower@example.com","password":"passw0rd12","confirm_password":"passw0rd12"}`
		rec := serve(router, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		router := newAuthRouter(&fakeAuthService{user: domain.User{ID: "u1", Email: "grower@example.com"}})

		body := `{"email":"grower@example.com","password":"passw0rd12"}`
		rec := serve(router, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)

		var got response.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotEmpty(t, got.Token)
		assert.Equal(t, "u1", got.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		router := newAuthRouter(&fakeAuthService{loginErr: service.ErrWrongPassword})

		body := `{"email":"grower@example.com","password":"passw0rd12"}`
		rec := serve(router, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email does not leak which field failed", func(t *testing.T) {
		router := newAuthRouter(&fakeAuthService{loginErr: service.ErrUserNotFound})

		body := `{"email":"ghost@example.com","password":"passw0rd12"}`
		rec := serve(router, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing email", func(t *testing.T) {
		router := newAuthRouter(&fakeAuthService{})

		rec := serve(router, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"passw0rd12"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
