package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/idently/auth-api/internal/api/middleware"
	"github.com/idently/auth-api/internal/core/domain"
	"github.com/idently/auth-api/internal/core/ports"
)

type stubAccountService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (string, *domain.PublicUser, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	profileFn  func(ctx context.Context, principal domain.Principal) (*domain.PublicUser, error)
	listFn     func(ctx context.Context) ([]domain.PublicUser, error)
	deleteFn   func(ctx context.Context, targetID string) (*domain.PublicUser, error)
}

func (s *stubAccountService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.PublicUser, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) Profile(ctx context.Context, principal domain.Principal) (*domain.PublicUser, error) {
	return s.profileFn(ctx, principal)
}

func (s *stubAccountService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	return s.listFn(ctx)
}

func (s *stubAccountService) DeleteUser(ctx context.Context, targetID string) (*domain.PublicUser, error) {
	return s.deleteFn(ctx, targetID)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (string, *domain.PublicUser, error) {
			if input.Username != "alice" || input.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return "token123", &domain.PublicUser{ID: "id-1", Username: "alice", Email: input.Email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"pass1234","role":"admin"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token in response, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	// Whatever role the payload claimed, the response reflects the stored one.
	if user["role"] != domain.RoleUser {
		t.Fatalf("expected role user, got %v", user["role"])
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("response must not contain password material")
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(context.Context, ports.RegisterInput) (string, *domain.PublicUser, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"pass1234"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(context.Context, ports.RegisterInput) (string, *domain.PublicUser, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	cases := []string{
		"not-json",
		`{"username":"x","email":"not-an-email","password":"pass1234"}`,
		`{"username":"bob","email":"bob@example.com","password":"short"}`,
	}
	for _, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/api/auth/register", body)
		err := h.Register(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(_ context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "pass1234" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pass1234"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if _, present := resp["user"]; present {
		t.Fatalf("login response must not include the account object")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"bad-pass"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAccountService{
		profileFn: func(_ context.Context, principal domain.Principal) (*domain.PublicUser, error) {
			if principal.UserID != "id-1" {
				t.Fatalf("expected lookup by verified subject, got %q", principal.UserID)
			}
			return &domain.PublicUser{ID: "id-1", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set(middleware.PrincipalKey, domain.Principal{UserID: "id-1", Email: "alice@example.com", Role: domain.RoleUser})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("profile response must not mention password material")
	}
}

func TestAuthHandler_Me_NoPrincipal(t *testing.T) {
	stub := &stubAccountService{
		profileFn: func(context.Context, domain.Principal) (*domain.PublicUser, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/auth/me", "")

	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&stubAccountService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/logout", "")
	c.Set(middleware.PrincipalKey, domain.Principal{UserID: "id-1", Role: domain.RoleUser})

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
