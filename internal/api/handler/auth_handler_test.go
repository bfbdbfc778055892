package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Name != "Alice" || in.Role != "employer" || in.Company != "Acme" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: in.Role, Company: in.Company, PasswordHash: "hash"}, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newContext(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1","role":"employer","company":"Acme"}`, "")
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
	if resp["success"] != true || resp["message"] == "" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	user, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in data")
	}
	if user["email"] != "alice@example.com" || user["role"] != "employer" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestAuthHandler_Register_ShapeValidation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, _ := newContext(http.MethodPost, "/api/auth/register", `{"email":"not-an-email","password":"1","role":"user"}`, "")
	err := h.Register(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := map[string]bool{}
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"name", "email", "password", "role"} {
		if !fields[want] {
			t.Errorf("expected a %s field error, got %+v", want, ve.Fields)
		}
	}
}

func TestAuthHandler_Register_ServiceError(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, &domain.DuplicateKeyError{Field: "email"}
		},
	}
	h := NewAuthHandler(stub, false)

	c, _ := newContext(http.MethodPost, "/api/auth/register", `{"name":"Bob","email":"bob@example.com","password":"secret1"}`, "")
	var dup *domain.DuplicateKeyError
	if err := h.Register(c); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError to propagate, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, _ := newContext(http.MethodPost, "/api/auth/register", "not-json", "")
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", Name: "Alice", Role: domain.RoleJobSeeker}, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret"}`, "")
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
	user, ok := resp["data"].(map[string]any)
	if !ok || user["name"] != "Alice" {
		t.Fatalf("unexpected user payload: %+v", resp["data"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, false)

	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"bad"}`, "")
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com"}`, "")
	var ve *domain.ValidationError
	if err := h.Login(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Name: "Alice"}, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newContext(http.MethodGet, "/api/auth/me", "", "u1")
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Data domain.User `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data.ID != "u1" {
		t.Fatalf("unexpected user: %+v", resp.Data)
	}
}

func TestAuthHandler_Me_WithoutAuth(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, _ := newContext(http.MethodGet, "/api/auth/me", "", "")
	var he *echo.HTTPError
	if err := h.Me(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var gotID string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, tokenID string, expiresAt time.Time) error {
			gotID = tokenID
			if expiresAt.IsZero() {
				t.Fatalf("expected token expiry to be forwarded")
			}
			return nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newContext(http.MethodPost, "/api/auth/logout", "", "u1")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || gotID != "jti-1" {
		t.Fatalf("expected revoke of jti-1, got code %d id %q", rec.Code, gotID)
	}
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	expires := time.Date(2026, 1, 1, 12, 10, 0, 0, time.UTC)
	stub := &stubAuthService{
		forgotFn: func(ctx context.Context, email string) (*ports.PasswordResetRequest, error) {
			return &ports.PasswordResetRequest{Token: "raw-token", ExpiresAt: expires}, nil
		},
	}

	tests := []struct {
		name      string
		expose    bool
		wantToken string
	}{
		{"hidden by default", false, ""},
		{"exposed when enabled", true, "raw-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(stub, tt.expose)
			c, rec := newContext(http.MethodPost, "/api/auth/forgot-password", `{"email":"alice@example.com"}`, "")
			if err := h.ForgotPassword(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			var resp struct {
				Message string             `json:"message"`
				Data    resetTokenResponse `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Message != forgotPasswordMessage {
				t.Fatalf("unexpected message %q", resp.Message)
			}
			if resp.Data.ResetToken != tt.wantToken {
				t.Fatalf("reset token = %q, want %q", resp.Data.ResetToken, tt.wantToken)
			}
		})
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	stub := &stubAuthService{
		resetFn: func(ctx context.Context, token, password string) (string, *domain.User, error) {
			if token != "abc" || password != "newpass1" {
				t.Fatalf("unexpected args: %s %s", token, password)
			}
			return "jwt", &domain.User{ID: "u1"}, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newContext(http.MethodPut, "/api/auth/reset-password/abc", `{"password":"newpass1"}`, "")
	c.SetParamNames("token")
	c.SetParamValues("abc")

	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "jwt" {
		t.Fatalf("expected fresh token, got %v", resp["token"])
	}
}
