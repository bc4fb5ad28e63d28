package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/pkg/apperror"
	"github.com/foc-sab/ctrlroom/pkg/response"
	"github.com/gin-gonic/gin"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error)
	logouts  []string
	forgots  []string
	resetErr error
}

func (s *stubAuthService) RegisterStudent(ctx context.Context, input dto.RegisterRequest) error {
	return nil
}

func (s *stubAuthService) RegisterAdmin(ctx context.Context, input dto.RegisterRequest) error {
	return nil
}

func (s *stubAuthService) Login(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, input)
	}
	return nil, apperror.ErrInvalidCredentials
}

func (s *stubAuthService) Logout(ctx context.Context, tokenString string) error {
	s.logouts = append(s.logouts, tokenString)
	return nil
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	s.forgots = append(s.forgots, email)
	return nil
}

func (s *stubAuthService) ResetPassword(ctx context.Context, input dto.ResetPasswordRequest) error {
	return s.resetErr
}

func newAuthRouter(stub *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(stub)

	r := gin.New()
	r.POST("/api/register", h.RegisterStudent)
	r.POST("/api/login", h.Login)
	r.POST("/api/logout", h.Logout)
	r.POST("/api/forgot-password", h.ForgotPassword)
	r.POST("/api/reset-password", h.ResetPassword)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return env
}

func TestLoginSuccess(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error) {
			return &dto.LoginResponse{Message: "Login successful", Role: "student", Token: "tok-123"}, nil
		},
	}
	r := newAuthRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/login", `{"email":"a@std.foc.sab.ac.lk","password":"secret1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Error("success = false")
	}
	data := env.Data.(map[string]any)
	if data["token"] != "tok-123" {
		t.Errorf("token = %v", data["token"])
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	r := newAuthRouter(&stubAuthService{})

	unknown := doJSON(t, r, http.MethodPost, "/api/login", `{"email":"nobody@std.foc.sab.ac.lk","password":"whatever"}`, nil)
	wrongPass := doJSON(t, r, http.MethodPost, "/api/login", `{"email":"known@std.foc.sab.ac.lk","password":"wrong"}`, nil)

	if unknown.Code != http.StatusUnauthorized || wrongPass.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want 401 for both", unknown.Code, wrongPass.Code)
	}
	if unknown.Body.String() != wrongPass.Body.String() {
		t.Errorf("bodies differ:\n%s\n%s", unknown.Body.String(), wrongPass.Body.String())
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	r := newAuthRouter(&stubAuthService{})

	w := doJSON(t, r, http.MethodPost, "/api/register", `{"name":"Amara","email":"not-an-email","password":"short","password_confirmation":"other"}`, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success {
		t.Error("success = true on validation failure")
	}
	for _, field := range []string{"email", "password", "password_confirmation"} {
		if _, ok := env.Errors[field]; !ok {
			t.Errorf("missing error for field %q in %v", field, env.Errors)
		}
	}
}

func TestForgotPasswordAlwaysAcknowledges(t *testing.T) {
	stub := &stubAuthService{}
	r := newAuthRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/forgot-password", `{"email":"ghost@std.foc.sab.ac.lk"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decodeEnvelope(t, w)
	if !strings.Contains(env.Message, "If an account exists") {
		t.Errorf("message = %q, reveals account existence", env.Message)
	}
	if len(stub.forgots) != 1 || stub.forgots[0] != "ghost@std.foc.sab.ac.lk" {
		t.Errorf("forgot calls = %v", stub.forgots)
	}
}

func TestLogoutPassesBearerToken(t *testing.T) {
	stub := &stubAuthService{}
	r := newAuthRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/logout", ``, map[string]string{"Authorization": "Bearer tok-abc"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(stub.logouts) != 1 || stub.logouts[0] != "tok-abc" {
		t.Errorf("logout calls = %v", stub.logouts)
	}

	// A missing header is still a successful, idempotent logout.
	w = doJSON(t, r, http.MethodPost, "/api/logout", ``, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status without header = %d, want 200", w.Code)
	}
}

func TestResetPasswordInvalidToken(t *testing.T) {
	r := newAuthRouter(&stubAuthService{resetErr: apperror.ErrInvalidToken})

	w := doJSON(t, r, http.MethodPost, "/api/reset-password", `{"email":"a@std.foc.sab.ac.lk","token":"bogus","password":"newpass1","password_confirmation":"newpass1"}`, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success {
		t.Error("success = true on invalid token")
	}
}
