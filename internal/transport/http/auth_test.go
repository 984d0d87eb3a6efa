package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cimillas/gatherhub/internal/domain"
)

func TestHandleRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"name":"Ana","email":"ana@example.com","password":"s3cret"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"email":"ana@example.com"`,
		},
		{
			name:           "invalid json",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"invalid_request_body"`,
		},
		{
			name:           "missing name",
			body:           `{"email":"ana@example.com","password":"s3cret"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"name_required"`,
		},
		{
			name:           "malformed email",
			body:           `{"name":"Ana","email":"not-an-email","password":"s3cret"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"invalid_email"`,
		},
		{
			name:           "missing password",
			body:           `{"name":"Ana","email":"ana@example.com"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"password_required"`,
		},
		{
			name:           "duplicate email",
			body:           `{"name":"Ana","email":"ana@example.com","password":"s3cret"}`,
			serviceErr:     domain.ErrEmailTaken,
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"email_taken"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubAuthService{registerErr: tc.serviceErr}
			handler := HandleRegister(svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tc.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %s", tc.expectedSubstr, rec.Body.String())
			}
		})
	}

	t.Run("rejects GET", func(t *testing.T) {
		handler := HandleRegister(&stubAuthService{})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/register", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("response omits the password hash", func(t *testing.T) {
		handler := HandleRegister(&stubAuthService{})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"name":"Ana","email":"ana@example.com","password":"s3cret"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if strings.Contains(rec.Body.String(), "s3cret") || strings.Contains(rec.Body.String(), "password") {
			t.Fatalf("credentials leaked in response: %s", rec.Body.String())
		}
	})
}

func TestHandleLogin(t *testing.T) {
	t.Parallel()

	t.Run("success returns token and user", func(t *testing.T) {
		svc := &stubAuthService{token: "jwt-token"}
		handler := HandleLogin(svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@example.com","password":"s3cret"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"token":"jwt-token"`) || !strings.Contains(body, `"email":"ana@example.com"`) {
			t.Fatalf("unexpected body: %s", body)
		}
	})

	t.Run("bad credentials are unauthorized", func(t *testing.T) {
		svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
		handler := HandleLogin(svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@example.com","password":"wrong"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), `"code":"invalid_credentials"`) {
			t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("malformed email fails before the service", func(t *testing.T) {
		svc := &stubAuthService{}
		handler := HandleLogin(svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"nope","password":"s3cret"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if svc.loginCalled {
			t.Fatal("service called despite invalid email")
		}
	})
}

type stubAuthService struct {
	registerErr error
	loginErr    error
	token       string
	loginCalled bool
}

func (s *stubAuthService) Register(_ context.Context, name, email, _ string) (domain.User, error) {
	if s.registerErr != nil {
		return domain.User{}, s.registerErr
	}
	return domain.User{ID: "user-1", Name: name, Email: email}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (string, domain.User, error) {
	s.loginCalled = true
	if s.loginErr != nil {
		return "", domain.User{}, s.loginErr
	}
	return s.token, domain.User{ID: "user-1", Name: "Ana", Email: email}, nil
}
