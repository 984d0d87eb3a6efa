package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/gatherhub/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AuthService is the minimal interface needed by the auth endpoints.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
}

// HandleRegister returns an HTTP handler for user signup.
func HandleRegister(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req registerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, codeNameRequired, "name is required")
			return
		}
		if err := validate.Var(req.Email, "required,email"); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidEmail, "a valid email is required")
			return
		}
		if req.Password == "" {
			writeError(w, http.StatusBadRequest, codePasswordRequired, "password is required")
			return
		}

		user, err := svc.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if err == domain.ErrEmailTaken {
				writeError(w, http.StatusConflict, codeEmailTaken, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(userResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		})
	}
}

// HandleLogin returns an HTTP handler for credential login.
func HandleLogin(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req loginRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := validate.Var(req.Email, "required,email"); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidEmail, "a valid email is required")
			return
		}
		if req.Password == "" {
			writeError(w, http.StatusBadRequest, codePasswordRequired, "password is required")
			return
		}

		tok, user, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if err == domain.ErrInvalidCredentials {
				writeError(w, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(loginResponse{
			Token: tok,
			User: userResponse{
				ID:        user.ID,
				Name:      user.Name,
				Email:     user.Email,
				CreatedAt: user.CreatedAt,
			},
		})
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}
