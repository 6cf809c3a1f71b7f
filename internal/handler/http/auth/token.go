package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"foodgram/internal/domain/entity"
	"foodgram/internal/handler/http/requestid"
	"foodgram/internal/handler/http/respond"
	"foodgram/internal/pkg/validation"
	authservice "foodgram/internal/service/auth"
)

// Authenticator is the part of the auth service the token endpoints use.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	Logout(ctx context.Context, claims *authservice.Claims) error
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

type loginResponse struct {
	AuthToken string `json:"auth_token"`
}

// LoginHandler issues a token for valid credentials.
type LoginHandler struct {
	Svc Authenticator
}

// ServeHTTP ログインしてトークンを取得
// @Summary      トークン取得
// @Description  メールアドレスとパスワードで認証し、auth_token を返します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body loginRequest true "email / password"
// @Success      200 {object} loginResponse
// @Failure      400 {object} map[string]string "Invalid credentials"
// @Failure      429 {object} map[string]string "Too many requests"
// @Router       /auth/token/login/ [post]
func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.Default().With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req loginRequest
	if !respond.DecodeJSON(w, r, &req) {
		RecordAuthRequest("login", "failure", time.Since(start))
		return
	}
	if errs := validation.Validate(&req); errs != nil {
		RecordAuthRequest("login", "failure", time.Since(start))
		respond.FieldErrors(w, errs)
		return
	}

	token, user, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, authservice.ErrInvalidCredentials):
		logger.Info("login rejected")
		RecordAuthRequest("login", "failure", time.Since(start))
		respond.FieldErrors(w, map[string][]string{
			"non_field_errors": {authservice.ErrInvalidCredentials.Error()},
		})
		return
	case err != nil:
		RecordAuthRequest("login", "error", time.Since(start))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("login succeeded", slog.Int64("user_id", user.ID))
	RecordAuthRequest("login", "success", time.Since(start))
	respond.JSON(w, http.StatusOK, loginResponse{AuthToken: token})
}

// LogoutHandler revokes the token used for the request.
type LogoutHandler struct {
	Svc Authenticator
}

// ServeHTTP ログアウト
// @Summary      トークン破棄
// @Description  現在のトークンを失効させます
// @Tags         auth
// @Security     TokenAuth
// @Success      204 "No Content"
// @Failure      401 {object} map[string]string "Authentication credentials were not provided"
// @Failure      503 {object} map[string]string "Revocation store unavailable"
// @Router       /auth/token/logout/ [post]
func (h LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		RecordAuthRequest("logout", "failure", time.Since(start))
		respond.Detail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	if err := h.Svc.Logout(r.Context(), claims); err != nil {
		RecordAuthRequest("logout", "error", time.Since(start))
		respond.SafeError(w, http.StatusServiceUnavailable, err)
		return
	}

	RecordAuthRequest("logout", "success", time.Since(start))
	respond.NoContent(w)
}
