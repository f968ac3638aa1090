package authhandler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"folha/internal/auth"
	"folha/internal/transport/http/api"
)

const tokenTTL = 8 * time.Hour

type Handler struct {
	DB     *pgxpool.Pool
	Secret string
}

func NewHandler(db *pgxpool.Pool, secret string) *Handler {
	return &Handler{DB: db, Secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := api.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload")
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	var id, hash string
	err := h.DB.QueryRow(r.Context(), `
		SELECT id, password_hash
		FROM users
		WHERE email = $1
	`, payload.Email).Scan(&id, &hash)
	if err != nil {
		api.Fail(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
		return
	}

	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: id, Email: payload.Email}, tokenTTL)
	if err != nil {
		api.Fail(w, r, http.StatusInternalServerError, "TOKEN_ERROR", "failed to issue token")
		return
	}

	api.Success(w, r, loginResponse{Token: token, ExpiresAt: time.Now().Add(tokenTTL)})
}
