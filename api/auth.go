package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/garnizeh/talentdesk/internal/portal"
	"github.com/garnizeh/talentdesk/internal/schema"
	"github.com/garnizeh/talentdesk/pkg/models"
)

type AuthHandler struct {
	portal        *portal.Portal
	schemas       *schema.Loader
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(p *portal.Portal, schemas *schema.Loader, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{portal: p, schemas: schemas, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	envelope
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.Registration
	if err := decodeBody(w, r, h.schemas, schema.Registration, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		writeError(w, "Passwords do not match", http.StatusBadRequest)
		return
	}

	id, err := h.portal.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.respondWithToken(w, *id, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, h.schemas, schema.Login, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	id, err := h.portal.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.respondWithToken(w, *id, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityID(r.Context())
	if err := h.portal.Logout(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, envelope{Success: true}, http.StatusOK)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, id models.Identity, status int) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenDuration)),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		logger.Error("sign token", slog.Any("err", err))
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{envelope: envelope{Success: true}, Token: tokenStr, User: id}, status)
}
