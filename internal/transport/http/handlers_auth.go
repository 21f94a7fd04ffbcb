package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"healthledger/internal/platform/middleware"
	"healthledger/internal/transport/http/shared"
	"healthledger/pkg/domain"
	dErrors "healthledger/pkg/domain-errors"
	"healthledger/pkg/platform/secrets"
)

const accessTokenTTL = 15 * time.Minute

// TokenIssuer mints signed access tokens for a principal id.
type TokenIssuer interface {
	GenerateAccessToken(personID string, expiresIn time.Duration) (string, error)
}

// AuthHandler exposes the bootstrap token mint. Callers present the shared
// bootstrap secret and receive a bearer token for the principal id they
// claim; production deployments put a real identity provider here instead.
type AuthHandler struct {
	logger     *slog.Logger
	tokens     TokenIssuer
	secretHash string
}

func NewAuthHandler(tokens TokenIssuer, secretHash string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		tokens:     tokens,
		secretHash: secretHash,
	}
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Route("/auth", func(router chi.Router) {
		router.Use(middleware.Recovery(h.logger))
		router.Use(middleware.RequestID)
		router.Use(middleware.Logger(h.logger))
		router.Use(middleware.ContentTypeJSON)

		router.Post("/token", h.handleToken)
	})
}

type TokenRequest struct {
	PersonID string `json:"person_id"`
	Secret   string `json:"secret"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *AuthHandler) handleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.secretHash == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "token minting is disabled"))
		return
	}

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	id, err := domain.ParsePersonID(req.PersonID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := secrets.Verify(req.Secret, h.secretHash); err != nil {
		h.logger.WarnContext(ctx, "token mint rejected",
			"request_id", middleware.GetRequestID(ctx),
			"person_id", id.String(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid bootstrap secret"))
		return
	}

	token, err := h.tokens.GenerateAccessToken(id.String(), accessTokenTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "could not sign access token",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "could not issue token"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	})
}
