package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authorityhandler "healthledger/internal/authority/handler"
)

// NewRouter assembles the public surface. Domain routes live behind the
// authority handler's own middleware chain; the token mint and operational
// endpoints stay outside it.
func NewRouter(authority *authorityhandler.Handler, auth *AuthHandler) http.Handler {
	r := chi.NewRouter()

	auth.Register(r)
	authority.Register(r)

	r.Get("/healthz", handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
