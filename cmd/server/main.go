package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"healthledger/internal/authority"
	authorityhandler "healthledger/internal/authority/handler"
	"healthledger/internal/consent"
	"healthledger/internal/jwttoken"
	"healthledger/internal/ledger"
	"healthledger/internal/platform/config"
	"healthledger/internal/platform/httpserver"
	"healthledger/internal/platform/logger"
	"healthledger/internal/platform/metrics"
	"healthledger/internal/registry"
	httptransport "healthledger/internal/transport/http"
	"healthledger/pkg/domain"
	"healthledger/pkg/platform/audit"
	auditpublisher "healthledger/pkg/platform/audit/publisher"
	auditmemory "healthledger/pkg/platform/audit/store/memory"
	auditpostgres "healthledger/pkg/platform/audit/store/postgres"
)

// main wires dependencies and the server lifecycle. Business rules live in
// the authority service; this stays assembly only.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var (
		registryStore registry.Store
		consentStore  consent.Store
		ledgerStore   ledger.Store
		auditStore    audit.Store
	)

	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("could not open postgres connection", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := db.PingContext(pingCtx); err != nil {
			cancel()
			log.Error("could not reach postgres", "error", err.Error())
			os.Exit(1)
		}
		cancel()

		registryStore = registry.NewPostgresStore(db)
		consentStore = consent.NewPostgresStore(db)
		ledgerStore = ledger.NewPostgresStore(db)
		auditStore = auditpostgres.New(db)
		log.Info("using postgres stores")
	} else {
		registryStore = registry.NewInMemoryStore()
		consentStore = consent.NewInMemoryStore()
		ledgerStore = ledger.NewInMemoryStore()
		auditStore = auditmemory.NewInMemoryStore()
		log.Info("using in-memory stores")
	}

	m := metrics.New()

	opts := []authority.Option{
		authority.WithLogger(log),
		authority.WithMetrics(m),
		authority.WithAuditStore(auditStore),
	}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := auditpublisher.New(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer publisher.Close()
		opts = append(opts, authority.WithAuditPublisher(publisher))
		log.Info("audit publisher enabled", "topic", cfg.KafkaTopic)
	}

	svc, err := authority.New(ctx, domain.PersonID(cfg.AdminID), registryStore, consentStore, ledgerStore, opts...)
	if err != nil {
		log.Error("could not initialize authority", "error", err.Error())
		os.Exit(1)
	}

	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	authHandler := httptransport.NewAuthHandler(tokens, cfg.BootstrapSecretHash, log)
	authorityHandler := authorityhandler.New(svc, log, tokens)
	router := httptransport.NewRouter(authorityHandler, authHandler)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting healthledger", "addr", cfg.Addr, "admin", svc.Admin().String())

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
