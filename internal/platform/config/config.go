package config

import (
	"os"
	"strings"

	pstrings "healthledger/pkg/platform/strings"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	// AdminID seeds the initial administrator. The authority refuses to
	// start without one.
	AdminID string

	// BootstrapSecretHash is the bcrypt hash the dev token-mint endpoint
	// verifies against. Empty disables the endpoint.
	BootstrapSecretHash string

	// PostgresDSN switches the stores from memory to Postgres when set.
	PostgresDSN string

	// KafkaBrokers/KafkaTopic enable the audit publisher when set.
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("HEALTHLEDGER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	adminID := os.Getenv("HEALTHLEDGER_ADMIN_ID")
	if adminID == "" {
		adminID = "admin"
	}

	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "healthledger.audit"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = pstrings.DedupeAndTrim(strings.Split(raw, ","))
	}

	return Server{
		Addr:                addr,
		JWTSigningKey:       jwtSigningKey,
		JWTIssuer:           "healthledger",
		JWTAudience:         "healthledger-api",
		AdminID:             adminID,
		BootstrapSecretHash: os.Getenv("BOOTSTRAP_SECRET_HASH"),
		PostgresDSN:         os.Getenv("POSTGRES_DSN"),
		KafkaBrokers:        brokers,
		KafkaTopic:          topic,
	}
}
