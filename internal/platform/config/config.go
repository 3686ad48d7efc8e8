package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration so main stays lean.
type Server struct {
	Addr string

	Ledger LedgerConfig
	Oracle OracleConfig
	Redis  RedisConfig
	Audit  AuditConfig

	// JWTSigningKey guards the mutating certificate routes. Empty disables
	// the auth middleware (dev mode).
	JWTSigningKey string

	// Deployment metadata served verbatim by /api/contract-info.
	ContractAddress string
	ContractNetwork string
}

// LedgerConfig selects and tunes the certificate registry client.
type LedgerConfig struct {
	// Mode is "memory" (in-process chain, dev and tests) or "node"
	// (HTTP client against a registry node).
	Mode          string
	NodeURL       string
	IssuerAccount string
	// Timeout bounds each mutating call end to end, submission through
	// confirmation. Expiry surfaces as a timeout error, never a hang.
	Timeout time.Duration
	// ConfirmPollInterval paces receipt polling against a node.
	ConfirmPollInterval time.Duration
}

// OracleConfig selects the eligibility data source.
type OracleConfig struct {
	// PostgresDSN switches the oracle store from the static seed dataset
	// to postgres when set.
	PostgresDSN string
	// CacheTTL bounds retention of cached eligibility lookups.
	CacheTTL time.Duration
}

// RedisConfig tunes the optional redis connection used by the oracle cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuditConfig selects the audit sink. Without brokers the trail stays
// in-process.
type AuditConfig struct {
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr: envOr("ATTESTOR_ADDR", ":3000"),
		Ledger: LedgerConfig{
			Mode:                envOr("LEDGER_MODE", "memory"),
			NodeURL:             envOr("LEDGER_NODE_URL", "http://localhost:8545"),
			IssuerAccount:       envOr("LEDGER_ISSUER_ACCOUNT", "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"),
			Timeout:             envDuration("LEDGER_TIMEOUT", 30*time.Second),
			ConfirmPollInterval: envDuration("LEDGER_CONFIRM_POLL", 500*time.Millisecond),
		},
		Oracle: OracleConfig{
			PostgresDSN: os.Getenv("ORACLE_POSTGRES_DSN"),
			CacheTTL:    envDuration("ORACLE_CACHE_TTL", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Audit: AuditConfig{
			KafkaBrokers: envList("AUDIT_KAFKA_BROKERS"),
			KafkaTopic:   envOr("AUDIT_KAFKA_TOPIC", "attestor.audit"),
		},
		JWTSigningKey:   os.Getenv("JWT_SIGNING_KEY"),
		ContractAddress: os.Getenv("CONTRACT_ADDRESS"),
		ContractNetwork: envOr("CONTRACT_NETWORK", "localhost:8545"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
