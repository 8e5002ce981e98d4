// Package dbconn builds and validates single PostgreSQL connections: the
// Connection Factory of spec.md §4.1. Retries live one layer up, in the
// Pool — this package opens exactly one connection per call.
package dbconn

import (
	"fmt"
	"time"

	"github.com/pgEdge/schemadiff/internal/apperrors"
)

// SSLMode is one of the PostgreSQL sslmode values.
type SSLMode string

const (
	SSLDisable    SSLMode = "disable"
	SSLAllow      SSLMode = "allow"
	SSLPrefer     SSLMode = "prefer"
	SSLRequire    SSLMode = "require"
	SSLVerifyCA   SSLMode = "verify-ca"
	SSLVerifyFull SSLMode = "verify-full"
)

// Config holds the parameters needed to open one validated connection.
// Immutable once constructed; created by the boundary (internal/config)
// and handed in read-only.
type Config struct {
	Host           string
	Port           int
	Database       string
	User           string
	Password       string
	Schema         string // target schema; empty means the role's default search_path
	ConnectTimeout time.Duration
	SSLMode        SSLMode
	CertPath       string
	KeyPath        string
	CAPath         string
}

// Validate checks the invariants of spec.md §3: non-empty host/db/user,
// port in 1..65535, timeout in [1s, 300s], and a CA path present for the
// verify-ca/verify-full SSL modes.
func (c Config) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if c.Database == "" {
		missing = append(missing, "database")
	}
	if c.User == "" {
		missing = append(missing, "user")
	}
	if len(missing) > 0 {
		return apperrors.MissingConfig(missing)
	}

	if c.Port < 1 || c.Port > 65535 {
		return apperrors.InvalidConfig("port", c.Port, "1..65535")
	}
	if c.ConnectTimeout < time.Second || c.ConnectTimeout > 300*time.Second {
		return apperrors.InvalidConfig("connect_timeout", c.ConnectTimeout, "1s..300s")
	}

	switch c.SSLMode {
	case SSLDisable, SSLAllow, SSLPrefer, SSLRequire, SSLVerifyCA, SSLVerifyFull, "":
	default:
		return apperrors.InvalidConfig("ssl_mode", c.SSLMode, "disable|allow|prefer|require|verify-ca|verify-full")
	}

	if (c.SSLMode == SSLVerifyCA || c.SSLMode == SSLVerifyFull) && c.CAPath == "" {
		return apperrors.InvalidConfig("ssl_ca_path", c.CAPath, fmt.Sprintf("non-empty when ssl_mode is %q", c.SSLMode))
	}

	return nil
}
