package dbconn

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pgEdge/schemadiff/internal/apperrors"
)

// Build validates cfg and opens one connection, forcing UTF-8 and, when a
// non-default schema is requested, setting search_path to "<schema>,
// public". Driver errors are classified into the typed categories of
// spec.md §4.1 before surfacing. This is the only network handshake Build
// performs; retries belong to the caller (the Pool).
func Build(ctx context.Context, cfg Config) (*pgx.Conn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	connCfg, err := pgx.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, apperrors.Database(apperrors.CodeConnectionFailed, "parse connection string", err)
	}
	connCfg.ConnectTimeout = cfg.ConnectTimeout
	connCfg.RuntimeParams["client_encoding"] = "UTF8"
	if cfg.Schema != "" {
		connCfg.RuntimeParams["search_path"] = fmt.Sprintf("%s, public", cfg.Schema)
	}

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, classify(err)
	}
	return conn, nil
}

func dsn(cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "host=%s port=%d dbname=%s user=%s ", cfg.Host, cfg.Port, cfg.Database, cfg.User)
	if cfg.Password != "" {
		fmt.Fprintf(&b, "password=%s ", cfg.Password)
	}
	mode := cfg.SSLMode
	if mode == "" {
		mode = SSLPrefer
	}
	fmt.Fprintf(&b, "sslmode=%s ", mode)
	if cfg.CertPath != "" {
		fmt.Fprintf(&b, "sslcert=%s ", cfg.CertPath)
	}
	if cfg.KeyPath != "" {
		fmt.Fprintf(&b, "sslkey=%s ", cfg.KeyPath)
	}
	if cfg.CAPath != "" {
		fmt.Fprintf(&b, "sslrootcert=%s ", cfg.CAPath)
	}
	return strings.TrimSpace(b.String())
}

// classify maps a raw pgx/driver error to one of the typed connection
// failure categories of spec.md §4.1.
func classify(err error) error {
	msg := strings.ToLower(err.Error())

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Database(apperrors.CodeConnectionFailed, "connection timed out", err)
	}

	switch {
	case strings.Contains(msg, "password authentication failed"), strings.Contains(msg, "authentication failed"):
		return apperrors.Database(apperrors.CodeAuthFailed, "authentication failed", err)
	case strings.Contains(msg, "does not exist") && strings.Contains(msg, "database"):
		return apperrors.Database(apperrors.CodeDatabaseNotFound, "database does not exist", err)
	case strings.Contains(msg, "timeout"):
		return apperrors.Database(apperrors.CodeConnectionFailed, "connection timed out", err)
	case strings.Contains(msg, "ssl is not enabled"), strings.Contains(msg, "server does not support ssl"):
		return apperrors.Database(apperrors.CodeConnectionFailed, "server requires SSL", err)
	default:
		return apperrors.Database(apperrors.CodeConnectionFailed, "connection failed", err)
	}
}

// Version returns the server's raw `SELECT version()` string.
func Version(ctx context.Context, conn *pgx.Conn) (string, error) {
	var v string
	if err := conn.QueryRow(ctx, "SELECT version()").Scan(&v); err != nil {
		return "", apperrors.Database(apperrors.CodeQueryFailed, "select version()", err)
	}
	return v, nil
}
