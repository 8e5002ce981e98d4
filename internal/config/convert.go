package config

import (
	"github.com/pgEdge/schemadiff/internal/dbconn"
	"github.com/pgEdge/schemadiff/internal/pool"
)

// ToDBConfig converts a boundary DatabaseConfig into the dbconn.Config the
// Connection Factory consumes, and runs its own invariant check.
func (d DatabaseConfig) ToDBConfig() (dbconn.Config, error) {
	c := dbconn.Config{
		Host:           d.Host,
		Port:           d.Port,
		Database:       d.Database,
		User:           d.User,
		Password:       d.Password,
		Schema:         d.Schema,
		ConnectTimeout: d.ConnectTimeout,
		SSLMode:        dbconn.SSLMode(d.SSLMode),
		CertPath:       d.SSLCertPath,
		KeyPath:        d.SSLKeyPath,
		CAPath:         d.SSLCAPath,
	}
	if err := c.Validate(); err != nil {
		return dbconn.Config{}, err
	}
	return c, nil
}

// PoolOptions derives shared pool.Options from the system section. Both
// sides of a comparison run share the same sizing/timeout policy; only the
// Factory (built from each side's DatabaseConfig) differs.
func (cfg AppConfig) PoolOptions() pool.Options {
	return pool.Options{
		MaxConnections: cfg.System.MaxConnections,
	}
}
