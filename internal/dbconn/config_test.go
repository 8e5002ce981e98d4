package dbconn

import (
	"errors"
	"testing"
	"time"

	"github.com/pgEdge/schemadiff/internal/apperrors"
)

func validConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           5432,
		Database:       "app",
		User:           "app_user",
		ConnectTimeout: 10 * time.Second,
		SSLMode:        SSLPrefer,
	}
}

func asAppError(t *testing.T, err error) *apperrors.Error {
	t.Helper()
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an *apperrors.Error, got %T: %v", err, err)
	}
	return appErr
}

func TestValidateAcceptsAWellFormedConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateRejectsMissingHostDatabaseUser(t *testing.T) {
	c := validConfig()
	c.Host = ""
	c.Database = ""
	c.User = ""

	err := c.Validate()
	appErr := asAppError(t, err)
	if appErr.Code != apperrors.CodeMissingConfig {
		t.Errorf("expected CodeMissingConfig, got %v", appErr.Code)
	}
	keys, ok := appErr.Details["missing_keys"].([]string)
	if !ok || len(keys) != 3 {
		t.Errorf("expected 3 missing keys, got %v", appErr.Details["missing_keys"])
	}
}

func TestValidateRejectsOutOfRangePort(t *testing.T) {
	for _, port := range []int{0, -1, 65536, 100000} {
		c := validConfig()
		c.Port = port
		err := c.Validate()
		appErr := asAppError(t, err)
		if appErr.Code != apperrors.CodeInvalidConfig {
			t.Errorf("port %d: expected CodeInvalidConfig, got %v", port, appErr.Code)
		}
	}
}

func TestValidateRejectsOutOfBoundsConnectTimeout(t *testing.T) {
	c := validConfig()
	c.ConnectTimeout = 500 * time.Millisecond
	if err := c.Validate(); err == nil {
		t.Error("expected an error for a sub-1s connect timeout")
	}

	c = validConfig()
	c.ConnectTimeout = 301 * time.Second
	if err := c.Validate(); err == nil {
		t.Error("expected an error for a connect timeout over 300s")
	}
}

func TestValidateRejectsUnknownSSLMode(t *testing.T) {
	c := validConfig()
	c.SSLMode = "bogus"
	if err := c.Validate(); err == nil {
		t.Error("expected an error for an unrecognized ssl_mode")
	}
}

func TestValidateAcceptsEmptySSLModeAsUnset(t *testing.T) {
	c := validConfig()
	c.SSLMode = ""
	if err := c.Validate(); err != nil {
		t.Errorf("expected an empty ssl_mode to be accepted, got %v", err)
	}
}

func TestValidateRequiresCAPathForVerifyModes(t *testing.T) {
	for _, mode := range []SSLMode{SSLVerifyCA, SSLVerifyFull} {
		c := validConfig()
		c.SSLMode = mode
		c.CAPath = ""
		if err := c.Validate(); err == nil {
			t.Errorf("expected %q without a CA path to be rejected", mode)
		}

		c.CAPath = "/etc/ssl/ca.pem"
		if err := c.Validate(); err != nil {
			t.Errorf("expected %q with a CA path to be accepted, got %v", mode, err)
		}
	}
}

func TestValidateDoesNotRequireCAPathForNonVerifyModes(t *testing.T) {
	for _, mode := range []SSLMode{SSLDisable, SSLAllow, SSLPrefer, SSLRequire} {
		c := validConfig()
		c.SSLMode = mode
		c.CAPath = ""
		if err := c.Validate(); err != nil {
			t.Errorf("expected %q without a CA path to be accepted, got %v", mode, err)
		}
	}
}
