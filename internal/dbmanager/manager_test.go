package dbmanager

import (
	"testing"

	"github.com/pgEdge/schemadiff/internal/apperrors"
	"github.com/pgEdge/schemadiff/internal/dbconn"
)

// New's pools always dial through dbconn.Build, so exercising init/GetSource/
// Verify/etc. needs a live Postgres and is left to integration testing
// rather than tested here; see DESIGN.md. endpoint/wrapInit are pure and testable.

func TestEndpointFormatsHostPortDatabase(t *testing.T) {
	cfg := dbconn.Config{Host: "db.internal", Port: 5432, Database: "app"}
	if got := endpoint(cfg); got != "db.internal:5432/app" {
		t.Errorf("expected 'db.internal:5432/app', got %q", got)
	}
}

func TestWrapInitCarriesSideDetailAndCause(t *testing.T) {
	cause := apperrors.Database(apperrors.CodeConnectionFailed, "refused", nil)
	err := wrapInit(cause, "source")

	if err.Code != apperrors.CodeManagerInitFailed {
		t.Errorf("expected CodeManagerInitFailed, got %v", err.Code)
	}
	if err.Details["side"] != "source" {
		t.Errorf("expected side detail 'source', got %v", err.Details["side"])
	}
}
