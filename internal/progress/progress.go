// Package progress implements the progress reporter sink of spec.md §6: a
// boundary the core calls at fixed stage transitions. Nothing in
// internal/engine blocks on it or depends on its concrete implementation.
package progress

// Stage identifies one of the engine's fixed run phases.
type Stage string

const (
	StageInit          Stage = "init"
	StageCollectSource Stage = "collect-source"
	StageCollectTarget Stage = "collect-target"
	StageDiff          Stage = "diff"
	StageRender        Stage = "render"
)

// Reporter is the sink the engine calls at stage boundaries. Show reports
// coarse-grained stage/percent progress; Status, Warning and Error carry
// free-form messages. Implementations must not block the caller for long —
// the core's correctness never depends on a reporter making progress.
type Reporter interface {
	Show(stage Stage, percent int)
	Status(msg string)
	Warning(msg string)
	Error(msg string)
}

// NullReporter discards everything. Used in tests and non-interactive runs
// (piped stdout, machine-readable formats) where spinner output would
// corrupt the real output stream.
type NullReporter struct{}

func (NullReporter) Show(Stage, int) {}
func (NullReporter) Status(string)   {}
func (NullReporter) Warning(string)  {}
func (NullReporter) Error(string)    {}

var _ Reporter = NullReporter{}
