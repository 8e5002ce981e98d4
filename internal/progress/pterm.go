package progress

import (
	"fmt"

	"github.com/pterm/pterm"
)

// stageLabels gives each fixed stage the human label Show puts in front of
// the percent it is passed.
var stageLabels = map[Stage]string{
	StageInit:          "Initializing connections",
	StageCollectSource: "Collecting source schema",
	StageCollectTarget: "Collecting target schema",
	StageDiff:          "Computing differences",
	StageRender:        "Rendering report",
}

// SpinnerReporter drives a single pterm spinner across the run, grounded on
// the single-spinner-per-operation pattern used for long migrations: one
// line that updates in place rather than a line per event.
type SpinnerReporter struct {
	spinner *pterm.SpinnerPrinter
}

// NewSpinnerReporter starts a spinner immediately so the first Show call has
// something to update.
func NewSpinnerReporter() *SpinnerReporter {
	sp, _ := pterm.DefaultSpinner.WithText("Starting schema comparison...").Start()
	return &SpinnerReporter{spinner: sp}
}

func (r *SpinnerReporter) Show(stage Stage, percent int) {
	if r.spinner == nil {
		return
	}
	label, ok := stageLabels[stage]
	if !ok {
		label = string(stage)
	}
	r.spinner.UpdateText(fmt.Sprintf("%s (%d%%)", label, percent))
}

func (r *SpinnerReporter) Status(msg string) {
	if r.spinner == nil {
		return
	}
	r.spinner.UpdateText(msg)
}

func (r *SpinnerReporter) Warning(msg string) {
	pterm.Warning.Println(msg)
}

func (r *SpinnerReporter) Error(msg string) {
	if r.spinner != nil {
		r.spinner.Fail(msg)
		r.spinner = nil
		return
	}
	pterm.Error.Println(msg)
}

// Done marks the spinner successful. The compare command calls this after
// the engine's Compare returns without error.
func (r *SpinnerReporter) Done(msg string) {
	if r.spinner == nil {
		return
	}
	r.spinner.Success(msg)
	r.spinner = nil
}

var _ Reporter = (*SpinnerReporter)(nil)
