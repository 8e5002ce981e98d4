package progress

import "testing"

// NullReporter has no observable state; these calls only need to not panic,
// confirming it satisfies Reporter as a true no-op for piped/non-interactive
// runs.
func TestNullReporterIsANoOp(t *testing.T) {
	var r Reporter = NullReporter{}
	r.Show(StageInit, 50)
	r.Status("working")
	r.Warning("careful")
	r.Error("failed")
}

func TestStageConstantsAreDistinct(t *testing.T) {
	stages := []Stage{StageInit, StageCollectSource, StageCollectTarget, StageDiff, StageRender}
	seen := map[Stage]bool{}
	for _, s := range stages {
		if seen[s] {
			t.Errorf("duplicate stage value %q", s)
		}
		seen[s] = true
	}
}
