package finder

import (
	"github.com/poiesic/phrasef/core"
)

// ScanMonitor provides hooks to observe the scan process.
// Implement this interface to trace classification and neighbor decisions.
type ScanMonitor interface {
	Start(text, phrase string)
	ModeDetected(phrase string, mode core.AnalysisMode)
	Occurrence(phrase string, pos core.Position, independent bool)
	Finish(result *core.PhraseResult)
}

// noopMonitor is a no-op implementation of ScanMonitor
type noopMonitor struct{}

var _ ScanMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string) {}
func (n *noopMonitor) ModeDetected(_ string, _ core.AnalysisMode) {}
func (n *noopMonitor) Occurrence(_ string, _ core.Position, _ bool) {}
func (n *noopMonitor) Finish(_ *core.PhraseResult) {}
