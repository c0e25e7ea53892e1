// Package metrics defines the build and serve instrumentation surface.
package metrics

import "time"

// BuildOutcomeLabel is a bounded label value for build outcome counters.
type BuildOutcomeLabel string

const (
	OutcomeSuccess BuildOutcomeLabel = "success"
	OutcomeFailed  BuildOutcomeLabel = "failed"
)

// Recorder abstracts metrics recording so callers never depend on a concrete
// backend. The nil recorder is valid and records nothing.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	ObserveStageDuration(stage string, d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	AddDocumentsRendered(n int)
}

// NoopRecorder discards all observations.
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) AddDocumentsRendered(int)                   {}
