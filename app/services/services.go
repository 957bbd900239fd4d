// Package services holds the application layer: it turns DTOs into domain
// entities, so entity rules run on every write, and calls the repositories.
package services

// ValidationRecorder is told about every write rejected by an entity's rules.
type ValidationRecorder interface {
	ValidationFailed(entity string)
}

type noopRecorder struct{}

func (noopRecorder) ValidationFailed(string) {}

func recorderOrNoop(r ValidationRecorder) ValidationRecorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}
