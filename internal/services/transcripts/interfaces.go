package transcripts

import "context"

// Service defines the interface for the transcript store: a persisted
// map from recording id to transcript text.
//
// Set and Delete persist the whole document before returning, so a
// caller that observed a successful Set never reads stale state.
type Service interface {
	// Get returns the transcript for a recording id, and whether one exists
	Get(ctx context.Context, recordingID string) (string, bool)

	// Set stores a transcript and persists synchronously
	Set(ctx context.Context, recordingID, text string) error

	// Delete removes a transcript and persists synchronously; no-op if absent
	Delete(ctx context.Context, recordingID string) error

	// Count returns the number of stored transcripts
	Count(ctx context.Context) int

	// RecoveredFromCorruption reports whether initialization found an
	// unreadable document and silently reset to empty
	RecoveredFromCorruption() bool
}
