package folders

import (
	"context"

	"github.com/google/uuid"
	"github.com/voxnote/memo-api/internal/models"
)

// Service defines the interface for folder management.
//
// Mutating operations are serialized one at a time per store, so
// concurrent callers never interleave writes to the folders document.
type Service interface {
	// Folders returns a snapshot of every folder
	Folders(ctx context.Context) []models.Folder

	// Folder returns the folder with the given id
	Folder(ctx context.Context, id uuid.UUID) (models.Folder, error)

	// FolderByName returns the first folder with the given name
	FolderByName(ctx context.Context, name string) (models.Folder, error)

	// Create adds a folder. A name collision is resolved by suffixing
	// the current unix timestamp, so Create always succeeds.
	Create(ctx context.Context, name string) (models.Folder, error)

	// Rename changes a folder's name, with the same collision policy
	// as Create. Default folders cannot be renamed.
	Rename(ctx context.Context, id uuid.UUID, newName string) error

	// Delete removes a folder. Default folders cannot be deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddRecording inserts a recording into a folder, removing it from
	// every other folder first so a recording lives in at most one
	AddRecording(ctx context.Context, recordingID, folderID uuid.UUID) error

	// RemoveRecording removes a recording from a folder; no-op if absent
	RemoveRecording(ctx context.Context, recordingID, folderID uuid.UUID) error

	// MoveRecording is remove-then-add across two folders. The two
	// steps are not atomic across a process crash.
	MoveRecording(ctx context.Context, recordingID, fromID, toID uuid.UUID) error

	// RecordingsInFolder returns the membership set of a folder
	RecordingsInFolder(ctx context.Context, folderID uuid.UUID) ([]uuid.UUID, error)

	// FolderContaining returns the first folder holding the recording,
	// or nil when it is filed nowhere
	FolderContaining(ctx context.Context, recordingID uuid.UUID) *models.Folder

	// RemoveFromAllFolders scrubs a deleted recording's id from every
	// folder, writing the document once if anything changed
	RemoveFromAllFolders(ctx context.Context, recordingID uuid.UUID) error

	// DefaultFolder returns the folder new recordings are filed into
	DefaultFolder(ctx context.Context) (models.Folder, error)

	// RecoveredFromCorruption reports whether initialization found an
	// unreadable document and silently reset to empty, as opposed to a
	// first run with no document at all
	RecoveredFromCorruption() bool
}
