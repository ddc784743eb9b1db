package types

import (
	"github.com/voxnote/memo-api/internal/database"
	"github.com/voxnote/memo-api/internal/services/folders"
	"github.com/voxnote/memo-api/internal/services/library"
	"github.com/voxnote/memo-api/internal/services/recordings"
	"github.com/voxnote/memo-api/internal/services/transcripts"
	"github.com/voxnote/memo-api/internal/services/waveforms"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB              *database.DB
	Library         library.Service
	RecordingStore  recordings.Service
	FolderStore     folders.Service
	TranscriptStore transcripts.Service
	WaveformService waveforms.Service
}
