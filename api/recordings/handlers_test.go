package recordings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxnote/memo-api/api/types"
	"github.com/voxnote/memo-api/internal/models"
	"github.com/voxnote/memo-api/internal/services/folders"
	"github.com/voxnote/memo-api/internal/services/library"
)

// mockLibrary is a mock implementation of library.Service for handler tests
type mockLibrary struct {
	recordings    []models.Recording
	folderRecs    map[uuid.UUID][]models.Recording
	transcript    string
	transcribeErr error
	deleteErr     error
	playErr       error
	startErr      error
	stopErr       error
	startLocation string
}

func (m *mockLibrary) ListRecordings(ctx context.Context) []models.Recording {
	return m.recordings
}

func (m *mockLibrary) ListRecordingsInFolder(ctx context.Context, folderID uuid.UUID) ([]models.Recording, error) {
	recs, ok := m.folderRecs[folderID]
	if !ok {
		return nil, folders.ErrFolderNotFound
	}
	return recs, nil
}

func (m *mockLibrary) StartRecording(ctx context.Context) (string, error) {
	return m.startLocation, m.startErr
}

func (m *mockLibrary) StopRecording(ctx context.Context) error {
	return m.stopErr
}

func (m *mockLibrary) Play(ctx context.Context, recordingID uuid.UUID) error {
	return m.playErr
}

func (m *mockLibrary) StopPlayback(ctx context.Context) error {
	return nil
}

func (m *mockLibrary) DeleteRecording(ctx context.Context, recordingID uuid.UUID) error {
	return m.deleteErr
}

func (m *mockLibrary) Transcribe(ctx context.Context, recordingID uuid.UUID) (string, error) {
	return m.transcript, m.transcribeErr
}

func (m *mockLibrary) IsTranscribing(recordingID uuid.UUID) bool {
	return false
}

func (m *mockLibrary) SetTranscript(ctx context.Context, recordingID uuid.UUID, text string) error {
	return nil
}

func (m *mockLibrary) PreloadWaveforms(ctx context.Context) {}

func setupRouter(lib library.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	deps := &types.Dependencies{Library: lib}
	RegisterRoutes(engine.Group(""), deps)
	return engine
}

func TestList(t *testing.T) {
	lib := &mockLibrary{recordings: []models.Recording{
		{ID: uuid.New(), FileLocation: "/audio/a.m4a"},
		{ID: uuid.New(), FileLocation: "/audio/b.m4a"},
	}}
	router := setupRouter(lib)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recordings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response types.RecordingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, types.StatusOK, response.Status)
	assert.Equal(t, 2, response.Count)
	assert.Len(t, response.Recordings, 2)
}

func TestListByFolder(t *testing.T) {
	folderID := uuid.New()
	lib := &mockLibrary{folderRecs: map[uuid.UUID][]models.Recording{
		folderID: {{ID: uuid.New(), FileLocation: "/audio/a.m4a"}},
	}}
	router := setupRouter(lib)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recordings?folder_id="+folderID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response types.RecordingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
}

func TestListByUnknownFolder(t *testing.T) {
	router := setupRouter(&mockLibrary{folderRecs: map[uuid.UUID][]models.Recording{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recordings?folder_id="+uuid.New().String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListByInvalidFolderID(t *testing.T) {
	router := setupRouter(&mockLibrary{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recordings?folder_id=not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRecording(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		deleteErr      error
		expectedStatus int
	}{
		{"successful delete", uuid.New().String(), nil, http.StatusOK},
		{"invalid id", "not-a-uuid", nil, http.StatusBadRequest},
		{"unknown recording", uuid.New().String(), library.ErrRecordingNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&mockLibrary{deleteErr: tt.deleteErr})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/recordings/"+tt.id, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTranscribe(t *testing.T) {
	tests := []struct {
		name           string
		transcribeErr  error
		expectedStatus int
	}{
		{"success", nil, http.StatusOK},
		{"unknown recording", library.ErrRecordingNotFound, http.StatusNotFound},
		{"already in progress", library.ErrTranscriptionInProgress, http.StatusConflict},
		{"endpoint failure", assert.AnError, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&mockLibrary{transcript: "hello", transcribeErr: tt.transcribeErr})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/recordings/"+uuid.New().String()+"/transcribe", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response types.TranscriptionResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, "hello", response.Text)
			}
		})
	}
}

func TestStartCapture(t *testing.T) {
	router := setupRouter(&mockLibrary{startLocation: "/audio/recording_20240101_120000.m4a"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/capture/start", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "/audio/recording_20240101_120000.m4a", response["file_location"])
}

func TestStartCaptureConflict(t *testing.T) {
	router := setupRouter(&mockLibrary{startErr: library.ErrRecordingInProgress})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/capture/start", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStopCaptureWithoutActiveRecording(t *testing.T) {
	router := setupRouter(&mockLibrary{stopErr: library.ErrNoActiveRecording})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/capture/stop", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPlayUnknownRecording(t *testing.T) {
	router := setupRouter(&mockLibrary{playErr: library.ErrRecordingNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recordings/"+uuid.New().String()+"/play", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStopPlayback(t *testing.T) {
	router := setupRouter(&mockLibrary{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/playback/stop", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
