package folders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voxnote/memo-api/internal/models"
)

// DefaultFolderNames are created lazily on first load and can never be
// renamed or deleted. Drafts is where new recordings are filed.
var DefaultFolderNames = []string{"Personal", "Work", "Drafts"}

// draftsFolderName is the default destination for new recordings
const draftsFolderName = "Drafts"

// service implements Service over a single pretty-printed JSON document.
// A mutex serializes every operation, so mutations never interleave.
type service struct {
	path string

	mu           sync.Mutex
	folders      []models.Folder
	corruptReset bool
}

// NewService loads the folders document (tolerating a missing or
// corrupt file by starting empty) and ensures the default folders exist
func NewService(path string) (Service, error) {
	s := &service{path: path}
	s.load()

	if err := s.ensureDefaults(); err != nil {
		return nil, fmt.Errorf("creating default folders: %w", err)
	}

	return s, nil
}

// load reads the document into memory. A missing file is a first run; a
// corrupt file is flagged and silently reset to empty.
func (s *service) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[DEBUG] Folders document %s not found, starting empty", s.path)
		} else {
			log.Printf("[DEBUG] Folders document %s unreadable, resetting to empty: %v", s.path, err)
			s.corruptReset = true
		}
		s.folders = []models.Folder{}
		return
	}

	var folders []models.Folder
	if err := json.Unmarshal(data, &folders); err != nil {
		log.Printf("[DEBUG] Folders document %s corrupt, resetting to empty: %v", s.path, err)
		s.corruptReset = true
		s.folders = []models.Folder{}
		return
	}

	s.folders = folders
	log.Printf("[DEBUG] Loaded %d folders from %s", len(folders), s.path)
}

// ensureDefaults creates any missing default folder, writing once
func (s *service) ensureDefaults() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := false
	for _, name := range DefaultFolderNames {
		if s.findByName(name) == nil {
			s.folders = append(s.folders, models.NewFolder(name))
			log.Printf("[DEBUG] Created default folder: %s", name)
			created = true
		}
	}

	if created {
		return s.save()
	}
	return nil
}

// save rewrites the whole document atomically. Callers must hold mu.
// On failure the in-memory state stays mutated; the caller decides
// whether to retry.
func (s *service) save() error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating folders directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s.folders, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding folders: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing folders document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing folders document: %w", err)
	}

	return nil
}

// findByName returns a pointer into s.folders; callers must hold mu
func (s *service) findByName(name string) *models.Folder {
	for i := range s.folders {
		if s.folders[i].Name == name {
			return &s.folders[i]
		}
	}
	return nil
}

// findByID returns the index of a folder, or -1; callers must hold mu
func (s *service) findByID(id uuid.UUID) int {
	for i := range s.folders {
		if s.folders[i].ID == id {
			return i
		}
	}
	return -1
}

func isDefaultName(name string) bool {
	for _, n := range DefaultFolderNames {
		if n == name {
			return true
		}
	}
	return false
}

// Folders returns a snapshot of every folder
func (s *service) Folders(ctx context.Context) []models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]models.Folder, len(s.folders))
	copy(snapshot, s.folders)
	return snapshot
}

// Folder returns the folder with the given id
func (s *service) Folder(ctx context.Context, id uuid.UUID) (models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByID(id)
	if idx < 0 {
		return models.Folder{}, ErrFolderNotFound
	}
	return s.folders[idx], nil
}

// FolderByName returns the first folder with the given name
func (s *service) FolderByName(ctx context.Context, name string) (models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if folder := s.findByName(name); folder != nil {
		return *folder, nil
	}
	return models.Folder{}, ErrFolderNotFound
}

// Create adds a folder, disambiguating colliding names with a unix
// timestamp suffix rather than failing
func (s *service) Create(ctx context.Context, name string) (models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(name)
}

func (s *service) createLocked(name string) (models.Folder, error) {
	if s.findByName(name) != nil {
		renamed := fmt.Sprintf("%s (%d)", name, time.Now().Unix())
		log.Printf("[DEBUG] Folder %q already exists, creating %q instead", name, renamed)
		return s.createLocked(renamed)
	}

	folder := models.NewFolder(name)
	s.folders = append(s.folders, folder)
	if err := s.save(); err != nil {
		return folder, err
	}

	log.Printf("[DEBUG] Created folder %q (%s)", name, folder.ID)
	return folder, nil
}

// Rename changes a folder's name with the same collision policy as Create
func (s *service) Rename(ctx context.Context, id uuid.UUID, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renameLocked(id, newName)
}

func (s *service) renameLocked(id uuid.UUID, newName string) error {
	idx := s.findByID(id)
	if idx < 0 {
		return ErrFolderNotFound
	}
	if isDefaultName(s.folders[idx].Name) {
		return ErrFolderNotFound
	}

	for i := range s.folders {
		if s.folders[i].Name == newName && s.folders[i].ID != id {
			renamed := fmt.Sprintf("%s (%d)", newName, time.Now().Unix())
			log.Printf("[DEBUG] Folder %q already exists, renaming to %q instead", newName, renamed)
			return s.renameLocked(id, renamed)
		}
	}

	s.folders[idx].Name = newName
	return s.save()
}

// Delete removes a folder; default folders are protected
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByID(id)
	if idx < 0 {
		return ErrFolderNotFound
	}
	if isDefaultName(s.folders[idx].Name) {
		log.Printf("[DEBUG] Refusing to delete default folder %q", s.folders[idx].Name)
		return ErrFolderNotFound
	}

	s.folders = append(s.folders[:idx], s.folders[idx+1:]...)
	return s.save()
}

// AddRecording files a recording into a folder, evicting it from every
// other folder first
func (s *service) AddRecording(ctx context.Context, recordingID, folderID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByID(folderID)
	if idx < 0 {
		return ErrFolderNotFound
	}

	for i := range s.folders {
		if s.folders[i].ID != folderID && s.folders[i].Contains(recordingID) {
			s.folders[i].RemoveRecording(recordingID)
		}
	}

	s.folders[idx].AddRecording(recordingID)
	return s.save()
}

// RemoveRecording removes a recording from a folder
func (s *service) RemoveRecording(ctx context.Context, recordingID, folderID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByID(folderID)
	if idx < 0 {
		return ErrFolderNotFound
	}

	s.folders[idx].RemoveRecording(recordingID)
	return s.save()
}

// MoveRecording is composed as remove-then-add; a crash between the two
// writes can leave the recording in neither folder
func (s *service) MoveRecording(ctx context.Context, recordingID, fromID, toID uuid.UUID) error {
	if err := s.RemoveRecording(ctx, recordingID, fromID); err != nil {
		return err
	}
	return s.AddRecording(ctx, recordingID, toID)
}

// RecordingsInFolder returns the membership set of a folder
func (s *service) RecordingsInFolder(ctx context.Context, folderID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByID(folderID)
	if idx < 0 {
		return nil, ErrFolderNotFound
	}

	ids := make([]uuid.UUID, len(s.folders[idx].RecordingIDs))
	copy(ids, s.folders[idx].RecordingIDs)
	return ids, nil
}

// FolderContaining returns the first folder holding the recording
func (s *service) FolderContaining(ctx context.Context, recordingID uuid.UUID) *models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.folders {
		if s.folders[i].Contains(recordingID) {
			folder := s.folders[i]
			return &folder
		}
	}
	return nil
}

// RemoveFromAllFolders scrubs a recording id from every folder
func (s *service) RemoveFromAllFolders(ctx context.Context, recordingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for i := range s.folders {
		if s.folders[i].Contains(recordingID) {
			s.folders[i].RemoveRecording(recordingID)
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return s.save()
}

// DefaultFolder returns the Drafts folder
func (s *service) DefaultFolder(ctx context.Context) (models.Folder, error) {
	return s.FolderByName(ctx, draftsFolderName)
}

// RecoveredFromCorruption reports whether init reset a corrupt document
func (s *service) RecoveredFromCorruption() bool {
	return s.corruptReset
}
