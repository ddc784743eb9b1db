package folders

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voxnote/memo-api/api/types"
	folderstore "github.com/voxnote/memo-api/internal/services/folders"
)

// folderRequest is the body for create and rename operations
type folderRequest struct {
	Name string `json:"name" binding:"required"`
}

// membershipRequest is the body for filing a recording into a folder
type membershipRequest struct {
	RecordingID string `json:"recording_id" binding:"required"`
}

// moveRequest is the body for moving a recording between folders
type moveRequest struct {
	ToFolderID string `json:"to_folder_id" binding:"required"`
}

// List returns every folder
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		all := deps.FolderStore.Folders(c.Request.Context())
		c.JSON(http.StatusOK, types.FoldersResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Folders:      all,
			Count:        len(all),
		})
	}
}

// Create adds a folder, disambiguating colliding names
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req folderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder name is required"})
			return
		}

		folder, err := deps.FolderStore.Create(c.Request.Context(), req.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, types.SingleFolderResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Folder:       &folder,
		})
	}
}

// Rename changes a folder's name
func Rename(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		folderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder id"})
			return
		}

		var req folderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder name is required"})
			return
		}

		if err := deps.FolderStore.Rename(c.Request.Context(), folderID, req.Name); err != nil {
			if errors.Is(err, folderstore.ErrFolderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Folder renamed"})
	}
}

// Delete removes a folder; default folders cannot be deleted
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		folderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder id"})
			return
		}

		if err := deps.FolderStore.Delete(c.Request.Context(), folderID); err != nil {
			if errors.Is(err, folderstore.ErrFolderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Folder deleted"})
	}
}

// AddRecording files a recording into a folder, evicting it from any other
func AddRecording(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		folderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder id"})
			return
		}

		var req membershipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recording id is required"})
			return
		}

		recordingID, err := uuid.Parse(req.RecordingID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		if err := deps.FolderStore.AddRecording(c.Request.Context(), recordingID, folderID); err != nil {
			if errors.Is(err, folderstore.ErrFolderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Recording filed"})
	}
}

// MoveRecording relocates a recording from one folder to another
func MoveRecording(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fromID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder id"})
			return
		}

		recordingID, err := uuid.Parse(c.Param("recordingId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		var req moveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Destination folder id is required"})
			return
		}

		toID, err := uuid.Parse(req.ToFolderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid destination folder id"})
			return
		}

		if err := deps.FolderStore.MoveRecording(c.Request.Context(), recordingID, fromID, toID); err != nil {
			if errors.Is(err, folderstore.ErrFolderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Recording moved"})
	}
}

// RemoveRecording takes a recording out of a folder
func RemoveRecording(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		folderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder id"})
			return
		}

		recordingID, err := uuid.Parse(c.Param("recordingId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		if err := deps.FolderStore.RemoveRecording(c.Request.Context(), recordingID, folderID); err != nil {
			if errors.Is(err, folderstore.ErrFolderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Recording removed"})
	}
}
