package controllers

import (
	"fmt"
	"io"
	"net/http"

	"playdates_server/models"
	"playdates_server/services"
)

const maxCheckInUpload = 32 << 20 // 32 MiB

// S3Controller exposes photo uploads and presigned URL generation.
type S3Controller struct {
	S3   *services.S3Service
	Feed *services.FeedService
}

// NewS3Controller initializes the S3 controller.
func NewS3Controller(s3 *services.S3Service, feed *services.FeedService) *S3Controller {
	return &S3Controller{S3: s3, Feed: feed}
}

// GenerateUploadURL handles POST /api/s3/upload-url.
func (c *S3Controller) GenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.FileName == "" || body.FileType == "" {
		writeError(w, http.StatusBadRequest, "fileName and fileType are required")
		return
	}

	uploadURL, key, err := c.S3.GenerateUploadURL(r.Context(), body.FileName, body.FileType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"uploadUrl": uploadURL, "key": key})
}

// GenerateReadURL handles GET /api/s3/read-url?key=..
func (c *S3Controller) GenerateReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	readURL, err := c.S3.GenerateReadURL(r.Context(), key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"readUrl": readURL})
}

// UploadCheckIn handles POST /api/s3/check-in: a multipart batch of photos
// plus check-in metadata. The batch is all-or-nothing; the checkIn activity
// is posted only after every photo is stored.
func (c *S3Controller) UploadCheckIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCheckInUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	userID := r.FormValue("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	userName := r.FormValue("userName")
	locationName := r.FormValue("locationName")
	if locationName == "" {
		locationName = models.DefaultLocationName
	}

	files := r.MultipartForm.File["photos"]
	photos := make([]services.CheckInPhoto, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable photo upload")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable photo upload")
			return
		}
		photos = append(photos, services.CheckInPhoto{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	keys, err := c.S3.UploadCheckInPhotos(r.Context(), "", photos)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	activity := models.Activity{
		Type:      models.ActivityTypeCheckIn,
		Title:     fmt.Sprintf("%s checked in at %s", userName, locationName),
		ActorID:   userID,
		ActorName: userName,
	}
	if len(keys) > 0 {
		activity.ContentImageURL = keys[0]
	}
	if err := c.Feed.PostActivity(r.Context(), activity); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"keys":   keys,
	})
}
