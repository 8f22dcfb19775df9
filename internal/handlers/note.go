package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"edutrade/internal/logger"
	"edutrade/internal/middleware"
	"edutrade/internal/models"
	"edutrade/internal/services"
	"edutrade/internal/storage"
	helpers "edutrade/internal/utils/helpers"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type NoteHandler struct {
	service *services.NoteService
	files   *storage.FileStore
}

func NewNoteHandler(service *services.NoteService, files *storage.FileStore) *NoteHandler {
	return &NoteHandler{service: service, files: files}
}

type uploadNoteRequest struct {
	Title       string `validate:"required"`
	Description string
	Subject     string `validate:"required"`
	Course      string
	Semester    int `validate:"gte=0"`
}

type addReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// ListNotes godoc
// @Summary List uploaded notes, optionally filtered
// @Tags notes
// @Produce json
// @Param search query string false "Substring match on title/description"
// @Param subject query string false "Subject"
// @Param course query string false "Course"
// @Param semester query int false "Semester"
// @Success 200 {array} models.Note
// @Router /api/notes [get]
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.NoteFilter{
		Search:  q.Get("search"),
		Subject: q.Get("subject"),
		Course:  q.Get("course"),
	}
	if v := q.Get("semester"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "invalid semester")
			return
		}
		filter.Semester = &n
	}

	notes, err := h.service.List(r.Context(), filter)
	if err != nil {
		logger.Log.Error("failed to list notes", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "failed to fetch notes")
		return
	}
	helpers.JSON(w, http.StatusOK, notes)
}

// GetNote godoc
// @Summary Get a note by id, reviews included
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} models.Note
// @Failure 404 {string} string "Note not found"
// @Router /api/notes/{id} [get]
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "note not found")
		return
	}

	note, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch note")
		return
	}
	helpers.JSON(w, http.StatusOK, note)
}

// UploadNote godoc
// @Summary Upload lecture notes (PDF, max 10MB)
// @Tags notes
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Note file (PDF)"
// @Success 201 {object} models.Note
// @Failure 400 {string} string "Validation or upload error"
// @Router /api/notes/upload [post]
func (h *NoteHandler) UploadNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		logger.Log.Warn("failed to parse multipart form", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := uploadNoteRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Subject:     r.FormValue("subject"),
		Course:      r.FormValue("course"),
	}
	if v := r.FormValue("semester"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "invalid semester")
			return
		}
		req.Semester = n
	}

	if err := validate.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	_, fh, err := r.FormFile("file")
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "no file uploaded")
		return
	}

	fileURL, err := h.files.Save("notes", fh, storage.NoteConstraint)
	if err != nil {
		logger.Log.Warn("note file rejected", zap.Error(err))
		writeServiceError(w, err, "failed to store file")
		return
	}

	note := &models.Note{
		Title:        req.Title,
		Description:  req.Description,
		Subject:      req.Subject,
		Course:       req.Course,
		Semester:     req.Semester,
		FilePath:     fileURL,
		UploadedByID: userID,
	}

	if err := h.service.Create(r.Context(), note); err != nil {
		logger.Log.Error("failed to create note", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "failed to upload note")
		return
	}

	logger.Log.Info("note uploaded", zap.String("note_id", note.ID.String()), zap.String("uploaded_by", userID.String()))
	helpers.JSON(w, http.StatusCreated, note)
}

// DownloadNote godoc
// @Summary Download a note file; increments the download counter
// @Tags notes
// @Security ApiKeyAuth
// @Produce octet-stream
// @Param id path string true "Note ID"
// @Success 200 {file} file
// @Failure 404 {string} string "Note or file not found"
// @Router /api/notes/{id}/download [get]
func (h *NoteHandler) DownloadNote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "note not found")
		return
	}

	note, path, err := h.service.Download(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to download note")
		return
	}

	logger.Log.Info("note downloaded",
		zap.String("note_id", id.String()), zap.Int("downloads", note.Downloads))
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

// AddReview godoc
// @Summary Review a note; recomputes the average rating
// @Tags notes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param input body addReviewRequest true "Review"
// @Success 200 {object} models.Note
// @Failure 404 {string} string "Note not found"
// @Router /api/notes/{id}/review [post]
func (h *NoteHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "note not found")
		return
	}

	var req addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	note, err := h.service.AddReview(r.Context(), id, userID, req.Rating, req.Comment)
	if err != nil {
		writeServiceError(w, err, "failed to add review")
		return
	}

	logger.Log.Info("review added",
		zap.String("note_id", id.String()), zap.Float64("average_rating", note.AverageRating))
	helpers.JSON(w, http.StatusOK, note)
}

// DeleteNote godoc
// @Summary Delete a note (owner only)
// @Tags notes
// @Security ApiKeyAuth
// @Param id path string true "Note ID"
// @Success 200 {string} string "Note deleted"
// @Failure 403 {string} string "Not authorized"
// @Failure 404 {string} string "Note not found"
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "note not found")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err, "failed to delete note")
		return
	}

	logger.Log.Info("note deleted", zap.String("note_id", id.String()))
	helpers.JSON(w, http.StatusOK, "note deleted")
}
