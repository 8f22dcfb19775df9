package handlers

import (
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

type QuestionPaperHandler struct {
	service *services.QuestionPaperService
	files   *storage.FileStore
}

func NewQuestionPaperHandler(service *services.QuestionPaperService, files *storage.FileStore) *QuestionPaperHandler {
	return &QuestionPaperHandler{service: service, files: files}
}

type uploadPaperRequest struct {
	Title    string `validate:"required"`
	Subject  string `validate:"required"`
	Course   string
	Semester int `validate:"gte=0"`
}

// ListPapers godoc
// @Summary List question papers, optionally filtered
// @Tags question-papers
// @Produce json
// @Param search query string false "Substring match on title"
// @Param subject query string false "Subject"
// @Param course query string false "Course"
// @Param semester query int false "Semester"
// @Success 200 {array} models.QuestionPaper
// @Router /api/question-papers [get]
func (h *QuestionPaperHandler) ListPapers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.QuestionPaperFilter{
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

	papers, err := h.service.List(r.Context(), filter)
	if err != nil {
		logger.Log.Error("failed to list question papers", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "failed to fetch question papers")
		return
	}
	helpers.JSON(w, http.StatusOK, papers)
}

// GetPaper godoc
// @Summary Get a question paper by id
// @Tags question-papers
// @Produce json
// @Param id path string true "Question paper ID"
// @Success 200 {object} models.QuestionPaper
// @Failure 404 {string} string "Question paper not found"
// @Router /api/question-papers/{id} [get]
func (h *QuestionPaperHandler) GetPaper(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "question paper not found")
		return
	}

	paper, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch question paper")
		return
	}
	helpers.JSON(w, http.StatusOK, paper)
}

// UploadPaper godoc
// @Summary Upload a question paper (PDF only)
// @Tags question-papers
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Question paper (PDF)"
// @Success 201 {object} models.QuestionPaper
// @Failure 400 {string} string "Validation or upload error"
// @Router /api/question-papers/upload [post]
func (h *QuestionPaperHandler) UploadPaper(w http.ResponseWriter, r *http.Request) {
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

	req := uploadPaperRequest{
		Title:   r.FormValue("title"),
		Subject: r.FormValue("subject"),
		Course:  r.FormValue("course"),
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

	fileURL, err := h.files.Save("question-papers", fh, storage.PaperConstraint)
	if err != nil {
		logger.Log.Warn("question paper file rejected", zap.Error(err))
		writeServiceError(w, err, "failed to store file")
		return
	}

	paper := &models.QuestionPaper{
		Title:        req.Title,
		Subject:      req.Subject,
		Course:       req.Course,
		Semester:     req.Semester,
		FilePath:     fileURL,
		UploadedByID: userID,
	}

	if err := h.service.Create(r.Context(), paper); err != nil {
		logger.Log.Error("failed to create question paper", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "failed to upload question paper")
		return
	}

	logger.Log.Info("question paper uploaded",
		zap.String("paper_id", paper.ID.String()), zap.String("uploaded_by", userID.String()))
	helpers.JSON(w, http.StatusCreated, paper)
}

// DownloadPaper godoc
// @Summary Download a question paper file
// @Tags question-papers
// @Security ApiKeyAuth
// @Produce octet-stream
// @Param id path string true "Question paper ID"
// @Success 200 {file} file
// @Failure 404 {string} string "Question paper or file not found"
// @Router /api/question-papers/{id}/download [get]
func (h *QuestionPaperHandler) DownloadPaper(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "question paper not found")
		return
	}

	_, path, err := h.service.Download(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to download question paper")
		return
	}

	logger.Log.Info("question paper downloaded", zap.String("paper_id", id.String()))
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

// DeletePaper godoc
// @Summary Delete a question paper (owner only)
// @Tags question-papers
// @Security ApiKeyAuth
// @Param id path string true "Question paper ID"
// @Success 200 {string} string "Question paper deleted"
// @Failure 403 {string} string "Not authorized"
// @Failure 404 {string} string "Question paper not found"
// @Router /api/question-papers/{id} [delete]
func (h *QuestionPaperHandler) DeletePaper(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "question paper not found")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err, "failed to delete question paper")
		return
	}

	logger.Log.Info("question paper deleted", zap.String("paper_id", id.String()))
	helpers.JSON(w, http.StatusOK, "question paper deleted")
}
