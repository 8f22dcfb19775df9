package handlers

import (
	"encoding/json"
	"net/http"

	"edutrade/internal/logger"
	"edutrade/internal/middleware"
	"edutrade/internal/models"
	"edutrade/internal/services"
	helpers "edutrade/internal/utils/helpers"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type FeedbackHandler struct {
	service *services.FeedbackService
}

func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type feedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// ListFeedback godoc
// @Summary List all feedback
// @Tags feedback
// @Produce json
// @Success 200 {array} models.Feedback
// @Router /api/feedback [get]
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		logger.Log.Error("failed to list feedback", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "failed to fetch feedback")
		return
	}
	helpers.JSON(w, http.StatusOK, items)
}

// GetFeedback godoc
// @Summary Get feedback by id
// @Tags feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} models.Feedback
// @Failure 404 {string} string "Feedback not found"
// @Router /api/feedback/{id} [get]
func (h *FeedbackHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "feedback not found")
		return
	}

	fb, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch feedback")
		return
	}
	helpers.JSON(w, http.StatusOK, fb)
}

// SubmitFeedback godoc
// @Summary Submit feedback
// @Tags feedback
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body feedbackRequest true "Feedback"
// @Success 201 {object} models.Feedback
// @Failure 400 {string} string "Validation error"
// @Router /api/feedback [post]
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	fb := &models.Feedback{
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.service.Create(r.Context(), fb); err != nil {
		logger.Log.Error("failed to submit feedback", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "failed to submit feedback")
		return
	}

	helpers.JSON(w, http.StatusCreated, fb)
}

// UpdateFeedback godoc
// @Summary Update feedback (owner only)
// @Tags feedback
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param input body feedbackRequest true "New rating and comment"
// @Success 200 {object} models.Feedback
// @Failure 403 {string} string "Not authorized"
// @Failure 404 {string} string "Feedback not found"
// @Router /api/feedback/{id} [put]
func (h *FeedbackHandler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "feedback not found")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	fb, err := h.service.Update(r.Context(), userID, id, req.Rating, req.Comment)
	if err != nil {
		writeServiceError(w, err, "failed to update feedback")
		return
	}
	helpers.JSON(w, http.StatusOK, fb)
}

// DeleteFeedback godoc
// @Summary Delete feedback (owner only)
// @Tags feedback
// @Security ApiKeyAuth
// @Param id path string true "Feedback ID"
// @Success 200 {string} string "Feedback deleted"
// @Failure 403 {string} string "Not authorized"
// @Failure 404 {string} string "Feedback not found"
// @Router /api/feedback/{id} [delete]
func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "feedback not found")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err, "failed to delete feedback")
		return
	}

	logger.Log.Info("feedback deleted", zap.String("feedback_id", id.String()))
	helpers.JSON(w, http.StatusOK, "feedback deleted")
}
