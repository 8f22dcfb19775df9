package handlers

import (
	"encoding/json"
	"net/http"

	"edutrade/internal/config"
	"edutrade/internal/logger"
	"edutrade/internal/middleware"
	"edutrade/internal/models"
	"edutrade/internal/services"
	helpers "edutrade/internal/utils/helpers"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Registration data"
// @Success 201 {object} authResponse
// @Failure 400 {string} string "Validation error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("invalid JSON in Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}
	logger.Log.Info("registering user", zap.String("email", req.Email))

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := h.authService.RegisterUser(r.Context(), user, req.Password); err != nil {
		logger.Log.Error("registration failed", zap.Error(err))
		writeServiceError(w, err, "registration failed")
		return
	}

	token, _, err := h.authService.LoginUser(r.Context(), req.Email, req.Password, h.cfg.JWTSecret, h.cfg.AccessTTL())
	if err != nil {
		logger.Log.Error("failed to issue token after registration", zap.Error(err))
		writeServiceError(w, err, "registration failed")
		return
	}

	helpers.JSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login godoc
// @Summary Log a user in
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Login data"
// @Success 200 {object} authResponse
// @Failure 401 {string} string "Invalid email or password"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("invalid JSON in Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	token, user, err := h.authService.LoginUser(r.Context(), req.Email, req.Password, h.cfg.JWTSecret, h.cfg.AccessTTL())
	if err != nil {
		logger.Log.Warn("login failed", zap.String("email", req.Email), zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Verify godoc
// @Summary Verify the bearer token
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {string} string "Unauthorized"
// @Router /api/auth/verify [get]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"is_authenticated": true,
		"user_id":          userID,
	})
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {string} string "Not found"
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "failed to load profile")
		return
	}
	helpers.JSON(w, http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags auth
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {string} string "Validation error"
// @Router /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, "failed to update profile")
		return
	}
	helpers.JSON(w, http.StatusOK, user)
}
