package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
	"github.com/limbo/moodtrack/internal/mood"
	"github.com/limbo/moodtrack/internal/service"
	"github.com/limbo/moodtrack/pkg/entity"
	"github.com/limbo/moodtrack/pkg/httputil"
)

const handlerTimeout = 10 * time.Second

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// SubmitMoodRequest carries the client's moodText for compatibility only;
// the stored label always comes from the mood vocabulary.
type SubmitMoodRequest struct {
	UserID   string `json:"userId"`
	Mood     *int   `json:"mood"`
	MoodText string `json:"moodText"`
	Note     string `json:"note"`
}

type SubmitMoodResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *entity.MoodEntry `json:"data"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Register godoc
// @Summary Register account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "credentials"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 409 {object} httputil.ErrorResponse
// @Router /register [post]
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("registering error: invalid credentials format")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "valid email and a password of at least 6 characters are required", err)
		case errors.Is(err, errorvalues.ErrUserExists):
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such email already exists", nil)
		default:
			logger.Error("registering error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, RegisterResponse{
		Success: true,
		UserID:  user.ID.String(),
		Message: "User registered successfully",
	})
	logger.Info("successful registration")
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Router /login [post]
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWrongCredentials) {
			logger.Error("login error: wrong credentials")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		logger.Error("login error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
		return
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, LoginResponse{
		Success: true,
		UserID:  user.ID.String(),
		Email:   user.Email,
		Token:   token,
		Message: "Login successful",
	})
	logger.Info("successful login")
}

// GetMoods godoc
// @Summary Recent mood entries, most recent first
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param userId query string false "must match the token owner"
// @Param limit query int false "1..50, default 7"
// @Success 200 {object} httputil.DataResponse[[]entity.MoodEntry]
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Router /getmoods [get]
func (s *Server) GetMoods(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get moods error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	if err = checkIdentity(r.URL.Query().Get("userId"), uid); err != nil {
		logger.Error("get moods error: foreign user id")
		httputil.WriteErrorResponse(w, http.StatusForbidden, "userId doesn't match token", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = service.DefaultMoodsLimit
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	entries, err := s.moodService.GetRecent(ctx, uid, limit)
	if err != nil {
		logger.Error("getting moods list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting moods list", nil)
		return
	}
	if entries == nil {
		entries = []entity.MoodEntry{}
	}
	httputil.WriteData(w, entries)
	logger.Info("moods provided", slog.Int("count", len(entries)))
}

// SubmitMood godoc
// @Summary Submit mood entry
// @Tags moods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitMoodRequest true "entry"
// @Success 200 {object} SubmitMoodResponse
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Router /submitmood [post]
func (s *Server) SubmitMood(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("submit mood error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req SubmitMoodRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("submit mood error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err = checkIdentity(req.UserID, uid); err != nil {
		logger.Error("submit mood error: foreign user id")
		httputil.WriteErrorResponse(w, http.StatusForbidden, "userId doesn't match token", nil)
		return
	}
	submission := service.SubmitMoodRequest{Note: req.Note}
	if req.Mood != nil {
		submission.Mood = *req.Mood
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	entry, err := s.moodService.Submit(ctx, uid, submission)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("submit mood error: invalid entry")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "mood 1-5 and a non-empty note are required", err)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("submit mood error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "user doesn't exist", nil)
		default:
			logger.Error("submit mood error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while saving mood", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, SubmitMoodResponse{
		Success: true,
		Message: "Mood submitted successfully",
		Data:    entry,
	})
	logger.Info("mood submitted", slog.Int("mood", entry.Mood))
}

// GetTrends godoc
// @Summary Seven day mood trend ending today
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param userId query string false "must match the token owner"
// @Success 200 {object} httputil.DataResponse[[]mood.TrendPoint]
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 403 {object} httputil.ErrorResponse
// @Router /trends [get]
func (s *Server) GetTrends(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get trends error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	if err = checkIdentity(r.URL.Query().Get("userId"), uid); err != nil {
		logger.Error("get trends error: foreign user id")
		httputil.WriteErrorResponse(w, http.StatusForbidden, "userId doesn't match token", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	points, err := s.moodService.GetTrend(ctx, uid)
	if err != nil {
		logger.Error("building trend error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building trend", nil)
		return
	}
	httputil.WriteData[[]mood.TrendPoint](w, points)
	logger.Info("trend provided")
}

// Healthz godoc
// @Summary Liveness probe
// @Tags service
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, HealthResponse{Status: "ok"})
}
