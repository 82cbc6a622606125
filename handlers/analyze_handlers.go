package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"voicecoach/api-gateway/internal/apperrors"
	"voicecoach/api-gateway/internal/coach"
	"voicecoach/api-gateway/internal/speech"
	"voicecoach/api-gateway/internal/worker"
	"voicecoach/api-gateway/middleware"
	"voicecoach/api-gateway/models"
	"voicecoach/api-gateway/utils"
)

// AnalyzeRequest holds the form fields of POST /analyze besides the file.
type AnalyzeRequest struct {
	// Duration in seconds; nil when the client omitted it.
	Duration *float64 `validate:"omitempty,gte=0"`
}

var validate = validator.New()

var kindMessages = map[apperrors.Kind]string{
	apperrors.KindInvalid:        "The request could not be processed",
	apperrors.KindMalformedAudio: "The recording could not be transcribed; upload a valid audio file",
	apperrors.KindQuotaExceeded:  "An upstream AI service quota was exceeded; try again later",
	apperrors.KindUnavailable:    "An upstream AI service is unavailable; try again later",
	apperrors.KindTimeout:        "Analysis timed out",
	apperrors.KindInternal:       "Internal server error",
}

func parseAnalyzeRequest(c *fiber.Ctx) (*AnalyzeRequest, error) {
	req := &AnalyzeRequest{}

	raw := strings.TrimSpace(c.FormValue("duration"))
	if raw != "" {
		seconds, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(seconds, 0) {
			return nil, fmt.Errorf("duration must be a finite number of seconds")
		}
		req.Duration = &seconds
	}
	return req, nil
}

func readUpload(c *fiber.Ctx) (speech.Audio, error) {
	file, err := c.FormFile("audio")
	if err != nil {
		return speech.Audio{}, fmt.Errorf("audio file is required")
	}

	fileHandle, err := file.Open()
	if err != nil {
		return speech.Audio{}, fmt.Errorf("error opening audio file: %w", err)
	}
	defer fileHandle.Close()

	data, err := io.ReadAll(fileHandle)
	if err != nil {
		return speech.Audio{}, fmt.Errorf("error reading audio file: %w", err)
	}
	if len(data) == 0 {
		return speech.Audio{}, fmt.Errorf("audio file is empty")
	}

	return speech.Audio{
		Data:        data,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
	}, nil
}

// AnalyzeAudio godoc
// @Summary      Analyze a recorded answer
// @Description  Transcribes the recording, scores filler words, speaking rate, confidence and clarity, and returns AI coaching feedback.
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio     formData  file    true   "Recorded answer"
// @Param        duration  formData  number  false  "Recording length in seconds"
// @Success      200  {object}  models.AnalysisResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Failure      429  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Failure      504  {object}  models.ErrorResponse
// @Router       /analyze [post]
func (h *ApplicationHandler) AnalyzeAudio(c *fiber.Ctx) error {
	requestID := middleware.RequestID(c)
	entry := h.Logger.WithField("request_id", requestID)

	payload, err := parseAnalyzeRequest(c)
	if err != nil {
		entry.WithError(err).Warn("Invalid analyze form")
		return utils.RespondWithValidationErrors(c, err)
	}
	if err := validate.Struct(payload); err != nil {
		entry.WithError(err).Warn("Validation error for analyze request")
		return utils.RespondWithValidationErrors(c, err)
	}

	audio, err := readUpload(c)
	if err != nil {
		entry.WithError(err).Warn("Rejected audio upload")
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	entry.WithFields(logrus.Fields{
		"filename": audio.Filename,
		"bytes":    len(audio.Data),
		"duration": payload.Duration,
	}).Info("Received audio for analysis")

	ctx, cancel := context.WithTimeout(c.UserContext(), h.AnalyzeTimeout)
	defer cancel()

	job := coach.NewAnalysisJob(ctx, h.Coach, coach.Request{
		ID:              requestID,
		Audio:           audio,
		DurationSeconds: payload.Duration,
	})
	if err := h.Jobs.Submit(job); err != nil {
		entry.WithError(err).Warn("Could not queue analysis")
		if errors.Is(err, worker.ErrStopped) {
			return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Server is shutting down")
		}
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Too many analyses in progress; try again shortly")
	}

	resp, err := job.Wait(ctx)
	if err != nil {
		return h.respondWithAnalysisError(c, entry, err)
	}

	entry.WithFields(logrus.Fields{
		"wpm":        resp.Metrics.WPM,
		"confidence": resp.Metrics.Confidence,
		"clarity":    resp.Metrics.Clarity,
	}).Info("Analysis completed")
	return utils.RespondWithJSON(c, fiber.StatusOK, resp)
}

func (h *ApplicationHandler) respondWithAnalysisError(c *fiber.Ctx, entry *logrus.Entry, err error) error {
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)

	entry = entry.WithFields(logrus.Fields{"kind": kind.String(), "status_code": status}).WithError(err)
	if status >= fiber.StatusInternalServerError {
		entry.Error("Analysis failed")
	} else {
		entry.Warn("Analysis rejected")
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Status:  "error",
		Message: kindMessages[kind],
		Kind:    kind.String(),
	})
}
