package call

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/medlink/doctor-dispatch/internal/api/respond"
	"github.com/medlink/doctor-dispatch/internal/config"
	"github.com/medlink/doctor-dispatch/internal/model"
	"github.com/medlink/doctor-dispatch/internal/repository/doctor"
	callsvc "github.com/medlink/doctor-dispatch/internal/service/call"
)

// callService defines the interface that the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/call/mock.go -package=mocks
type callService interface {
	CreateCallRequest(ctx context.Context, strategy retry.Strategy, lang string) (callsvc.Ticket, error)
	ClaimCallRequest(ctx context.Context, strategy retry.Strategy, id, doctorID uuid.UUID) (model.Credential, error)
	CancelCallRequest(ctx context.Context, strategy retry.Strategy, id uuid.UUID) error
	GetRequestStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Status, error)
	SearchDoctors(ctx context.Context, lang string) ([]model.Doctor, error)
}

// Handler handles HTTP requests for the call broker: creating, claiming,
// cancelling and inspecting call requests, plus directory search.
type Handler struct {
	service   callService
	validator *validator.Validate
	cfg       *config.Config
}

func NewHandler(
	s callService,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// CreateRequest is the JSON body for creating a call request.
type CreateRequest struct {
	Language string `json:"language" validate:"required"`
}

// ClaimRequest is the JSON body for a doctor accepting a call request.
type ClaimRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
}

// SearchRequest is the JSON body for a directory lookup.
type SearchRequest struct {
	Language string `json:"language" validate:"required"`
}

// Create handles POST requests for a new call. On success the caller gets
// a ticket with the channel name and a publisher credential.
func (h *Handler) Create(c *ginext.Context) {
	var req CreateRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	ticket, err := h.service.CreateCallRequest(c.Request.Context(), h.cfg.Retry, req.Language)
	if err != nil {
		switch {
		case errors.Is(err, callsvc.ErrLanguageRequired):
			respond.Fail(c.Writer, http.StatusBadRequest, err)
		case errors.Is(err, callsvc.ErrNoEligibleDoctor):
			zlog.Logger.Info().Str("language", req.Language).Msg("no eligible doctor")
			respond.Fail(c.Writer, http.StatusNotFound, err)
		case errors.Is(err, doctor.ErrDirectoryUnavailable):
			zlog.Logger.Error().Err(err).Msg("doctor directory unavailable")
			respond.Fail(c.Writer, http.StatusServiceUnavailable, fmt.Errorf("doctor directory unavailable, retry later"))
		default:
			zlog.Logger.Error().Err(err).Str("language", req.Language).Msg("failed to create call request")
			respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		}
		return
	}

	respond.Created(c.Writer, ticket)
}

// Claim handles a doctor accepting a call request. The first doctor wins;
// everyone else gets 409, and an overdue request gets 410.
func (h *Handler) Claim(c *ginext.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	var req ClaimRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid doctor_id"))
		return
	}

	cred, err := h.service.ClaimCallRequest(c.Request.Context(), h.cfg.Retry, id, doctorID)
	if err != nil {
		switch {
		case errors.Is(err, callsvc.ErrRequestNotFound):
			respond.Fail(c.Writer, http.StatusNotFound, err)
		case errors.Is(err, callsvc.ErrUnknownDoctor):
			zlog.Logger.Warn().Str("doctor", doctorID.String()).Msg("claim by unknown doctor")
			respond.Fail(c.Writer, http.StatusForbidden, err)
		case errors.Is(err, doctor.ErrDirectoryUnavailable):
			zlog.Logger.Error().Err(err).Msg("doctor directory unavailable")
			respond.Fail(c.Writer, http.StatusServiceUnavailable, fmt.Errorf("doctor directory unavailable, retry later"))
		case errors.Is(err, callsvc.ErrRequestExpired):
			respond.Fail(c.Writer, http.StatusGone, err)
		case errors.Is(err, callsvc.ErrRequestConflict):
			// Losing the claim race is a normal outcome, not an error.
			zlog.Logger.Warn().Str("id", id.String()).Str("doctor", doctorID.String()).Msg("claim lost")
			respond.Fail(c.Writer, http.StatusConflict, fmt.Errorf("call request already taken"))
		default:
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to claim call request")
			respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		}
		return
	}

	respond.OK(c.Writer, cred)
}

// Cancel handles caller withdrawal of a call request.
func (h *Handler) Cancel(c *ginext.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	err := h.service.CancelCallRequest(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		switch {
		case errors.Is(err, callsvc.ErrRequestNotFound):
			respond.Fail(c.Writer, http.StatusNotFound, err)
		case errors.Is(err, callsvc.ErrRequestConflict):
			zlog.Logger.Warn().Str("id", id.String()).Msg("cancel on closed request")
			respond.Fail(c.Writer, http.StatusConflict, fmt.Errorf("call request already closed"))
		default:
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cancel call request")
			respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		}
		return
	}

	respond.OK(c.Writer, "call request cancelled")
}

// GetStatus handles status lookups for a call request.
func (h *Handler) GetStatus(c *ginext.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	status, err := h.service.GetRequestStatus(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, callsvc.ErrRequestNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get call request status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, status)
}

// SearchDoctors handles directory lookups without dispatching a call.
func (h *Handler) SearchDoctors(c *ginext.Context) {
	var req SearchRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	doctors, err := h.service.SearchDoctors(c.Request.Context(), req.Language)
	if err != nil {
		if errors.Is(err, doctor.ErrDirectoryUnavailable) {
			zlog.Logger.Error().Err(err).Msg("doctor directory unavailable")
			respond.Fail(c.Writer, http.StatusServiceUnavailable, fmt.Errorf("doctor directory unavailable, retry later"))
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to search doctors")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, doctors)
}

// requestID parses the :id path parameter, replying 400 itself on bad
// input.
func (h *Handler) requestID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Interface("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return uuid.Nil, false
	}

	return id, true
}
