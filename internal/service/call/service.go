package call

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/medlink/doctor-dispatch/internal/model"
	"github.com/medlink/doctor-dispatch/internal/rabbitmq/queue"
	"github.com/medlink/doctor-dispatch/internal/registry"
	"github.com/medlink/doctor-dispatch/internal/repository/doctor"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/call/mock.go -package=mocks

var (
	ErrLanguageRequired = errors.New("language is required")
	ErrNoEligibleDoctor = errors.New("no eligible doctor for language")
	ErrRequestNotFound  = errors.New("call request not found")
	ErrRequestConflict  = errors.New("call request already taken or closed")
	ErrRequestExpired   = errors.New("call request expired")
	ErrUnknownDoctor    = errors.New("unknown or inactive doctor")
)

type doctorDirectory interface {
	FindEligibleByLanguage(ctx context.Context, lang string) ([]model.Doctor, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Doctor, error)
}

type dispatchPublisher interface {
	Publish(msg queue.DispatchMessage, strategy retry.Strategy) error
}

type credentialIssuer interface {
	Issue(channelName string, role model.Role, ttl time.Duration) (model.Credential, error)
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// Ticket is what the caller receives for a dispatched request: the id to
// track, the channel to join and a publisher credential for it.
type Ticket struct {
	RequestID   uuid.UUID        `json:"request_id"`
	ChannelName string           `json:"channel_name"`
	Credential  model.Credential `json:"credential"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Notified    int              `json:"notified"`
}

// Service brokers call requests: it resolves eligible doctors, owns the
// request lifecycle in the registry, issues join credentials and fans out
// notifications through the dispatch queue.
type Service struct {
	directory  doctorDirectory
	queue      dispatchPublisher
	issuer     credentialIssuer
	registry   *registry.Registry
	cache      cache
	requestTTL time.Duration
	tokenTTL   time.Duration
}

func NewService(
	directory doctorDirectory,
	q dispatchPublisher,
	issuer credentialIssuer,
	reg *registry.Registry,
	cache cache,
	requestTTL, tokenTTL time.Duration,
) *Service {
	return &Service{
		directory:  directory,
		queue:      q,
		issuer:     issuer,
		registry:   reg,
		cache:      cache,
		requestTTL: requestTTL,
		tokenTTL:   tokenTTL,
	}
}

// channelName derives the realtime channel from the request id. Ids are
// unique, so no two concurrent requests can share a channel.
func channelName(id uuid.UUID) string {
	return "call-" + id.String()
}

// CreateCallRequest registers a new request for a doctor speaking lang,
// issues the caller's publisher credential and fans out one notification
// per eligible doctor. With no eligible doctor the request is closed as
// expired immediately and ErrNoEligibleDoctor returned; a directory
// failure surfaces doctor.ErrDirectoryUnavailable instead.
func (s *Service) CreateCallRequest(ctx context.Context, strategy retry.Strategy, lang string) (Ticket, error) {
	if lang == "" {
		return Ticket{}, ErrLanguageRequired
	}

	now := time.Now()
	req := model.CallRequest{
		ID:        uuid.New(),
		Language:  lang,
		Status:    model.StatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(s.requestTTL),
	}
	req.ChannelName = channelName(req.ID)

	if err := s.registry.Insert(req); err != nil {
		// Ids are generated, so a collision means broken invariants, not
		// caller error. Drop the request.
		zlog.Logger.Error().Str("id", req.ID.String()).Msg("request id collision, dropping request")
		return Ticket{}, fmt.Errorf("register request: %w", err)
	}

	candidates, err := s.directory.FindEligibleByLanguage(ctx, lang)
	if err != nil {
		s.closeUnfilled(ctx, strategy, req.ID)
		return Ticket{}, fmt.Errorf("resolve candidates: %w", err)
	}

	// The directory query already filters, but a stale row must not slip
	// a call offer to an undeliverable doctor.
	eligible := make([]model.Doctor, 0, len(candidates))
	for _, d := range candidates {
		if d.Eligible(lang) {
			eligible = append(eligible, d)
		}
	}

	if len(eligible) == 0 {
		s.closeUnfilled(ctx, strategy, req.ID)
		return Ticket{}, ErrNoEligibleDoctor
	}

	candidateIDs := make([]uuid.UUID, 0, len(eligible))
	for _, d := range eligible {
		candidateIDs = append(candidateIDs, d.ID)
	}

	callerCred, err := s.issuer.Issue(req.ChannelName, model.RolePublisher, s.tokenTTL)
	if err != nil {
		s.closeUnfilled(ctx, strategy, req.ID)
		return Ticket{}, fmt.Errorf("issue caller credential: %w", err)
	}

	updated, err := s.registry.Dispatch(req.ID, candidateIDs)
	if err != nil {
		// Single writer at this point; a failed CAS here is a logic error.
		zlog.Logger.Error().Err(err).Str("id", req.ID.String()).Msg("pending->dispatched transition failed, dropping request")
		s.registry.Remove(req.ID)
		return Ticket{}, fmt.Errorf("dispatch request: %w", err)
	}

	s.cacheStatus(ctx, strategy, req.ID, updated.Status)

	notified := 0
	for _, d := range eligible {
		doctorCred, err := s.issuer.Issue(req.ChannelName, model.RoleSubscriber, s.tokenTTL)
		if err != nil {
			zlog.Logger.Error().Err(err).Str("doctor", d.ID.String()).Msg("failed to issue doctor credential")
			continue
		}

		msg := queue.DispatchMessage{
			RequestID:   req.ID,
			ChannelName: req.ChannelName,
			Language:    req.Language,
			DoctorID:    d.ID,
			PushToken:   d.PushToken,
			Credential:  doctorCred,
			ExpiresAt:   req.ExpiresAt,
		}

		// Fire-and-forget: a doctor we cannot enqueue for must not block
		// the others or fail the dispatch.
		if err := s.queue.Publish(msg, strategy); err != nil {
			zlog.Logger.Error().Err(err).Str("doctor", d.ID.String()).Msg("failed to publish dispatch message")
			continue
		}
		notified++
	}

	return Ticket{
		RequestID:   req.ID,
		ChannelName: req.ChannelName,
		Credential:  callerCred,
		ExpiresAt:   req.ExpiresAt,
		Notified:    notified,
	}, nil
}

// ClaimCallRequest lets a doctor accept a dispatched request. The doctor
// must hold an active directory record; then the first claim wins, losers
// get ErrRequestConflict, and a request past its deadline gets
// ErrRequestExpired. The winner receives a fresh subscriber credential
// for the call channel.
func (s *Service) ClaimCallRequest(ctx context.Context, strategy retry.Strategy, id, doctorID uuid.UUID) (model.Credential, error) {
	d, err := s.directory.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			return model.Credential{}, ErrUnknownDoctor
		}
		return model.Credential{}, fmt.Errorf("look up claiming doctor: %w", err)
	}
	if !d.IsActive {
		return model.Credential{}, ErrUnknownDoctor
	}

	req, err := s.registry.ClaimBy(id, doctorID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrNotFound):
			return model.Credential{}, ErrRequestNotFound
		case req.Status == model.StatusExpired:
			s.cacheStatus(ctx, strategy, id, req.Status)
			return model.Credential{}, ErrRequestExpired
		default:
			return model.Credential{}, ErrRequestConflict
		}
	}

	s.cacheStatus(ctx, strategy, id, req.Status)

	cred, err := s.issuer.Issue(req.ChannelName, model.RoleSubscriber, s.tokenTTL)
	if err != nil {
		return model.Credential{}, fmt.Errorf("issue claim credential: %w", err)
	}

	return cred, nil
}

// CancelCallRequest withdraws a request from pending or dispatched. A
// second cancel, or a cancel after claim/expiry, returns
// ErrRequestConflict; cancellation does not recall notifications already
// sent, it only makes a later claim lose its CAS.
func (s *Service) CancelCallRequest(ctx context.Context, strategy retry.Strategy, id uuid.UUID) error {
	req, err := s.registry.Transition(id, model.StatusPending, model.StatusCancelled)
	if errors.Is(err, registry.ErrConflict) && req.Status == model.StatusDispatched {
		req, err = s.registry.Transition(id, model.StatusDispatched, model.StatusCancelled)
	}
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrNotFound):
			return ErrRequestNotFound
		default:
			return ErrRequestConflict
		}
	}

	s.cacheStatus(ctx, strategy, id, req.Status)
	return nil
}

// GetRequestStatus reads the status cache first and falls back to the
// registry, re-priming the cache on a miss.
func (s *Service) GetRequestStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Status, error) {
	status, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get request status from cache")
	}
	if err == nil && status != "" {
		return model.Status(status), nil
	}

	req, err := s.registry.Get(id)
	if err != nil {
		return "", ErrRequestNotFound
	}

	s.cacheStatus(ctx, strategy, id, req.Status)
	return req.Status, nil
}

// SearchDoctors exposes the raw directory lookup without dispatching.
func (s *Service) SearchDoctors(ctx context.Context, lang string) ([]model.Doctor, error) {
	if lang == "" {
		return nil, ErrLanguageRequired
	}

	doctors, err := s.directory.FindEligibleByLanguage(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("search doctors: %w", err)
	}

	return doctors, nil
}

// ExpireDue runs one sweep: overdue requests become expired and terminal
// entries past the grace period are evicted. Returns the expired ids.
func (s *Service) ExpireDue(ctx context.Context, strategy retry.Strategy, now time.Time) []uuid.UUID {
	expired := s.registry.SweepExpired(now)

	ids := make([]uuid.UUID, 0, len(expired))
	for _, req := range expired {
		ids = append(ids, req.ID)
		s.cacheStatus(ctx, strategy, req.ID, req.Status)
		zlog.Logger.Info().Str("id", req.ID.String()).Msg("call request expired")
	}

	if evicted := s.registry.EvictTerminal(now); evicted > 0 {
		zlog.Logger.Debug().Int("count", evicted).Msg("evicted terminal call requests")
	}

	return ids
}

// closeUnfilled expires a request that never reached dispatch.
func (s *Service) closeUnfilled(ctx context.Context, strategy retry.Strategy, id uuid.UUID) {
	req, err := s.registry.Transition(id, model.StatusPending, model.StatusExpired)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to close unfilled request")
		return
	}
	s.cacheStatus(ctx, strategy, id, req.Status)
}

func (s *Service) cacheStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID, status model.Status) {
	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), string(status)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache request status")
	}
}
