package call

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/medlink/doctor-dispatch/internal/mocks/service/call"
	"github.com/medlink/doctor-dispatch/internal/model"
	"github.com/medlink/doctor-dispatch/internal/rabbitmq/queue"
	"github.com/medlink/doctor-dispatch/internal/registry"
	"github.com/medlink/doctor-dispatch/internal/repository/doctor"
	"github.com/medlink/doctor-dispatch/internal/token"
)

type fixture struct {
	directory *mocks.MockdoctorDirectory
	queue     *mocks.MockdispatchPublisher
	cache     *mocks.Mockcache
	issuer    *token.Issuer
	registry  *registry.Registry
	svc       *Service
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	directoryMock := mocks.NewMockdoctorDirectory(ctrl)
	queueMock := mocks.NewMockdispatchPublisher(ctrl)
	cacheMock := mocks.NewMockcache(ctrl)

	issuer, err := token.NewIssuer("test-app", "test-secret")
	require.NoError(t, err)

	reg := registry.New(time.Minute)
	svc := NewService(directoryMock, queueMock, issuer, reg, cacheMock, time.Minute, time.Hour)

	return fixture{
		directory: directoryMock,
		queue:     queueMock,
		cache:     cacheMock,
		issuer:    issuer,
		registry:  reg,
		svc:       svc,
	}
}

func eligibleDoctor(name string) model.Doctor {
	return model.Doctor{
		ID:        uuid.New(),
		Name:      name,
		Languages: []string{"fr"},
		IsActive:  true,
		PushToken: "token-" + name,
	}
}

func TestService_CreateCallRequest_Dispatched(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}

	d1 := eligibleDoctor("d1")
	d2 := eligibleDoctor("d2")

	f.directory.EXPECT().FindEligibleByLanguage(gomock.Any(), "fr").Return([]model.Doctor{d1, d2}, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, gomock.Any(), string(model.StatusDispatched)).Return(nil)

	var published []queue.DispatchMessage
	f.queue.EXPECT().Publish(gomock.Any(), strategy).DoAndReturn(
		func(msg queue.DispatchMessage, _ retry.Strategy) error {
			published = append(published, msg)
			return nil
		},
	).Times(2)

	ticket, err := f.svc.CreateCallRequest(context.Background(), strategy, "fr")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ticket.ChannelName, "call-"))
	assert.Equal(t, 2, ticket.Notified)
	assert.Equal(t, model.RolePublisher, ticket.Credential.Role)
	assert.Equal(t, ticket.ChannelName, ticket.Credential.ChannelName)

	require.Len(t, published, 2)
	assert.Equal(t, d1.ID, published[0].DoctorID)
	assert.Equal(t, d1.PushToken, published[0].PushToken)
	assert.Equal(t, d2.ID, published[1].DoctorID)
	for _, msg := range published {
		assert.Equal(t, ticket.RequestID, msg.RequestID)
		assert.Equal(t, ticket.ChannelName, msg.ChannelName)
		assert.Equal(t, model.RoleSubscriber, msg.Credential.Role)
		assert.Equal(t, ticket.ChannelName, msg.Credential.ChannelName)
	}

	req, err := f.registry.Get(ticket.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDispatched, req.Status)
	assert.Equal(t, []uuid.UUID{d1.ID, d2.ID}, req.Candidates)
}

func TestService_CreateCallRequest_SkipsStaleDirectoryRows(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}

	d1 := eligibleDoctor("d1")
	stale := eligibleDoctor("stale")
	stale.PushToken = ""

	f.directory.EXPECT().FindEligibleByLanguage(gomock.Any(), "fr").Return([]model.Doctor{d1, stale}, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, gomock.Any(), string(model.StatusDispatched)).Return(nil)

	// Only the deliverable doctor gets a call offer.
	f.queue.EXPECT().Publish(gomock.Any(), strategy).Return(nil)

	ticket, err := f.svc.CreateCallRequest(context.Background(), strategy, "fr")
	require.NoError(t, err)
	assert.Equal(t, 1, ticket.Notified)

	req, err := f.registry.Get(ticket.RequestID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{d1.ID}, req.Candidates)
}

func TestService_CreateCallRequest_NoEligibleDoctor(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}

	f.directory.EXPECT().FindEligibleByLanguage(gomock.Any(), "zz").Return(nil, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, gomock.Any(), string(model.StatusExpired)).Return(nil)

	_, err := f.svc.CreateCallRequest(context.Background(), strategy, "zz")
	assert.ErrorIs(t, err, ErrNoEligibleDoctor)
}

func TestService_CreateCallRequest_DirectoryUnavailable(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}

	f.directory.EXPECT().
		FindEligibleByLanguage(gomock.Any(), "fr").
		Return(nil, doctor.ErrDirectoryUnavailable)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, gomock.Any(), string(model.StatusExpired)).Return(nil)

	_, err := f.svc.CreateCallRequest(context.Background(), strategy, "fr")
	assert.ErrorIs(t, err, doctor.ErrDirectoryUnavailable)
	assert.NotErrorIs(t, err, ErrNoEligibleDoctor)
}

func TestService_CreateCallRequest_EmptyLanguage(t *testing.T) {
	f := setup(t)

	_, err := f.svc.CreateCallRequest(context.Background(), retry.Strategy{}, "")
	assert.ErrorIs(t, err, ErrLanguageRequired)
}

func TestService_CreateCallRequest_PublishFailureIsNonFatal(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}

	d1 := eligibleDoctor("d1")
	d2 := eligibleDoctor("d2")

	f.directory.EXPECT().FindEligibleByLanguage(gomock.Any(), "fr").Return([]model.Doctor{d1, d2}, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, gomock.Any(), string(model.StatusDispatched)).Return(nil)

	gomock.InOrder(
		f.queue.EXPECT().Publish(gomock.Any(), strategy).Return(errors.New("broker down")),
		f.queue.EXPECT().Publish(gomock.Any(), strategy).Return(nil),
	)

	ticket, err := f.svc.CreateCallRequest(context.Background(), strategy, "fr")
	require.NoError(t, err)
	assert.Equal(t, 1, ticket.Notified)
}

// dispatched seeds a dispatched request and returns its ticket.
func dispatched(t *testing.T, f fixture, strategy retry.Strategy) Ticket {
	t.Helper()

	d1 := eligibleDoctor("d1")
	f.directory.EXPECT().FindEligibleByLanguage(gomock.Any(), "fr").Return([]model.Doctor{d1}, nil)
	f.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.queue.EXPECT().Publish(gomock.Any(), strategy).Return(nil)

	ticket, err := f.svc.CreateCallRequest(context.Background(), strategy, "fr")
	require.NoError(t, err)
	return ticket
}

// activeClaimant lets any doctor id pass the directory check on claim.
func activeClaimant(f fixture) {
	f.directory.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID) (model.Doctor, error) {
			return model.Doctor{
				ID:        id,
				Name:      "dr",
				Languages: []string{"fr"},
				IsActive:  true,
				PushToken: "device-token",
			}, nil
		},
	).AnyTimes()
}

func TestService_ClaimCallRequest_FirstWins(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	ticket := dispatched(t, f, strategy)
	activeClaimant(f)

	doctorID := uuid.New()
	cred, err := f.svc.ClaimCallRequest(context.Background(), strategy, ticket.RequestID, doctorID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSubscriber, cred.Role)
	assert.Equal(t, ticket.ChannelName, cred.ChannelName)

	_, err = f.svc.ClaimCallRequest(context.Background(), strategy, ticket.RequestID, uuid.New())
	assert.ErrorIs(t, err, ErrRequestConflict)

	req, err := f.registry.Get(ticket.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusClaimed, req.Status)
	assert.Equal(t, doctorID, req.ClaimedBy)
}

func TestService_ClaimCallRequest_ConcurrentClaims(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	ticket := dispatched(t, f, strategy)
	activeClaimant(f)

	const claimers = 8

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	conflicts := 0

	wg.Add(claimers)
	for i := 0; i < claimers; i++ {
		go func() {
			defer wg.Done()

			_, err := f.svc.ClaimCallRequest(context.Background(), strategy, ticket.RequestID, uuid.New())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case errors.Is(err, ErrRequestConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, claimers-1, conflicts)
}

func TestService_ClaimCallRequest_NotFound(t *testing.T) {
	f := setup(t)
	activeClaimant(f)

	_, err := f.svc.ClaimCallRequest(context.Background(), retry.Strategy{}, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestService_ClaimCallRequest_Expired(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	ticket := dispatched(t, f, strategy)
	activeClaimant(f)

	f.svc.ExpireDue(context.Background(), strategy, time.Now().Add(2*time.Minute))

	_, err := f.svc.ClaimCallRequest(context.Background(), strategy, ticket.RequestID, uuid.New())
	assert.ErrorIs(t, err, ErrRequestExpired)
}

func TestService_ClaimCallRequest_UnknownDoctor(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	ticket := dispatched(t, f, strategy)

	doctorID := uuid.New()
	f.directory.EXPECT().GetByID(gomock.Any(), doctorID).Return(model.Doctor{}, doctor.ErrDoctorNotFound)

	_, err := f.svc.ClaimCallRequest(context.Background(), strategy, ticket.RequestID, doctorID)
	assert.ErrorIs(t, err, ErrUnknownDoctor)

	// The request stays claimable for real doctors.
	req, err := f.registry.Get(ticket.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDispatched, req.Status)
}

func TestService_ClaimCallRequest_InactiveDoctor(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	ticket := dispatched(t, f, strategy)

	doctorID := uuid.New()
	f.directory.EXPECT().GetByID(gomock.Any(), doctorID).
		Return(model.Doctor{ID: doctorID, Name: "dr", IsActive: false}, nil)

	_, err := f.svc.ClaimCallRequest(context.Background(), strategy, ticket.RequestID, doctorID)
	assert.ErrorIs(t, err, ErrUnknownDoctor)
}

func TestService_CancelCallRequest_Idempotence(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	ticket := dispatched(t, f, strategy)

	require.NoError(t, f.svc.CancelCallRequest(context.Background(), strategy, ticket.RequestID))

	req, err := f.registry.Get(ticket.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, req.Status)

	// A second cancel loses the CAS and leaves the state untouched.
	err = f.svc.CancelCallRequest(context.Background(), strategy, ticket.RequestID)
	assert.ErrorIs(t, err, ErrRequestConflict)

	req, err = f.registry.Get(ticket.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, req.Status)
}

func TestService_CancelCallRequest_PreventsClaim(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	ticket := dispatched(t, f, strategy)

	activeClaimant(f)
	require.NoError(t, f.svc.CancelCallRequest(context.Background(), strategy, ticket.RequestID))

	_, err := f.svc.ClaimCallRequest(context.Background(), strategy, ticket.RequestID, uuid.New())
	assert.ErrorIs(t, err, ErrRequestConflict)
}

func TestService_CancelCallRequest_NotFound(t *testing.T) {
	f := setup(t)

	err := f.svc.CancelCallRequest(context.Background(), retry.Strategy{}, uuid.New())
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestService_GetRequestStatus_CacheHit(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	id := uuid.New()

	f.cache.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return(string(model.StatusDispatched), nil)

	status, err := f.svc.GetRequestStatus(context.Background(), strategy, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDispatched, status)
}

func TestService_GetRequestStatus_CacheMiss(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	ticket := dispatched(t, f, strategy)

	f.cache.EXPECT().GetWithRetry(gomock.Any(), strategy, ticket.RequestID.String()).Return("", redis.Nil)

	status, err := f.svc.GetRequestStatus(context.Background(), strategy, ticket.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDispatched, status)
}

func TestService_GetRequestStatus_NotFound(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	id := uuid.New()

	f.cache.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return("", redis.Nil)

	_, err := f.svc.GetRequestStatus(context.Background(), strategy, id)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestService_ExpireDue_SweepsOverdue(t *testing.T) {
	f := setup(t)
	strategy := retry.Strategy{}
	ticket := dispatched(t, f, strategy)

	expired := f.svc.ExpireDue(context.Background(), strategy, time.Now().Add(2*time.Minute))
	assert.Equal(t, []uuid.UUID{ticket.RequestID}, expired)

	req, err := f.registry.Get(ticket.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusExpired, req.Status)

	assert.Empty(t, f.svc.ExpireDue(context.Background(), strategy, time.Now().Add(2*time.Minute)))
}

func TestService_SearchDoctors(t *testing.T) {
	f := setup(t)

	doctors := []model.Doctor{eligibleDoctor("d1")}
	f.directory.EXPECT().FindEligibleByLanguage(gomock.Any(), "fr").Return(doctors, nil)

	got, err := f.svc.SearchDoctors(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, doctors, got)

	_, err = f.svc.SearchDoctors(context.Background(), "")
	assert.ErrorIs(t, err, ErrLanguageRequired)
}
