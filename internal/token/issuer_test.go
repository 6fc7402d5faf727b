package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medlink/doctor-dispatch/internal/model"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()

	issuer, err := NewIssuer("test-app", "test-secret")
	require.NoError(t, err)
	return issuer
}

func TestIssuer_Issue_RoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	cred, err := issuer.Issue("call-abc", model.RolePublisher, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "test-app", cred.AppID)
	assert.Equal(t, "call-abc", cred.ChannelName)
	assert.Equal(t, model.RolePublisher, cred.Role)
	assert.NotEmpty(t, cred.Token)

	channel, role, err := issuer.Verify(cred.Token)
	require.NoError(t, err)
	assert.Equal(t, "call-abc", channel)
	assert.Equal(t, model.RolePublisher, role)
}

func TestIssuer_Issue_ExpiryWithinTTL(t *testing.T) {
	issuer := newTestIssuer(t)

	before := time.Now()
	cred, err := issuer.Issue("call-abc", model.RoleSubscriber, time.Hour)
	after := time.Now()
	require.NoError(t, err)

	assert.False(t, cred.ExpiresAt.Before(before.Add(time.Hour)))
	assert.False(t, cred.ExpiresAt.After(after.Add(time.Hour)))
}

func TestIssuer_Issue_InvalidInput(t *testing.T) {
	issuer := newTestIssuer(t)

	_, err := issuer.Issue("", model.RolePublisher, time.Hour)
	assert.ErrorIs(t, err, ErrEmptyChannel)

	_, err = issuer.Issue("call-abc", model.RolePublisher, 0)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = issuer.Issue("call-abc", model.RolePublisher, -time.Second)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = issuer.Issue("call-abc", model.RolePublisher, 25*time.Hour)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = issuer.Issue("call-abc", model.Role("admin"), time.Hour)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestIssuer_Verify_RejectsForeignToken(t *testing.T) {
	issuer := newTestIssuer(t)

	other, err := NewIssuer("test-app", "other-secret")
	require.NoError(t, err)

	cred, err := other.Issue("call-abc", model.RolePublisher, time.Hour)
	require.NoError(t, err)

	_, _, err = issuer.Verify(cred.Token)
	assert.Error(t, err)
}

func TestNewIssuer_RequiresIdentity(t *testing.T) {
	_, err := NewIssuer("", "secret")
	assert.Error(t, err)

	_, err = NewIssuer("app", "")
	assert.Error(t, err)
}
