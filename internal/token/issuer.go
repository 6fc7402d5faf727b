// Package token issues join credentials for realtime call channels.
//
// A credential is an HS256-signed JWT scoped to exactly one channel and
// one role; the realtime network validates it against the same app id and
// secret. Issuance is pure compute: no I/O, no shared state.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medlink/doctor-dispatch/internal/model"
)

var (
	ErrEmptyChannel = errors.New("channel name is required")
	ErrInvalidTTL   = errors.New("ttl must be positive and at most 24h")
	ErrInvalidRole  = errors.New("unknown credential role")
)

// MaxTTL bounds credential lifetime so a malformed config or caller can
// never mint an effectively permanent token.
const MaxTTL = 24 * time.Hour

// Issuer mints channel join credentials for a single RTC application.
type Issuer struct {
	appID  string
	secret []byte
}

// NewIssuer creates an Issuer for the given application identity.
func NewIssuer(appID, appSecret string) (*Issuer, error) {
	if appID == "" || appSecret == "" {
		return nil, errors.New("rtc app id and secret are required")
	}
	return &Issuer{appID: appID, secret: []byte(appSecret)}, nil
}

type channelClaims struct {
	jwt.RegisteredClaims
	Channel string     `json:"channel"`
	Role    model.Role `json:"role"`
}

// Issue returns a credential authorizing exactly channelName in role until
// now + ttl. Invalid input is the only failure mode.
func (i *Issuer) Issue(channelName string, role model.Role, ttl time.Duration) (model.Credential, error) {
	if channelName == "" {
		return model.Credential{}, ErrEmptyChannel
	}
	if ttl <= 0 || ttl > MaxTTL {
		return model.Credential{}, ErrInvalidTTL
	}
	if role != model.RolePublisher && role != model.RoleSubscriber {
		return model.Credential{}, ErrInvalidRole
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := channelClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.appID,
			Subject:   channelName,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Channel: channelName,
		Role:    role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return model.Credential{}, err
	}

	return model.Credential{
		AppID:       i.appID,
		ChannelName: channelName,
		Role:        role,
		Token:       signed,
		ExpiresAt:   expiresAt,
	}, nil
}

// Verify parses a token minted by this issuer and returns its channel and
// role. Used by tests and by operators debugging credentials; the realtime
// network performs its own validation.
func (i *Issuer) Verify(tokenString string) (string, model.Role, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &channelClaims{}
	parsed, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		return "", "", err
	}
	if !parsed.Valid || claims.Channel == "" {
		return "", "", errors.New("invalid credential")
	}
	return claims.Channel, claims.Role, nil
}
