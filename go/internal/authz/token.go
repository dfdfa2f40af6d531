package authz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	roleAdmin = "admin"
	roleUser  = "user"
)

var (
	// ErrMissingToken is returned when no bearer token accompanies a request
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned when a bearer token fails verification
	ErrInvalidToken = errors.New("invalid bearer token")
)

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenConfig configures token signing and verification
type TokenConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// Tokens signs and verifies HS256 bearer tokens that carry an Actor
type Tokens struct {
	cfg TokenConfig
}

// NewTokens creates a Tokens from cfg
func NewTokens(cfg TokenConfig) (*Tokens, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Tokens{cfg: cfg}, nil
}

// Issue signs a token for the actor. The subject is the team ID; admins carry
// the admin role and an optional subject.
func (t *Tokens) Issue(a Actor) (string, error) {
	now := t.cfg.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
	}
	switch {
	case a.IsAdmin():
		c.Role = roleAdmin
	default:
		id, ok := a.TeamID()
		if !ok {
			return "", errors.New("cannot issue a token for an anonymous actor")
		}
		c.Role = roleUser
		c.Subject = id.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a raw token and returns the actor it names
func (t *Tokens) Verify(raw string) (Actor, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Actor{}, ErrMissingToken
	}

	var c claims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.cfg.Now),
		jwt.WithExpirationRequired(),
	}
	if t.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.cfg.Issuer))
	}
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return t.cfg.Secret, nil
	}, opts...)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	switch c.Role {
	case roleAdmin:
		return Admin(), nil
	case roleUser:
		id, err := uuid.Parse(c.Subject)
		if err != nil {
			return Actor{}, fmt.Errorf("%w: subject is not a team id", ErrInvalidToken)
		}
		return Team(id), nil
	default:
		return Actor{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, c.Role)
	}
}

// VerifyHeader verifies an Authorization header of the form "Bearer <token>"
func (t *Tokens) VerifyHeader(header string) (Actor, error) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return Actor{}, ErrMissingToken
	}
	return t.Verify(header[len(prefix):])
}
