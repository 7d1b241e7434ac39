package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/guttosm/quote-service/internal/tenant"
)

const (
	consoleTokenIssuer     = "quote-service"
	defaultConsoleTokenTTL = 12 * time.Hour
)

var (
	// ErrInvalidToken is returned when a console token is malformed, expired or badly signed.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTenantMismatch is returned when a valid token is presented for another tenant.
	ErrTenantMismatch = errors.New("token is not valid for this tenant")
	// ErrConsoleAuthDisabled is returned when tokens are requested but no secret is configured.
	ErrConsoleAuthDisabled = errors.New("console authentication is not configured")
)

// ConsoleClaims are carried by a console token. Subject names the operator.
type ConsoleClaims struct {
	Tenant string `json:"tenant"`
	jwt.RegisteredClaims
}

// ConsoleToken is a freshly issued console token.
type ConsoleToken struct {
	Token     string
	Tenant    string
	ExpiresAt time.Time
}

// ConsoleTokenService issues and checks tenant-scoped tokens for shop consoles.
type ConsoleTokenService interface {
	// Enabled reports whether console routes require a token.
	Enabled() bool
	// Issue signs a token for one tenant's console.
	Issue(tenantID, operator string) (*ConsoleToken, error)
	// Validate parses a token and checks it was issued for tenantID.
	Validate(tokenString, tenantID string) (*ConsoleClaims, error)
}

// ConsoleTokenServiceImpl signs console tokens with HS256.
type ConsoleTokenServiceImpl struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewConsoleTokenService creates a console token service. An empty secret disables console auth.
func NewConsoleTokenService(secret string, ttl time.Duration) *ConsoleTokenServiceImpl {
	if ttl <= 0 {
		ttl = defaultConsoleTokenTTL
	}
	return &ConsoleTokenServiceImpl{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *ConsoleTokenServiceImpl) Enabled() bool {
	return len(s.secret) > 0
}

func (s *ConsoleTokenServiceImpl) Issue(tenantID, operator string) (*ConsoleToken, error) {
	if !s.Enabled() {
		return nil, ErrConsoleAuthDisabled
	}
	if err := tenant.ValidateID(tenantID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTenantNotFound, err)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &ConsoleClaims{
		Tenant: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    consoleTokenIssuer,
			Subject:   operator,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign console token: %w", err)
	}
	return &ConsoleToken{Token: signed, Tenant: tenantID, ExpiresAt: expiresAt}, nil
}

func (s *ConsoleTokenServiceImpl) Validate(tokenString, tenantID string) (*ConsoleClaims, error) {
	if !s.Enabled() {
		return nil, ErrConsoleAuthDisabled
	}

	claims := &ConsoleClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(consoleTokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Tenant != tenantID {
		return nil, ErrTenantMismatch
	}
	return claims, nil
}
