package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sentinel-mod/dashboard/domain"
)

// DefaultSessionTTL is how long an issued session credential stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionClaims is the payload carried by a session credential.
type SessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionService issues and verifies the dashboard's bearer credentials.
// Credentials are stateless HS256 JWTs: possession equals authentication,
// and rotating the secret invalidates every outstanding credential at once.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionService creates a SessionService signing with secret. A
// non-positive ttl falls back to DefaultSessionTTL.
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue mints a credential for user, valid for the service TTL from now.
func (s *SessionService) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session credential: %w", err)
	}
	return signed, nil
}

// Verify validates a credential and returns its claims. Expired credentials
// fail with ErrTokenExpired; anything else that does not validate (bad
// signature, foreign algorithm, malformed structure, missing expiry) fails
// with ErrTokenInvalid.
func (s *SessionService) Verify(credential string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
