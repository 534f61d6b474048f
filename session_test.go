package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-mod/dashboard/domain"
)

const testSecret = "test-signing-secret"

func testUser() *domain.User {
	return &domain.User{
		ID:            "510769103024291840",
		Username:      "owner",
		Discriminator: "0001",
	}
}

func TestSessionIssueVerifyRoundTrip(t *testing.T) {
	svc := NewSessionService(testSecret, 0)

	credential, err := svc.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, credential)

	claims, err := svc.Verify(credential)
	require.NoError(t, err)
	assert.Equal(t, "510769103024291840", claims.UserID)
	assert.Equal(t, "owner", claims.Username)
}

func TestSessionCredentialValidForSevenDays(t *testing.T) {
	svc := NewSessionService(testSecret, 0)

	credential, err := svc.Issue(testUser())
	require.NoError(t, err)

	claims, err := svc.Verify(credential)
	require.NoError(t, err)

	expected := time.Now().UTC().Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, expected, claims.ExpiresAt.Time, time.Minute)
}

func TestSessionExpiredCredential(t *testing.T) {
	svc := NewSessionService(testSecret, 0)

	// Craft a credential whose expiry already elapsed, signed with the
	// right secret.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID:   "u1",
		Username: "someone",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSessionForeignSecretRejected(t *testing.T) {
	issuer := NewSessionService("some-other-secret", 0)
	verifier := NewSessionService(testSecret, 0)

	credential, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(credential)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionTamperedPayloadRejected(t *testing.T) {
	svc := NewSessionService(testSecret, 0)

	credential, err := svc.Issue(testUser())
	require.NoError(t, err)

	parts := strings.Split(credential, ".")
	require.Len(t, parts, 3)
	// Flip the payload; the signature no longer matches.
	tampered := parts[0] + "." + "eyJ1c2VyX2lkIjoiaGFja2VyIn0" + "." + parts[2]

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionMalformedCredentialRejected(t *testing.T) {
	svc := NewSessionService(testSecret, 0)

	for _, credential := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := svc.Verify(credential)
		assert.ErrorIs(t, err, ErrTokenInvalid, "credential %q", credential)
	}
}

func TestSessionCredentialWithoutExpiryRejected(t *testing.T) {
	svc := NewSessionService(testSecret, 0)

	eternal := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID:   "u1",
		Username: "someone",
	})
	signed, err := eternal.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionForeignAlgorithmRejected(t *testing.T) {
	svc := NewSessionService(testSecret, 0)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
