package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func Test_TokenIssuer_Decode_Returns_Claims_For_Generated_Token(t *testing.T) {
	// Arrange
	issuer := NewTokenIssuer(testSigningKey)
	userID := uuid.New()

	token, err := issuer.Generate(userID, time.Minute)
	require.NoError(t, err)

	// Act
	claims, err := issuer.Decode(token)

	// Assert
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.WithinDuration(t, time.Now(), claims.IssuedAt, 2*time.Second)
	require.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt, 2*time.Second)
}

func Test_TokenIssuer_Token_Carries_Only_Sub_Iat_Exp(t *testing.T) {
	// Arrange
	issuer := NewTokenIssuer(testSigningKey)

	token, err := issuer.Generate(uuid.New(), time.Minute)
	require.NoError(t, err)

	// Act
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})

	// Assert
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	require.Len(t, claims, 3)
	require.Contains(t, claims, "sub")
	require.Contains(t, claims, "iat")
	require.Contains(t, claims, "exp")
}

func Test_TokenIssuer_Decode_Rejects_Expired_Token(t *testing.T) {
	// Arrange
	past := time.Now().Add(-time.Hour)
	minting := NewTokenIssuer(testSigningKey, WithTokenIssuerClock(func() time.Time { return past }))
	verifying := NewTokenIssuer(testSigningKey)

	token, err := minting.Generate(uuid.New(), time.Minute)
	require.NoError(t, err)

	// Act
	_, err = verifying.Decode(token)

	// Assert
	require.ErrorIs(t, err, core.ErrInvalidToken)
}

func Test_TokenIssuer_Decode_Rejects_Token_Signed_With_Other_Key(t *testing.T) {
	// Arrange
	forger := NewTokenIssuer([]byte("another-signing-key-another-signing-key"))
	issuer := NewTokenIssuer(testSigningKey)

	token, err := forger.Generate(uuid.New(), time.Minute)
	require.NoError(t, err)

	// Act
	_, err = issuer.Decode(token)

	// Assert
	require.ErrorIs(t, err, core.ErrInvalidToken)
}

func Test_TokenIssuer_Decode_Rejects_Unsigned_Token(t *testing.T) {
	// Arrange
	issuer := NewTokenIssuer(testSigningKey)

	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	// Act
	_, err = issuer.Decode(token)

	// Assert
	require.ErrorIs(t, err, core.ErrInvalidToken)
}

func Test_TokenIssuer_Decode_Rejects_Tampered_Token(t *testing.T) {
	// Arrange
	issuer := NewTokenIssuer(testSigningKey)

	token, err := issuer.Generate(uuid.New(), time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	other, err := issuer.Generate(uuid.New(), time.Minute)
	require.NoError(t, err)
	parts[1] = strings.Split(other, ".")[1]

	// Act
	_, err = issuer.Decode(strings.Join(parts, "."))

	// Assert
	require.ErrorIs(t, err, core.ErrInvalidToken)
}

func Test_TokenIssuer_Decode_Rejects_Garbage(t *testing.T) {
	_, err := NewTokenIssuer(testSigningKey).Decode("not.a.token")
	require.ErrorIs(t, err, core.ErrInvalidToken)
}

func Test_NewRefreshToken_Generates_Distinct_Url_Safe_Tokens(t *testing.T) {
	// Arrange
	now := time.Now()
	userID := uuid.New()

	// Act
	first, err := NewRefreshToken(userID, now, 7*24*time.Hour)
	require.NoError(t, err)

	second, err := NewRefreshToken(userID, now, 7*24*time.Hour)
	require.NoError(t, err)

	// Assert
	require.NotEqual(t, first.Token, second.Token)
	require.Len(t, first.Token, 43)
	require.NotContains(t, first.Token, "+")
	require.NotContains(t, first.Token, "/")
	require.Equal(t, now.Add(7*24*time.Hour), first.ExpiresAt)
	require.False(t, first.Expired(now))
	require.True(t, first.Expired(first.ExpiresAt.Add(time.Second)))
}
