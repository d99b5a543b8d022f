package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTSigner_RoundTrip(t *testing.T) {
	signer := JWTSigner{Secret: []byte("test-secret"), TTL: time.Hour}

	raw, err := signer.Sign("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := signer.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTSigner_WrongSecret(t *testing.T) {
	signer := JWTSigner{Secret: []byte("test-secret")}
	raw, err := signer.Sign("user-42")
	require.NoError(t, err)

	other := JWTSigner{Secret: []byte("different-secret")}
	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTSigner_Expired(t *testing.T) {
	signer := JWTSigner{Secret: []byte("test-secret"), TTL: time.Millisecond}
	raw, err := signer.Sign("user-42")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = signer.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTSigner_Garbage(t *testing.T) {
	signer := JWTSigner{Secret: []byte("test-secret")}

	_, err := signer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
