package secp256k1

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum256KnownVector(t *testing.T) {
	// SHA-256("") = e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855
	got := Sum256([]byte{})
	want, err := hex.DecodeString("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
	require.NoError(t, err)
	require.True(t, bytes.Equal(got[:], want))
}

func TestTaggedHashIsDomainSeparated(t *testing.T) {
	a := TaggedHash(bip340NonceTagHash, []byte("msg"))
	b := TaggedHash(bip340ChallengeTagHash, []byte("msg"))
	require.NotEqual(t, a, b)
}

func TestRFC6979NonceIsDeterministic(t *testing.T) {
	priv := FnFromBig(big.NewInt(1))
	hash := Sum256([]byte("deterministic nonce test"))

	k1, err := rfc6979Nonce(priv, hash[:], nil)
	require.NoError(t, err)
	k2, err := rfc6979Nonce(priv, hash[:], nil)
	require.NoError(t, err)
	require.True(t, k1.Equal(k2))

	otherHash := Sum256([]byte("a different message"))
	k3, err := rfc6979Nonce(priv, otherHash[:], nil)
	require.NoError(t, err)
	require.False(t, k1.Equal(k3))
}

// TestRFC6979NonceKnownAnswer pins the HMAC-DRBG nonce to a fixed
// private-key/message pair: RFC 6979's own x = C9AFA9D8...F6721 (appendix
// A.2.5) run through this package's secp256k1 parameters against
// SHA256("sample"), so a change to bits2int/bits2octets/the K,V update loop
// shows up as a diff here instead of only in self-consistency checks.
func TestRFC6979NonceKnownAnswer(t *testing.T) {
	privBytes, err := hex.DecodeString("c9afa9d845ba75166b5c215767b1d6934e50c3db36e89b127b8a622b120f6721")
	require.NoError(t, err)
	priv := FnFromBig(new(big.Int).SetBytes(privBytes))

	hash := Sum256([]byte("sample"))
	wantHash, err := hex.DecodeString("af2bdbe1aa9b6ec1e2ade1d694f41fc71a831d0268e9891562113d8a62add1bf")
	require.NoError(t, err)
	require.True(t, bytes.Equal(hash[:], wantHash))

	k, err := rfc6979Nonce(priv, hash[:], nil)
	require.NoError(t, err)
	wantK, err := hex.DecodeString("a6e3c57dd01abe90086538398355dd4c3b17aa873382b0f24d6129493d8aad60")
	require.NoError(t, err)
	gotK := k.Bytes()
	require.True(t, bytes.Equal(gotK[:], wantK))
}
