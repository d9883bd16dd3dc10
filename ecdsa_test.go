package secp256k1

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func TestPublicKeyForPrivateKeyOne(t *testing.T) {
	priv, err := NewPrivateKey(bytes32(1))
	require.NoError(t, err)
	pub := GetPublicKey(priv)
	require.True(t, pub.Affine().Equal(Generator), "%s", spew.Sdump(pub.Affine()))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	priv := randomPrivateKey(t)
	pub := GetPublicKey(priv)
	hash := Sum256([]byte("hello world"))

	sig, err := Sign(priv, hash[:], nil)
	require.NoError(t, err)
	require.True(t, Verify(pub, hash[:], sig, nil))
	require.False(t, sig.S.IsHigh(), "Sign must produce low-S signatures by default")
}

func TestSignVerifyRejectsWrongMessage(t *testing.T) {
	priv := randomPrivateKey(t)
	pub := GetPublicKey(priv)
	hash := Sum256([]byte("hello world"))
	other := Sum256([]byte("goodbye world"))

	sig, err := Sign(priv, hash[:], nil)
	require.NoError(t, err)
	require.False(t, Verify(pub, other[:], sig, nil))
}

func TestSignVerifyRejectsIncrementedS(t *testing.T) {
	priv := randomPrivateKey(t)
	pub := GetPublicKey(priv)
	hash := Sum256([]byte("hello world"))

	sig, err := Sign(priv, hash[:], nil)
	require.NoError(t, err)
	tampered := &Signature{R: sig.R, S: newFn().Add(sig.S, FnFromBig(big.NewInt(1)))}
	require.False(t, Verify(pub, hash[:], tampered, nil))
}

func TestVerifyStrictRejectsHighS(t *testing.T) {
	priv := randomPrivateKey(t)
	pub := GetPublicKey(priv)
	hash := Sum256([]byte("strict mode"))

	sig, err := Sign(priv, hash[:], &SignOptions{NonCanonical: true})
	require.NoError(t, err)
	if !sig.S.IsHigh() {
		sig.S = newFn().Negate(sig.S) // force the high-S case deterministically
	}
	require.True(t, sig.S.IsHigh())
	require.True(t, Verify(pub, hash[:], sig, nil), "non-strict verify accepts high-S")
	require.False(t, Verify(pub, hash[:], sig, &VerifyOptions{Strict: true}))
}

func TestRecoverPublicKeyRoundTrip(t *testing.T) {
	priv := randomPrivateKey(t)
	pub := GetPublicKey(priv)
	hash := Sum256([]byte("recoverable"))

	sig, err := Sign(priv, hash[:], &SignOptions{Recovered: true})
	require.NoError(t, err)

	recovered, err := RecoverPublicKey(hash[:], sig, sig.RecoveryID)
	require.NoError(t, err)
	require.True(t, recovered.Equal(pub))
}

func TestCompactSignatureRoundTrip(t *testing.T) {
	priv := randomPrivateKey(t)
	hash := Sum256([]byte("compact"))
	sig, err := Sign(priv, hash[:], nil)
	require.NoError(t, err)

	encoded := sig.SerializeCompact()
	decoded, err := ParseCompactSignature(encoded)
	require.NoError(t, err)
	require.True(t, decoded.R.Equal(sig.R))
	require.True(t, decoded.S.Equal(sig.S))
}

// TestSignKnownAnswerRFC6979 pins Sign's output for RFC 6979's own private
// key (appendix A.2.5) over SHA256("sample") run against this package's
// secp256k1 parameters, matching the nonce pinned in
// TestRFC6979NonceKnownAnswer in hash_test.go.
func TestSignKnownAnswerRFC6979(t *testing.T) {
	privHex := "c9afa9d845ba75166b5c215767b1d6934e50c3db36e89b127b8a622b120f6721"
	priv, err := PrivateKeyFromHex(privHex)
	require.NoError(t, err)

	hash := Sum256([]byte("sample"))
	sig, err := Sign(priv, hash[:], &SignOptions{Recovered: true})
	require.NoError(t, err)

	wantR, err := hex.DecodeString("432310e32cb80eb6503a26ce83cc165c783b870845fb8aad6d970889fcd7a6c8")
	require.NoError(t, err)
	wantS, err := hex.DecodeString("530128b6b81c548874a6305d93ed071ca6e05074d85863d4056ce89b02bfab69")
	require.NoError(t, err)
	gotR := sig.R.Bytes()
	gotS := sig.S.Bytes()
	require.True(t, bytes.Equal(gotR[:], wantR))
	require.True(t, bytes.Equal(gotS[:], wantS))
	require.Equal(t, byte(0), sig.RecoveryID)

	pub := GetPublicKey(priv)
	wantX, err := hex.DecodeString("2c8c31fc9f990c6b55e3865a184a4ce50e09481f2eaeb3e60ec1cea13a6ae645")
	require.NoError(t, err)
	gotX := pub.Affine().X.Bytes()
	require.True(t, bytes.Equal(gotX[:], wantX))

	require.True(t, Verify(pub, hash[:], sig, nil))
}

func randomPrivateKey(t *testing.T) *PrivateKey {
	t.Helper()
	for {
		var b [32]byte
		_, err := rand.Read(b[:])
		require.NoError(t, err)
		if priv, err := NewPrivateKey(b[:]); err == nil {
			return priv
		}
	}
}
