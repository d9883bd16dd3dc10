package secp256k1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicKeyCompressedUncompressedRoundTrip(t *testing.T) {
	priv := randomPrivateKey(t)
	pub := GetPublicKey(priv)

	compressed := pub.SerializeCompressed()
	fromCompressed, err := ParsePublicKey(compressed)
	require.NoError(t, err)
	require.True(t, fromCompressed.Equal(pub))

	uncompressed := pub.SerializeUncompressed()
	fromUncompressed, err := ParsePublicKey(uncompressed)
	require.NoError(t, err)
	require.True(t, fromUncompressed.Equal(pub))
}

func TestParsePublicKeyRejectsPointOffCurve(t *testing.T) {
	bad := make([]byte, 33)
	bad[0] = 0x02
	bad[32] = 0x05 // x=5: x^3+7 is a non-residue mod P, so no y exists
	_, err := ParsePublicKey(bad)
	require.Error(t, err)
}

func TestPrivateKeyTweakAddMul(t *testing.T) {
	priv := randomPrivateKey(t)
	pub := GetPublicKey(priv)
	tweak := FnFromBig(bigFromInt(42))

	tweakedPriv, err := priv.TweakAdd(tweak)
	require.NoError(t, err)
	tweakedPub, err := pub.TweakAdd(tweak)
	require.NoError(t, err)
	require.True(t, GetPublicKey(tweakedPriv).Equal(tweakedPub))

	mulPriv, err := priv.TweakMul(tweak)
	require.NoError(t, err)
	mulPub, err := pub.TweakMul(tweak)
	require.NoError(t, err)
	require.True(t, GetPublicKey(mulPriv).Equal(mulPub))
}

func TestXOnlyPublicKeyCompare(t *testing.T) {
	a := NewKeyPair(randomPrivateKey(t)).XOnly
	b := NewKeyPair(randomPrivateKey(t)).XOnly
	require.Equal(t, 0, a.Compare(a))
	require.Equal(t, -a.Compare(b), b.Compare(a))
}

func TestHexRoundTrip(t *testing.T) {
	priv := randomPrivateKey(t)
	fromHex, err := PrivateKeyFromHex(priv.Hex())
	require.NoError(t, err)
	require.Equal(t, priv.Bytes(), fromHex.Bytes())

	pub := GetPublicKey(priv)
	pubFromHex, err := PublicKeyFromHex(pub.Hex())
	require.NoError(t, err)
	require.True(t, pubFromHex.Equal(pub))
}

func bigFromInt(n int64) *big.Int {
	return big.NewInt(n)
}
