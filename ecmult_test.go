package secp256k1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiplyBaseFixedMatchesUnsafe(t *testing.T) {
	for _, n := range []int64{1, 2, 3, 17, 255, 1 << 20} {
		k := FnFromBig(big.NewInt(n))
		fixed := MultiplyBaseFixed(k).ToAffine()
		unsafe := MultiplyUnsafe(Generator, k).ToAffine()
		require.True(t, fixed.Equal(unsafe), "n=%d", n)
	}
}

func TestMultiplyVarMatchesUnsafe(t *testing.T) {
	g2 := FromAffine(Generator).Double().ToAffine()
	for _, n := range []int64{1, 2, 5, 1000} {
		k := FnFromBig(big.NewInt(n))
		fast := MultiplyVar(g2, k).ToAffine()
		unsafe := MultiplyUnsafe(g2, k).ToAffine()
		require.True(t, fast.Equal(unsafe), "n=%d", n)
	}
}

func TestMultiplyByZeroIsInfinity(t *testing.T) {
	zero := FnFromBig(big.NewInt(0))
	require.True(t, MultiplyBaseFixed(zero).IsInfinity())
	require.True(t, MultiplyBaseVar(zero).IsInfinity())
	require.True(t, MultiplyVar(Generator, zero).IsInfinity())
}

func TestWnafEncodingReconstructsValue(t *testing.T) {
	for _, n := range []int64{0, 1, 2, 3, 255, 65535, 123456789} {
		k := big.NewInt(n)
		digits := wnaf(k, 5)
		sum := new(big.Int)
		pow := new(big.Int).SetInt64(1)
		for _, d := range digits {
			term := new(big.Int).Mul(big.NewInt(int64(d)), pow)
			sum.Add(sum, term)
			pow.Lsh(pow, 1)
		}
		require.Equal(t, k, sum, "n=%d", n)
	}
}

func TestPrecomputeCacheReused(t *testing.T) {
	p := FromAffine(Generator).Double().ToAffine()
	t1 := precomputeFor(p, 5)
	t2 := precomputeFor(p, 5)
	require.Same(t, t1, t2)
}
