package secp256k1

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func TestGeneratorOnCurve(t *testing.T) {
	require.True(t, Generator.OnCurve(), "%s", spew.Sdump(Generator))
}

func TestJacobianRoundTrip(t *testing.T) {
	j := FromAffine(Generator)
	back := j.ToAffine()
	require.True(t, back.Equal(Generator))
}

func TestDoubleMatchesAddToSelf(t *testing.T) {
	g := FromAffine(Generator)
	doubled := g.Double()
	added := g.Add(g)
	require.True(t, doubled.ToAffine().Equal(added.ToAffine()))
}

func TestAddInfinityIsIdentity(t *testing.T) {
	g := FromAffine(Generator)
	inf := InfinityJacobian()
	require.True(t, g.Add(inf).ToAffine().Equal(Generator))
	require.True(t, inf.Add(g).ToAffine().Equal(Generator))
}

func TestNegateCancels(t *testing.T) {
	g := FromAffine(Generator)
	negG := g.Negate()
	sum := g.Add(negG)
	require.True(t, sum.IsInfinity(), "%s", spew.Sdump(sum.ToAffine()))
}

func TestCurveOrderTimesGeneratorIsInfinity(t *testing.T) {
	// curveOrder itself reduces to 0 mod n through Fn, so exercise the raw
	// big.Int entry point directly to multiply by the unreduced order.
	result := mulWnaf(Generator, curveOrder, baseWidth)
	require.True(t, result.IsInfinity())
}

func TestDecompressYRoundTrip(t *testing.T) {
	for _, odd := range []bool{true, false} {
		y, ok := DecompressY(Generator.X, odd)
		require.True(t, ok)
		require.Equal(t, odd, y.IsOdd())
		candidate := &Affine{X: Generator.X, Y: y}
		require.True(t, candidate.OnCurve())
	}
}

func TestBatchToAffineMatchesIndividual(t *testing.T) {
	pts := []*Jacobian{
		FromAffine(Generator),
		FromAffine(Generator).Double(),
		FromAffine(Generator).Double().Add(FromAffine(Generator)),
	}
	batched := BatchToAffine(pts)
	for i, p := range pts {
		require.True(t, batched[i].Equal(p.ToAffine()), "index %d", i)
	}
}
