package secp256k1

import "math/big"

// GLV endomorphism constants. beta is a primitive cube root of unity mod P;
// lambda is a primitive cube root of unity mod n satisfying the relation
// lambda*(x,y) == (beta*x, y) on the curve (a fast, multiplication-free
// "doubling-like" map). a1/b1/a2/b2 are a short basis for the lattice
// {(k1,k2) in Z^2 : k1 + k2*lambda == 0 mod n}, used to split any scalar k
// into k1 + k2*lambda mod n with both halves roughly 128 bits instead of 256.
var (
	glvBeta, _   = new(big.Int).SetString("7ae96a2b657c07106e64479eac3434e99cf0497512f58995c1396c28719501ee", 16)
	glvLambda, _ = new(big.Int).SetString("5363ad4cc05c30e0a5261c028812645a122e22ea20816678df02967c1b23bd72", 16)

	glvA1, _ = new(big.Int).SetString("3086d221a7d46bcde86c90e49284eb15", 16)
	glvB1    = new(big.Int).Neg(mustHex("e4437ed6010e88286f547fa90abfe4c3"))
	glvA2, _ = new(big.Int).SetString("114ca50f7a8e2f3f657c1108d9d44cfd8", 16)
	glvB2    = new(big.Int).Set(glvA1)
)

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("secp256k1: bad hex constant " + s)
	}
	return v
}

// endomorphism applies the curve endomorphism phi(x,y) = (beta*x mod P, y) to
// a point, equivalent to scalar multiplication by lambda.
func endomorphism(a *Affine) *Affine {
	if a.Infinity {
		return InfinityAffine()
	}
	betaFp := FpFromBig(glvBeta)
	return &Affine{X: newFp().Mul(a.X, betaFp), Y: newFp().Set(a.Y)}
}

// divNearest computes floor((num + den/2) / den) for den > 0 using Euclidean
// division (big.Int.Div matches floor division whenever the divisor is
// positive, which it always is here: den is always curveOrder).
func divNearest(num, den *big.Int) *big.Int {
	t := new(big.Int).Add(num, new(big.Int).Rsh(den, 1))
	return new(big.Int).Div(t, den)
}

// toSigned maps a canonical residue x in [0, n) to the representative of
// least absolute value in (-n/2, n/2].
func toSigned(x *big.Int) *big.Int {
	if x.Cmp(curveOrderHalf) > 0 {
		return new(big.Int).Sub(x, curveOrder)
	}
	return new(big.Int).Set(x)
}

// splitScalar decomposes k (mod n) into k1, k2 with k == k1 + k2*lambda mod n
// and |k1|, |k2| each roughly 128 bits, plus the sign each half needs applied
// to its corresponding point before the (now half-width) double-and-add.
func splitScalar(k *Fn) (k1 *big.Int, k1Neg bool, k2 *big.Int, k2Neg bool) {
	kv := &k.v

	c1 := divNearest(new(big.Int).Mul(glvB2, kv), curveOrder)
	c2 := divNearest(new(big.Int).Mul(new(big.Int).Neg(glvB1), kv), curveOrder)

	t1 := new(big.Int).Mul(c1, glvA1)
	t2 := new(big.Int).Mul(c2, glvA2)
	k1v := new(big.Int).Sub(kv, new(big.Int).Add(t1, t2))
	k1v.Mod(k1v, curveOrder)

	u1 := new(big.Int).Mul(c1, glvB1)
	u2 := new(big.Int).Mul(c2, glvB2)
	k2v := new(big.Int).Neg(new(big.Int).Add(u1, u2))
	k2v.Mod(k2v, curveOrder)

	k1s := toSigned(k1v)
	k2s := toSigned(k2v)

	k1Neg = k1s.Sign() < 0
	k2Neg = k2s.Sign() < 0
	return new(big.Int).Abs(k1s), k1Neg, new(big.Int).Abs(k2s), k2Neg
}
