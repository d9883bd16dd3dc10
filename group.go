package secp256k1

import "math/big"

// Curve equation: y^2 = x^3 + 7 over Fp. The curve has cofactor 1 and b=7, a=0.
var curveB = FpFromBig(big.NewInt(7))

var genX, _ = new(big.Int).SetString(
	"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", 16)
var genY, _ = new(big.Int).SetString(
	"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8", 16)

// Generator is the base point G of the secp256k1 group.
var Generator = &Affine{X: FpFromBig(genX), Y: FpFromBig(genY)}

// Affine is a point on the curve in affine (x, y) coordinates. A value with
// Infinity set (see InfinityAffine) represents the point at infinity; the
// zero value is not a valid point.
type Affine struct {
	X, Y     *Fp
	Infinity bool
}

// InfinityAffine is the identity element in affine coordinates.
func InfinityAffine() *Affine {
	return &Affine{X: newFp(), Y: newFp(), Infinity: true}
}

func (a *Affine) IsInfinity() bool { return a.Infinity }

// OnCurve reports whether a satisfies y^2 = x^3 + 7 mod P.
func (a *Affine) OnCurve() bool {
	if a.Infinity {
		return true
	}
	lhs := newFp().Sqr(a.Y)
	x2 := newFp().Sqr(a.X)
	x3 := newFp().Mul(x2, a.X)
	rhs := newFp().Add(x3, curveB)
	return lhs.Equal(rhs)
}

func (a *Affine) Equal(o *Affine) bool {
	if a.Infinity || o.Infinity {
		return a.Infinity == o.Infinity
	}
	return a.X.Equal(o.X) && a.Y.Equal(o.Y)
}

func (a *Affine) Negate() *Affine {
	if a.Infinity {
		return InfinityAffine()
	}
	return &Affine{X: newFp().Set(a.X), Y: newFp().Negate(a.Y)}
}

// Jacobian is a point in Jacobian projective coordinates: (X, Y, Z) represents
// affine (X/Z^2, Y/Z^3). Z=0 represents the point at infinity.
type Jacobian struct {
	X, Y, Z *Fp
}

func InfinityJacobian() *Jacobian {
	return &Jacobian{X: newFp().Set(&Fp{v: *big.NewInt(1)}), Y: newFp().Set(&Fp{v: *big.NewInt(1)}), Z: newFp()}
}

func (j *Jacobian) IsInfinity() bool { return j.Z.IsZero() }

func FromAffine(a *Affine) *Jacobian {
	if a.Infinity {
		return InfinityJacobian()
	}
	one := newFp().Set(&Fp{v: *big.NewInt(1)})
	return &Jacobian{X: newFp().Set(a.X), Y: newFp().Set(a.Y), Z: one}
}

// ToAffine converts j to affine coordinates, normalizing by Z.
func (j *Jacobian) ToAffine() *Affine {
	if j.IsInfinity() {
		return InfinityAffine()
	}
	zInv := newFp().Inverse(j.Z)
	zInv2 := newFp().Sqr(zInv)
	zInv3 := newFp().Mul(zInv2, zInv)
	return &Affine{X: newFp().Mul(j.X, zInv2), Y: newFp().Mul(j.Y, zInv3)}
}

// Double computes 2*j using the a=0 doubling formula (2M + 5S as per the
// standard "dbl-2009-l" style used for short Weierstrass curves with a=0).
func (j *Jacobian) Double() *Jacobian {
	if j.IsInfinity() || j.Y.IsZero() {
		return InfinityJacobian()
	}
	a := newFp().Sqr(j.X)               // A = X1^2
	b := newFp().Sqr(j.Y)               // B = Y1^2
	c := newFp().Sqr(b)                 // C = B^2
	xPlusB := newFp().Add(j.X, b)
	xPlusBSq := newFp().Sqr(xPlusB)
	d := newFp().Sub(xPlusBSq, newFp().Add(a, c))
	d = newFp().MulInt(d, 2) // D = 2*((X1+B)^2 - A - C)
	e := newFp().MulInt(a, 3) // E = 3*A
	f := newFp().Sqr(e)       // F = E^2

	x3 := newFp().Sub(f, newFp().MulInt(d, 2))
	y3 := newFp().Sub(d, x3)
	y3 = newFp().Sub(newFp().Mul(e, y3), newFp().MulInt(c, 8))
	z3 := newFp().Mul(j.Y, j.Z)
	z3 = newFp().MulInt(z3, 2)

	return &Jacobian{X: x3, Y: y3, Z: z3}
}

// Add computes j + o using the general Jacobian addition formula
// ("add-2007-bl", 11M + 5S).
// Callers needing mixed addition (o.Z == 1) get the same correctness with a
// little redundant work; this package does not special-case it since the
// math/big multiplications it would save are already cheap relative to the
// group law's point count.
func (j *Jacobian) Add(o *Jacobian) *Jacobian {
	if j.IsInfinity() {
		return &Jacobian{X: newFp().Set(o.X), Y: newFp().Set(o.Y), Z: newFp().Set(o.Z)}
	}
	if o.IsInfinity() {
		return &Jacobian{X: newFp().Set(j.X), Y: newFp().Set(j.Y), Z: newFp().Set(j.Z)}
	}

	z1z1 := newFp().Sqr(j.Z)
	z2z2 := newFp().Sqr(o.Z)
	u1 := newFp().Mul(j.X, z2z2)
	u2 := newFp().Mul(o.X, z1z1)
	s1 := newFp().Mul(j.Y, newFp().Mul(o.Z, z2z2))
	s2 := newFp().Mul(o.Y, newFp().Mul(j.Z, z1z1))

	if u1.Equal(u2) {
		if !s1.Equal(s2) {
			return InfinityJacobian()
		}
		return j.Double()
	}

	h := newFp().Sub(u2, u1)
	i := newFp().Sqr(newFp().MulInt(h, 2))
	jj := newFp().Mul(h, i)
	r := newFp().MulInt(newFp().Sub(s2, s1), 2)
	v := newFp().Mul(u1, i)

	x3 := newFp().Sub(newFp().Sqr(r), newFp().Add(jj, newFp().MulInt(v, 2)))
	y3 := newFp().Sub(v, x3)
	y3 = newFp().Sub(newFp().Mul(r, y3), newFp().MulInt(newFp().Mul(s1, jj), 2))
	z3 := newFp().Mul(newFp().Sub(newFp().Sqr(newFp().Add(j.Z, o.Z)), newFp().Add(z1z1, z2z2)), h)

	return &Jacobian{X: x3, Y: y3, Z: z3}
}

func (j *Jacobian) Negate() *Jacobian {
	return &Jacobian{X: newFp().Set(j.X), Y: newFp().Negate(j.Y), Z: newFp().Set(j.Z)}
}

// BatchToAffine converts many Jacobian points to affine using a single
// Montgomery-trick batch inversion of their Z coordinates instead of one
// inversion per point.
func BatchToAffine(pts []*Jacobian) []*Affine {
	out := make([]*Affine, len(pts))
	zs := make([]*Fp, 0, len(pts))
	idx := make([]int, 0, len(pts))
	for i, p := range pts {
		if p.IsInfinity() {
			out[i] = InfinityAffine()
			continue
		}
		zs = append(zs, newFp().Set(p.Z))
		idx = append(idx, i)
	}
	BatchInverse(zs)
	for k, i := range idx {
		p := pts[i]
		zInv := zs[k]
		zInv2 := newFp().Sqr(zInv)
		zInv3 := newFp().Mul(zInv2, zInv)
		out[i] = &Affine{X: newFp().Mul(p.X, zInv2), Y: newFp().Mul(p.Y, zInv3)}
	}
	return out
}

// DecompressY recovers a Y coordinate for x with the given parity (odd=true
// for an odd Y), reporting false if x is not on the curve.
func DecompressY(x *Fp, odd bool) (*Fp, bool) {
	x2 := newFp().Sqr(x)
	x3 := newFp().Mul(x2, x)
	rhs := newFp().Add(x3, curveB)
	y := newFp()
	if !y.Sqrt(rhs) {
		return nil, false
	}
	if y.IsOdd() != odd {
		y = newFp().Negate(y)
	}
	return y, true
}
