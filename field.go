package secp256k1

import (
	"math/big"
)

// fieldPrime is P = 2^256 - 2^32 - 977, the secp256k1 base field modulus.
var fieldPrime, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 16)

// fieldPMinus2 is P-2, the exponent Inverse uses for Fermat inversion.
var fieldPMinus2 = new(big.Int).Sub(fieldPrime, big.NewInt(2))

// fieldSqrtExp is (P+1)/4. P = fieldPrime is congruent to 3 mod 4, so for any
// quadratic residue a, a^((P+1)/4) mod P is a square root of a.
var fieldSqrtExp = new(big.Int).Rsh(new(big.Int).Add(fieldPrime, big.NewInt(1)), 2)

// Fp is an element of the secp256k1 base field, always kept reduced modulo P.
// Backed by math/big rather than fixed 5x52 limbs: see DESIGN.md for why this
// repo departs from the teacher's hand-unrolled limb arithmetic here.
type Fp struct {
	v big.Int
}

func newFp() *Fp {
	return &Fp{}
}

// FpFromBig reduces x modulo P into a new Fp.
func FpFromBig(x *big.Int) *Fp {
	f := &Fp{}
	f.v.Mod(x, fieldPrime)
	return f
}

// FpFromBytesStrict parses b as a 32-byte big-endian integer and requires it
// to already be canonically reduced (< P), returning ok=false otherwise.
func FpFromBytesStrict(b []byte) (f *Fp, ok bool) {
	if len(b) != 32 {
		return nil, false
	}
	f = &Fp{}
	f.v.SetBytes(b)
	if f.v.Cmp(fieldPrime) >= 0 {
		return nil, false
	}
	return f, true
}

// FpFromBytes interprets b as a big-endian 32-byte integer and reduces it mod P.
func FpFromBytes(b []byte) (*Fp, error) {
	if len(b) != 32 {
		return nil, ErrInvalidLength
	}
	f := &Fp{}
	f.v.SetBytes(b)
	f.v.Mod(&f.v, fieldPrime)
	return f, nil
}

// Bytes returns the big-endian 32-byte encoding of f.
func (f *Fp) Bytes() [32]byte {
	var out [32]byte
	b := f.v.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// Big returns the big.Int value of f. The caller must not mutate the result.
func (f *Fp) Big() *big.Int {
	return &f.v
}

func (f *Fp) Set(o *Fp) *Fp {
	f.v.Set(&o.v)
	return f
}

func (f *Fp) IsZero() bool {
	return f.v.Sign() == 0
}

func (f *Fp) IsOdd() bool {
	return f.v.Bit(0) == 1
}

func (f *Fp) Equal(o *Fp) bool {
	return f.v.Cmp(&o.v) == 0
}

// Add sets f = a+b mod P and returns f.
func (f *Fp) Add(a, b *Fp) *Fp {
	f.v.Add(&a.v, &b.v)
	f.v.Mod(&f.v, fieldPrime)
	return f
}

func (f *Fp) Sub(a, b *Fp) *Fp {
	f.v.Sub(&a.v, &b.v)
	f.v.Mod(&f.v, fieldPrime)
	return f
}

func (f *Fp) Mul(a, b *Fp) *Fp {
	f.v.Mul(&a.v, &b.v)
	f.v.Mod(&f.v, fieldPrime)
	return f
}

func (f *Fp) Sqr(a *Fp) *Fp {
	return f.Mul(a, a)
}

func (f *Fp) Negate(a *Fp) *Fp {
	f.v.Sub(fieldPrime, &a.v)
	f.v.Mod(&f.v, fieldPrime)
	return f
}

// MulInt multiplies f by a small non-negative integer constant (e.g. the "7"
// in the curve equation or the "3" in doubling formulas) without allocating a
// second Fp.
func (f *Fp) MulInt(a *Fp, n int64) *Fp {
	f.v.Mul(&a.v, big.NewInt(n))
	f.v.Mod(&f.v, fieldPrime)
	return f
}

// Inverse sets f = a^-1 mod P using Fermat's little theorem (a^(P-2)).
// a must be non-zero.
func (f *Fp) Inverse(a *Fp) *Fp {
	f.v.Exp(&a.v, fieldPMinus2, fieldPrime)
	return f
}

// Sqrt sets f to a square root of a and reports whether a is a quadratic
// residue mod P. P = 3 mod 4, so the candidate root is a^((P+1)/4); it is
// verified by squaring since that exponent produces a candidate unconditionally.
func (f *Fp) Sqrt(a *Fp) bool {
	var cand big.Int
	cand.Exp(&a.v, fieldSqrtExp, fieldPrime)
	var check big.Int
	check.Mul(&cand, &cand)
	check.Mod(&check, fieldPrime)
	if check.Cmp(&a.v) != 0 {
		return false
	}
	f.v.Set(&cand)
	return true
}

// BatchInverse inverts every element of xs in place using Montgomery's trick:
// one modular inversion plus 3n multiplications instead of n inversions.
// Elements must all be non-zero.
func BatchInverse(xs []*Fp) {
	n := len(xs)
	if n == 0 {
		return
	}
	prefix := make([]*Fp, n)
	acc := newFp().Set(&Fp{v: *big.NewInt(1)})
	for i := 0; i < n; i++ {
		prefix[i] = newFp().Set(acc)
		acc = newFp().Mul(acc, xs[i])
	}
	inv := newFp().Inverse(acc)
	for i := n - 1; i >= 0; i-- {
		orig := newFp().Set(xs[i])
		xs[i] = newFp().Mul(inv, prefix[i])
		inv = newFp().Mul(inv, orig)
	}
}
