package secp256k1

import (
	"math/big"
	"runtime"
	"sync"
	"weak"
)

// wnaf computes the width-w non-adjacent form of a non-negative integer k:
// a sequence of signed digits, each odd or zero and bounded by
// +-(2^(w-1)-1), such that sum(digits[i] * 2^i) == k, with at most one
// non-zero digit in any window of w consecutive positions.
func wnaf(k *big.Int, width int) []int {
	if k.Sign() == 0 {
		return nil
	}
	e := new(big.Int).Set(k)
	mod := big.NewInt(1 << uint(width))
	half := int64(1) << uint(width-1)
	var digits []int
	for e.Sign() != 0 {
		digit := 0
		if e.Bit(0) == 1 {
			var m big.Int
			m.Mod(e, mod)
			d := m.Int64()
			if d >= half {
				d -= int64(1) << uint(width)
			}
			digit = int(d)
			e.Sub(e, big.NewInt(int64(digit)))
		}
		digits = append(digits, digit)
		e.Rsh(e, 1)
	}
	return digits
}

// wnafTable holds the precomputed odd multiples 1*P, 3*P, 5*P, ... of a point
// P needed to evaluate a width-w wNAF digit string without repeated doubling.
type wnafTable struct {
	width int
	odd   []*Jacobian // odd[i] = (2i+1)*P
}

func buildWnafTable(p *Affine, width int) *wnafTable {
	count := 1 << uint(width-2) // odd multiples 1, 3, ..., 2^(width-1)-1
	pj := FromAffine(p)
	twoP := pj.Double()
	odd := make([]*Jacobian, count)
	odd[0] = pj
	for i := 1; i < count; i++ {
		odd[i] = odd[i-1].Add(twoP)
	}
	return &wnafTable{width: width, odd: odd}
}

// precomputeCache memoizes wnafTable construction per point identity without
// keeping otherwise-unreferenced points alive: it is keyed by a weak pointer,
// and a runtime cleanup evicts the entry once the point itself is collected.
var precomputeCache sync.Map // weak.Pointer[Affine] -> *wnafTable

func precomputeFor(p *Affine, width int) *wnafTable {
	key := weak.Make(p)
	if v, ok := precomputeCache.Load(key); ok {
		if t := v.(*wnafTable); t.width >= width {
			return t
		}
	}
	t := buildWnafTable(p, width)
	precomputeCache.Store(key, t)
	runtime.AddCleanup(p, func(k weak.Pointer[Affine]) {
		precomputeCache.CompareAndDelete(k, t)
	}, key)
	return t
}

func tableLookup(t *wnafTable, digit int) *Jacobian {
	idx := (abs(digit) - 1) / 2
	pt := t.odd[idx]
	if digit < 0 {
		return pt.Negate()
	}
	return pt
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// mulWnaf computes k*p (k a non-negative big.Int magnitude) using the
// windowed non-adjacent form, reusing a cached precompute table for p when
// available. Variable-time: intended for scalar multiplication against
// public data (signature verification, ECDH's public-key operand).
func mulWnaf(p *Affine, k *big.Int, width int) *Jacobian {
	if k.Sign() == 0 || p.Infinity {
		return InfinityJacobian()
	}
	t := precomputeFor(p, width)
	digits := wnaf(k, width)
	acc := InfinityJacobian()
	for i := len(digits) - 1; i >= 0; i-- {
		acc = acc.Double()
		if digits[i] != 0 {
			acc = acc.Add(tableLookup(t, digits[i]))
		}
	}
	return acc
}

// baseWidth is the window width used for the generator's precompute table,
// built once at package init and reused by MultiplyBaseVar (MultiplyBaseFixed
// does not use the table).
const baseWidth = 8

func init() {
	// Force construction of the generator's table at package load instead of
	// lazily on first use, since MultiplyBaseVar (verification, recovery,
	// public-key tweaking) multiplies G on every call.
	precomputeFor(Generator, baseWidth)
}

// MultiplyUnsafe computes k*p with plain MSB-first double-and-add and no
// precompute table or GLV split. It is variable-time, so both operands must
// be public. Verification and recovery in this package use MultiplyVar and
// MultiplyBaseVar instead; MultiplyUnsafe serves as the simple reference
// those are checked against.
func MultiplyUnsafe(p *Affine, k *Fn) *Jacobian {
	if k.IsZero() || p.Infinity {
		return InfinityJacobian()
	}
	pj := FromAffine(p)
	acc := InfinityJacobian()
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = acc.Double()
		if k.Bit(uint(i)) == 1 {
			acc = acc.Add(pj)
		}
	}
	return acc
}

// MultiplyVar computes k*p for arbitrary point p and scalar k, variable-time.
// Suitable for signature verification and other operations on public data.
func MultiplyVar(p *Affine, k *Fn) *Jacobian {
	if k.IsZero() || p.Infinity {
		return InfinityJacobian()
	}
	k1, k1Neg, k2, k2Neg := splitScalar(k)
	p1 := p
	if k1Neg {
		p1 = p.Negate()
	}
	p2 := endomorphism(p)
	if k2Neg {
		p2 = p2.Negate()
	}
	r1 := mulWnaf(p1, k1, 5)
	r2 := mulWnaf(p2, k2, 5)
	return r1.Add(r2)
}

// MultiplyBaseVar computes k*G variable-time, for contexts with no secret
// dependency on k (e.g. computing a public key from an already-public nonce,
// or the e*G term inside signature verification).
func MultiplyBaseVar(k *Fn) *Jacobian {
	if k.IsZero() {
		return InfinityJacobian()
	}
	return mulWnaf(Generator, &k.v, baseWidth)
}

// MultiplyBaseFixed computes k*G with an operation count that does not
// depend on which bits of k are set: every one of the 256 iterations doubles
// both accumulators and performs exactly one addition, adding into a discarded dummy
// accumulator on iterations where the real digit is zero. This is the
// closest a math/big-backed implementation gets to the fixed-shape
// multiplication this package's signing paths use for the secret nonce and
// secret scalar; it does not by itself make every underlying big.Int
// operation constant-time (see DESIGN.md).
func MultiplyBaseFixed(k *Fn) *Jacobian {
	acc := InfinityJacobian()
	dummy := InfinityJacobian()
	gen := FromAffine(Generator)
	for i := 255; i >= 0; i-- {
		acc = acc.Double()
		dummy = dummy.Double()
		if k.Bit(uint(i)) == 1 {
			acc = acc.Add(gen)
		} else {
			dummy = dummy.Add(gen)
		}
	}
	_ = dummy
	return acc
}
