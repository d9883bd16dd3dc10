package secp256k1

import "math/big"

// curveOrder is n, the order of the secp256k1 generator point.
var curveOrder, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

var curveOrderMinus2 = new(big.Int).Sub(curveOrder, big.NewInt(2))

// curveOrderHalf is n/2, the threshold for low-S canonicalization (BIP-62).
var curveOrderHalf = new(big.Int).Rsh(curveOrder, 1)

// Fn is an element of the scalar field (integers mod the curve order n),
// always kept reduced. Backed by math/big for the same reasons as Fp; see
// DESIGN.md.
type Fn struct {
	v big.Int
}

func newFn() *Fn {
	return &Fn{}
}

func FnFromBig(x *big.Int) *Fn {
	s := &Fn{}
	s.v.Mod(x, curveOrder)
	return s
}

// FnFromBytes interprets b as a big-endian 32-byte integer and reduces it mod n.
func FnFromBytes(b []byte) (*Fn, error) {
	if len(b) != 32 {
		return nil, ErrInvalidLength
	}
	s := &Fn{}
	s.v.SetBytes(b)
	s.v.Mod(&s.v, curveOrder)
	return s, nil
}

// FnFromBytesStrictRange parses b as a 32-byte big-endian integer and
// requires it to already be in [0, n-1], returning ok=false instead of
// silently reducing out-of-range input. Unlike FnFromBytesStrict, zero is
// accepted (used for signature components, where only the upper bound is a
// validity rule).
func FnFromBytesStrictRange(b []byte) (s *Fn, ok bool) {
	if len(b) != 32 {
		return nil, false
	}
	s = &Fn{}
	s.v.SetBytes(b)
	if s.v.Cmp(curveOrder) >= 0 {
		return nil, false
	}
	return s, true
}

// FnFromBytesStrict parses b as a 32-byte big-endian integer and requires it
// to already be in [1, n-1] (the private-key / RFC6979 candidate validity
// rule), returning ok=false instead of silently reducing out-of-range input.
func FnFromBytesStrict(b []byte) (s *Fn, ok bool) {
	if len(b) != 32 {
		return nil, false
	}
	s = &Fn{}
	s.v.SetBytes(b)
	if s.v.Sign() == 0 || s.v.Cmp(curveOrder) >= 0 {
		return nil, false
	}
	return s, true
}

func (s *Fn) Bytes() [32]byte {
	var out [32]byte
	b := s.v.Bytes()
	copy(out[32-len(b):], b)
	return out
}

func (s *Fn) Big() *big.Int { return &s.v }

func (s *Fn) Set(o *Fn) *Fn {
	s.v.Set(&o.v)
	return s
}

func (s *Fn) IsZero() bool { return s.v.Sign() == 0 }

func (s *Fn) Equal(o *Fn) bool { return s.v.Cmp(&o.v) == 0 }

// IsHigh reports whether s > n/2 (BIP-62 low-S rule).
func (s *Fn) IsHigh() bool { return s.v.Cmp(curveOrderHalf) > 0 }

func (s *Fn) Add(a, b *Fn) *Fn {
	s.v.Add(&a.v, &b.v)
	s.v.Mod(&s.v, curveOrder)
	return s
}

func (s *Fn) Sub(a, b *Fn) *Fn {
	s.v.Sub(&a.v, &b.v)
	s.v.Mod(&s.v, curveOrder)
	return s
}

func (s *Fn) Mul(a, b *Fn) *Fn {
	s.v.Mul(&a.v, &b.v)
	s.v.Mod(&s.v, curveOrder)
	return s
}

func (s *Fn) Negate(a *Fn) *Fn {
	s.v.Sub(curveOrder, &a.v)
	s.v.Mod(&s.v, curveOrder)
	return s
}

// CondNegate negates s in place if it is currently "high" (> n/2), the
// low-S canonicalization step used by ECDSA signing.
func (s *Fn) CondNegate() (negated bool) {
	if s.IsHigh() {
		s.Negate(s)
		return true
	}
	return false
}

func (s *Fn) Inverse(a *Fn) *Fn {
	s.v.Exp(&a.v, curveOrderMinus2, curveOrder)
	return s
}

// Bit returns bit i (0 = least significant) of the canonical representative.
func (s *Fn) Bit(i uint) uint {
	return uint(s.v.Bit(int(i)))
}

// BitLen returns the number of bits in the canonical representative.
func (s *Fn) BitLen() int {
	return s.v.BitLen()
}
