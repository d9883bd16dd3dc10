package secp256k1

import (
	"encoding/hex"
	"fmt"
)

// PrivateKey is a secp256k1 scalar in [1, n-1].
type PrivateKey struct {
	d *Fn
}

// NewPrivateKey validates and wraps a 32-byte big-endian scalar.
func NewPrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) == 32 && allZero(b) {
		return nil, ErrZeroScalar
	}
	d, ok := FnFromBytesStrict(b)
	if !ok {
		return nil, ErrInvalidPrivateKey
	}
	return &PrivateKey{d: d}, nil
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// PrivateKeyFromHex decodes a hex-encoded 32-byte scalar.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return NewPrivateKey(b)
}

func (p *PrivateKey) Bytes() [32]byte { return p.d.Bytes() }
func (p *PrivateKey) Hex() string     { b := p.Bytes(); return hex.EncodeToString(b[:]) }
func (p *PrivateKey) Scalar() *Fn     { return p.d }

// PublicKey derives the public key point P = d*G.
func (p *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{a: MultiplyBaseFixed(p.d).ToAffine()}
}

// TweakAdd returns a new private key d' = d + t mod n (BIP-32-style tweak).
func (p *PrivateKey) TweakAdd(t *Fn) (*PrivateKey, error) {
	sum := newFn().Add(p.d, t)
	if sum.IsZero() {
		return nil, ErrZeroScalar
	}
	return &PrivateKey{d: sum}, nil
}

// TweakMul returns a new private key d' = d * t mod n.
func (p *PrivateKey) TweakMul(t *Fn) (*PrivateKey, error) {
	prod := newFn().Mul(p.d, t)
	if prod.IsZero() {
		return nil, ErrZeroScalar
	}
	return &PrivateKey{d: prod}, nil
}

// PublicKey is a point on the curve, never the point at infinity.
type PublicKey struct {
	a *Affine
}

// NewPublicKeyFromAffine wraps an already-validated affine point.
func NewPublicKeyFromAffine(a *Affine) (*PublicKey, error) {
	if a.Infinity || !a.OnCurve() {
		return nil, ErrInvalidPublicKey
	}
	return &PublicKey{a: a}, nil
}

// ParsePublicKey accepts a 33-byte compressed (0x02/0x03 prefix) or 65-byte
// uncompressed (0x04 prefix) SEC1 encoding.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	switch {
	case len(b) == 33 && (b[0] == 0x02 || b[0] == 0x03):
		x, err := FpFromBytes(b[1:])
		if err != nil {
			return nil, ErrInvalidPublicKey
		}
		y, ok := DecompressY(x, b[0] == 0x03)
		if !ok {
			return nil, ErrPointNotOnCurve
		}
		return &PublicKey{a: &Affine{X: x, Y: y}}, nil
	case len(b) == 65 && b[0] == 0x04:
		x, err := FpFromBytes(b[1:33])
		if err != nil {
			return nil, ErrInvalidPublicKey
		}
		y, err := FpFromBytes(b[33:65])
		if err != nil {
			return nil, ErrInvalidPublicKey
		}
		a := &Affine{X: x, Y: y}
		if !a.OnCurve() {
			return nil, ErrPointNotOnCurve
		}
		return &PublicKey{a: a}, nil
	default:
		return nil, ErrInvalidLength
	}
}

func PublicKeyFromHex(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return ParsePublicKey(b)
}

// SerializeCompressed returns the 33-byte 0x02/0x03-prefixed encoding.
func (p *PublicKey) SerializeCompressed() []byte {
	x := p.a.X.Bytes()
	prefix := byte(0x02)
	if p.a.Y.IsOdd() {
		prefix = 0x03
	}
	out := make([]byte, 33)
	out[0] = prefix
	copy(out[1:], x[:])
	return out
}

// SerializeUncompressed returns the 65-byte 0x04-prefixed encoding.
func (p *PublicKey) SerializeUncompressed() []byte {
	x := p.a.X.Bytes()
	y := p.a.Y.Bytes()
	out := make([]byte, 65)
	out[0] = 0x04
	copy(out[1:33], x[:])
	copy(out[33:65], y[:])
	return out
}

func (p *PublicKey) Hex() string { return hex.EncodeToString(p.SerializeCompressed()) }

func (p *PublicKey) Affine() *Affine { return p.a }

func (p *PublicKey) Equal(o *PublicKey) bool { return p.a.Equal(o.a) }

// TweakAdd returns P + t*G.
func (p *PublicKey) TweakAdd(t *Fn) (*PublicKey, error) {
	tg := MultiplyBaseVar(t)
	sum := tg.Add(FromAffine(p.a)).ToAffine()
	return NewPublicKeyFromAffine(sum)
}

// TweakMul returns t*P.
func (p *PublicKey) TweakMul(t *Fn) (*PublicKey, error) {
	prod := MultiplyVar(p.a, t).ToAffine()
	return NewPublicKeyFromAffine(prod)
}

// XOnlyPublicKey is the 32-byte X-coordinate-only public key BIP-340 uses,
// always implicitly paired with an even-Y full point.
type XOnlyPublicKey struct {
	x *Fp
}

func NewXOnlyPublicKey(full *PublicKey) *XOnlyPublicKey {
	return &XOnlyPublicKey{x: newFp().Set(full.a.X)}
}

func XOnlyPublicKeyFromBytes(b []byte) (*XOnlyPublicKey, error) {
	x, err := FpFromBytes(b)
	if err != nil {
		return nil, err
	}
	if _, ok := DecompressY(x, false); !ok {
		return nil, ErrPointNotOnCurve
	}
	return &XOnlyPublicKey{x: x}, nil
}

func (x *XOnlyPublicKey) Bytes() [32]byte { return x.x.Bytes() }
func (x *XOnlyPublicKey) Hex() string     { b := x.Bytes(); return hex.EncodeToString(b[:]) }

// fullPointEvenY reconstructs the full point (x, y) with even y, as BIP-340
// requires when turning an x-only key back into a group element.
func (x *XOnlyPublicKey) fullPointEvenY() (*Affine, bool) {
	y, ok := DecompressY(x.x, false)
	if !ok {
		return nil, false
	}
	return &Affine{X: newFp().Set(x.x), Y: y}, true
}

// Compare orders two x-only public keys by their big-endian byte value,
// for use as a map/sort key (mirrors the teacher's XOnlyPubkeyCmp).
func (x *XOnlyPublicKey) Compare(o *XOnlyPublicKey) int {
	return x.x.Big().Cmp(o.x.Big())
}

// KeyPair bundles a private scalar with its cached public point and x-only
// form, so repeated signing doesn't recompute d*G.
type KeyPair struct {
	Private *PrivateKey
	Public  *PublicKey
	XOnly   *XOnlyPublicKey
	// negated reports whether Private/Public were negated relative to the
	// caller-supplied scalar to give Public an even Y, as BIP-340 signing
	// requires.
	negated bool
}

// NewKeyPair derives the public key and, if its Y is odd, negates both the
// scalar and point so the bundled Public always has even Y (BIP-340 section
// "Default Signing").
func NewKeyPair(priv *PrivateKey) *KeyPair {
	pub := priv.PublicKey()
	negated := false
	if pub.a.Y.IsOdd() {
		priv = &PrivateKey{d: newFn().Negate(priv.d)}
		pub = priv.PublicKey()
		negated = true
	}
	return &KeyPair{Private: priv, Public: pub, XOnly: NewXOnlyPublicKey(pub), negated: negated}
}
