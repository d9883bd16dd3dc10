package secp256k1

import "fmt"

// SchnorrSignature is a BIP-340 signature: 32-byte r (the nonce point's
// X-coordinate) followed by 32-byte s.
type SchnorrSignature struct {
	R *Fp
	S *Fn
}

func (sig *SchnorrSignature) Bytes() []byte {
	r := sig.R.Bytes()
	s := sig.S.Bytes()
	out := make([]byte, 64)
	copy(out[:32], r[:])
	copy(out[32:], s[:])
	return out
}

func ParseSchnorrSignature(b []byte) (*SchnorrSignature, error) {
	if len(b) != 64 {
		return nil, ErrInvalidLength
	}
	r, ok := FpFromBytesStrict(b[:32])
	if !ok {
		return nil, ErrInvalidSignature
	}
	s, ok := FnFromBytesStrictRange(b[32:])
	if !ok {
		return nil, ErrInvalidSignature
	}
	return &SchnorrSignature{R: r, S: s}, nil
}

// schnorrNonce implements BIP-340's default nonce generation: mask the
// (possibly-negated) private key with a tagged hash of the auxiliary
// randomness, then tagged-hash that against the public key and message.
func schnorrNonce(privKey32 [32]byte, xOnlyPub32 [32]byte, msg []byte, auxRand *[32]byte) [32]byte {
	var maskedKey [32]byte
	if auxRand != nil {
		auxHash := TaggedHash(bip340AuxTagHash, auxRand[:])
		for i := range maskedKey {
			maskedKey[i] = privKey32[i] ^ auxHash[i]
		}
	} else {
		zero := TaggedHash(bip340AuxTagHash, make([]byte, 32))
		for i := range maskedKey {
			maskedKey[i] = privKey32[i] ^ zero[i]
		}
	}
	return TaggedHash(bip340NonceTagHash, maskedKey[:], xOnlyPub32[:], msg)
}

// SchnorrSign produces a BIP-340 signature over a 32-byte message with kp's
// private key, using auxRand (32 bytes, nil to skip auxiliary randomness) for
// nonce masking. The resulting signature is self-verified before being
// returned, matching the reference algorithm's explicit verification step.
func SchnorrSign(kp *KeyPair, msg32 []byte, auxRand *[32]byte) (*SchnorrSignature, error) {
	if len(msg32) != 32 {
		return nil, fmt.Errorf("%w: message must be 32 bytes", ErrInvalidLength)
	}

	skBytes := kp.Private.Bytes()
	xOnly := kp.XOnly.Bytes()

	nonceHash := schnorrNonce(skBytes, xOnly, msg32, auxRand)
	k := FnFromBytes32(nonceHash)
	if k.IsZero() {
		return nil, ErrNonceExhausted
	}

	rPoint := MultiplyBaseFixed(k).ToAffine()
	if rPoint.Infinity {
		return nil, ErrPointAtInfinity
	}
	if rPoint.Y.IsOdd() {
		k = newFn().Negate(k)
		rPoint = MultiplyBaseFixed(k).ToAffine()
	}

	rBytes := rPoint.X.Bytes()
	e := schnorrChallenge(rBytes, xOnly, msg32)

	s := newFn().Mul(e, kp.Private.d)
	s = newFn().Add(s, k)

	sig := &SchnorrSignature{R: newFp().Set(rPoint.X), S: s}
	if !SchnorrVerify(kp.Public.AsXOnly(), msg32, sig) {
		return nil, ErrInvalidSignature
	}
	return sig, nil
}

// schnorrChallenge computes e = int(TaggedHash("BIP0340/challenge", r || pk || msg)) mod n.
func schnorrChallenge(r [32]byte, xOnlyPub [32]byte, msg []byte) *Fn {
	h := TaggedHash(bip340ChallengeTagHash, r[:], xOnlyPub[:], msg)
	return FnFromBytes32(h)
}

// FnFromBytes32 reduces a 32-byte array modulo n (no length check needed,
// used internally where the input is already a fixed-size hash output).
func FnFromBytes32(b [32]byte) *Fn {
	s, _ := FnFromBytes(b[:])
	return s
}

// AsXOnly returns the x-only view of a public key (dropping the Y parity).
func (p *PublicKey) AsXOnly() *XOnlyPublicKey { return NewXOnlyPublicKey(p) }

// SchnorrVerify checks a BIP-340 signature against a message and x-only
// public key.
func SchnorrVerify(pub *XOnlyPublicKey, msg32 []byte, sig *SchnorrSignature) bool {
	if len(msg32) != 32 || sig == nil || pub == nil {
		return false
	}
	if sig.S.Big().Cmp(curveOrder) >= 0 {
		return false
	}
	rBig := sig.R.Big()
	if rBig.Cmp(fieldPrime) >= 0 {
		return false
	}

	p, ok := pub.fullPointEvenY()
	if !ok {
		return false
	}

	rBytes := sig.R.Bytes()
	xOnly := pub.Bytes()
	e := schnorrChallenge(rBytes, xOnly, msg32)

	// R = s*G - e*P
	sG := MultiplyBaseVar(sig.S)
	eP := MultiplyVar(p, e)
	r := sG.Add(eP.Negate()).ToAffine()

	if r.Infinity || r.Y.IsOdd() {
		return false
	}
	return r.X.Equal(sig.R)
}

// SchnorrGetPublicKey returns the x-only public key (even-Y form) that
// SchnorrSign/SchnorrVerify use, derived from priv.
func SchnorrGetPublicKey(priv *PrivateKey) *XOnlyPublicKey {
	return NewKeyPair(priv).XOnly
}
