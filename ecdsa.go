package secp256k1

import (
	"crypto/rand"
	"fmt"
)

// Signature is an ECDSA (r, s) pair.
type Signature struct {
	R, S *Fn
	// RecoveryID is set by Sign when recovery was requested; 0 or 1 (this
	// package does not support ids 2/3, the x >= n case — see DESIGN.md).
	RecoveryID byte
}

// SignOptions controls the non-default behaviors of Sign.
type SignOptions struct {
	// ExtraEntropy is mixed into the RFC 6979 nonce derivation as additional
	// personalization data (RFC 6979 section 3.6's k' variant).
	ExtraEntropy []byte
	// GenerateExtraEntropy requests 32 bytes of crypto/rand output be used as
	// ExtraEntropy when ExtraEntropy is nil, the "extraEntropy: true" form.
	GenerateExtraEntropy bool
	// Recovered requests that Sign populate Signature.RecoveryID.
	Recovered bool
	// NonCanonical disables low-S canonicalization. Default (false) always
	// produces the low-S form signatures, matching nearly every consensus
	// system built on this curve.
	NonCanonical bool
}

// Sign produces a deterministic ECDSA signature over a 32-byte message hash
// using RFC 6979 for the nonce. By default the signature is canonicalized
// to low-S (BIP-62) and no recovery id is computed.
func Sign(priv *PrivateKey, msgHash []byte, opts *SignOptions) (*Signature, error) {
	if len(msgHash) != 32 {
		return nil, fmt.Errorf("%w: message hash must be 32 bytes", ErrInvalidLength)
	}
	if opts == nil {
		opts = &SignOptions{}
	}
	if opts.GenerateExtraEntropy && opts.ExtraEntropy == nil {
		var buf [32]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("secp256k1: generating extra entropy: %w", err)
		}
		generated := *opts
		generated.ExtraEntropy = buf[:]
		opts = &generated
	}

	for attempt := 0; ; attempt++ {
		extra := opts.ExtraEntropy
		if attempt > 0 {
			// RFC 6979 has no "retry with a different k" case when k itself
			// is in range but r or s comes out zero (astronomically
			// unlikely); perturb the personalization data to force a fresh
			// nonce on the rare chance it does.
			extra = append(append([]byte{}, extra...), byte(attempt))
		}

		k, err := rfc6979Nonce(priv.d, msgHash, extra)
		if err != nil {
			return nil, err
		}

		rPoint := MultiplyBaseFixed(k).ToAffine()
		if rPoint.Infinity {
			continue
		}
		r := FnFromBig(rPoint.X.Big())
		if r.IsZero() {
			continue
		}

		kInv := newFn().Inverse(k)
		e := FnFromBig(bits2int(msgHash))
		s := newFn().Mul(r, priv.d)
		s = newFn().Add(s, e)
		s = newFn().Mul(s, kInv)
		if s.IsZero() {
			continue
		}

		var recID byte
		if rPoint.Y.IsOdd() {
			recID = 1
		}

		negated := false
		if !opts.NonCanonical && s.CondNegate() {
			negated = true
		}
		if negated {
			recID ^= 1
		}

		sig := &Signature{R: r, S: s}
		if opts.Recovered {
			sig.RecoveryID = recID
		}
		return sig, nil
	}
}

// SignAsync runs Sign on its own goroutine and reports the result on the
// returned channel, for callers that want signing off their current
// goroutine without a second, independently-implemented nonce path.
func SignAsync(priv *PrivateKey, msgHash []byte, opts *SignOptions) <-chan SignResult {
	ch := make(chan SignResult, 1)
	go func() {
		sig, err := Sign(priv, msgHash, opts)
		ch <- SignResult{Signature: sig, Err: err}
	}()
	return ch
}

// SignResult is the payload delivered over SignAsync's channel.
type SignResult struct {
	Signature *Signature
	Err       error
}

// VerifyOptions controls the non-default behaviors of Verify.
type VerifyOptions struct {
	// Strict rejects high-S signatures instead of accepting them (BIP-62
	// low-S enforcement). Off by default, matching plain ECDSA.
	Strict bool
}

// Verify checks sig against msgHash and pub. It does not require low-S
// unless opts.Strict is set.
func Verify(pub *PublicKey, msgHash []byte, sig *Signature, opts *VerifyOptions) bool {
	return VerifyErr(pub, msgHash, sig, opts) == nil
}

// VerifyErr is Verify with a reason for rejection: ErrInvalidLength (wrapped)
// when msgHash is not 32 bytes, ErrSignatureHighS when opts.Strict rejects a
// high-S signature, ErrInvalidSignature otherwise.
func VerifyErr(pub *PublicKey, msgHash []byte, sig *Signature, opts *VerifyOptions) error {
	if len(msgHash) != 32 {
		return fmt.Errorf("%w: message hash must be 32 bytes", ErrInvalidLength)
	}
	if sig == nil || pub == nil {
		return ErrInvalidSignature
	}
	if opts == nil {
		opts = &VerifyOptions{}
	}
	if sig.R.IsZero() || sig.S.IsZero() {
		return ErrInvalidSignature
	}
	if opts.Strict && sig.S.IsHigh() {
		return ErrSignatureHighS
	}

	// Reject a message hash that truncates to zero: a fault attack that
	// zeroes msgHash would otherwise produce a signature over e=0.
	e := FnFromBig(bits2int(msgHash))
	if e.IsZero() {
		return ErrInvalidSignature
	}

	sInv := newFn().Inverse(sig.S)
	u1 := newFn().Mul(e, sInv)
	u2 := newFn().Mul(sig.R, sInv)

	p1 := MultiplyBaseVar(u1)
	p2 := MultiplyVar(pub.a, u2)
	sum := p1.Add(p2).ToAffine()
	if sum.Infinity {
		return ErrInvalidSignature
	}

	rGot := FnFromBig(sum.X.Big())
	if !rGot.Equal(sig.R) {
		return ErrInvalidSignature
	}
	return nil
}

// RecoverPublicKey recovers the public key that would verify sig over
// msgHash, given a recovery id produced by Sign with Recovered: true.
// Ids 2 and 3 (the x >= n case) are not supported; see DESIGN.md.
func RecoverPublicKey(msgHash []byte, sig *Signature, recoveryID byte) (*PublicKey, error) {
	if len(msgHash) != 32 {
		return nil, ErrInvalidLength
	}
	if recoveryID > 1 {
		return nil, ErrUnsupportedRecoverID
	}
	if sig.R.IsZero() || sig.S.IsZero() {
		return nil, ErrInvalidSignature
	}

	x := sig.R.Big()
	y, ok := DecompressY(FpFromBig(x), recoveryID&1 == 1)
	if !ok {
		return nil, ErrPointNotOnCurve
	}
	rPoint := &Affine{X: FpFromBig(x), Y: y}

	rInv := newFn().Inverse(sig.R)
	e := FnFromBig(bits2int(msgHash))

	// Q = r^-1 * (s*R - e*G)
	sR := MultiplyVar(rPoint, sig.S)
	eG := MultiplyBaseVar(e)
	diff := sR.Add(eG.Negate())
	q := diff.MulScalar(rInv).ToAffine()

	return NewPublicKeyFromAffine(q)
}

// MulScalar computes k*j for an already-computed Jacobian point j,
// variable-time double-and-add. Used by recovery, where j is a one-off
// linear combination not worth caching in the precompute table.
func (j *Jacobian) MulScalar(k *Fn) *Jacobian {
	if k.IsZero() || j.IsInfinity() {
		return InfinityJacobian()
	}
	acc := InfinityJacobian()
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc = acc.Double()
		if k.Bit(uint(i)) == 1 {
			acc = acc.Add(j)
		}
	}
	return acc
}

// SerializeCompact encodes sig as the 64-byte r||s format.
func (sig *Signature) SerializeCompact() []byte {
	r := sig.R.Bytes()
	s := sig.S.Bytes()
	out := make([]byte, 64)
	copy(out[:32], r[:])
	copy(out[32:], s[:])
	return out
}

// ParseCompactSignature decodes the 64-byte r||s format.
func ParseCompactSignature(b []byte) (*Signature, error) {
	if len(b) != 64 {
		return nil, ErrInvalidLength
	}
	r, ok := FnFromBytesStrictRange(b[:32])
	if !ok || r.IsZero() {
		return nil, ErrInvalidSignature
	}
	s, ok := FnFromBytesStrictRange(b[32:])
	if !ok || s.IsZero() {
		return nil, ErrInvalidSignature
	}
	return &Signature{R: r, S: s}, nil
}
