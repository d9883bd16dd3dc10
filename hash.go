package secp256k1

import (
	"bytes"
	"crypto/hmac"
	"hash"
	"math/big"

	sha256simd "github.com/minio/sha256-simd"
)

// Sum256 hashes data with SHA-256 using the AVX2/SHA-NI accelerated
// implementation rather than crypto/sha256, the same substitution the
// teacher makes for the same reason.
func Sum256(data ...[]byte) [32]byte {
	h := sha256simd.New()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func newHMACSHA256(key []byte) hash.Hash {
	return hmac.New(sha256simd.New, key)
}

// taggedHashPrefix precomputes SHA256(tag) so BIP-340's tagged hash,
// SHA256(SHA256(tag) || SHA256(tag) || msg), doesn't rehash the tag on every
// call.
func taggedHashPrefix(tag string) [32]byte {
	return Sum256([]byte(tag))
}

var (
	bip340AuxTagHash       = taggedHashPrefix("BIP0340/aux")
	bip340NonceTagHash     = taggedHashPrefix("BIP0340/nonce")
	bip340ChallengeTagHash = taggedHashPrefix("BIP0340/challenge")
)

// TaggedHash computes the BIP-340 tagged hash of msg under the given
// precomputed tag hash.
func TaggedHash(tagHash [32]byte, msg ...[]byte) [32]byte {
	h := sha256simd.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, m := range msg {
		h.Write(m)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// hmacDRBG implements the HMAC-DRBG construction RFC 6979 builds its
// deterministic nonce on top of (RFC 6979 section 3.2, steps b-g; this type
// covers the shared reseed/generate machinery, not the secp256k1-specific
// bits2int/int2octets wrapping around it).
type hmacDRBG struct {
	k []byte
	v []byte
}

func newHMACDRBG(entropy, nonce, personalization []byte) *hmacDRBG {
	d := &hmacDRBG{
		k: make([]byte, 32),
		v: bytes.Repeat([]byte{0x01}, 32),
	}
	seed := append(append(append([]byte{}, entropy...), nonce...), personalization...)
	d.update(seed)
	return d
}

func (d *hmacDRBG) update(seedMaterial []byte) {
	h := newHMACSHA256(d.k)
	h.Write(d.v)
	h.Write([]byte{0x00})
	h.Write(seedMaterial)
	d.k = h.Sum(nil)

	h = newHMACSHA256(d.k)
	h.Write(d.v)
	d.v = h.Sum(nil)

	if len(seedMaterial) == 0 {
		return
	}

	h = newHMACSHA256(d.k)
	h.Write(d.v)
	h.Write([]byte{0x01})
	h.Write(seedMaterial)
	d.k = h.Sum(nil)

	h = newHMACSHA256(d.k)
	h.Write(d.v)
	d.v = h.Sum(nil)
}

// generate produces n bytes of output, per RFC 6979 section 3.2 step h.
func (d *hmacDRBG) generate(n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		h := newHMACSHA256(d.k)
		h.Write(d.v)
		d.v = h.Sum(nil)
		out = append(out, d.v...)
	}
	return out[:n]
}

func (d *hmacDRBG) reseed(additional []byte) {
	d.update(additional)
}

// rfc6979Nonce derives the deterministic ECDSA/Schnorr-adjacent nonce for
// private key d over message hash h, per RFC 6979 section 3.2, retrying with
// a fresh generate-reseed cycle whenever a candidate falls outside [1, n-1]
// (the "h = 2" update in step h, first bullet).
func rfc6979Nonce(privKey *Fn, msgHash []byte, extraEntropy []byte) (*Fn, error) {
	keyBytes := privKey.Bytes()
	hBytes := bits2octets(msgHash)

	var personalization []byte
	if len(extraEntropy) > 0 {
		personalization = extraEntropy
	}

	drbg := newHMACDRBG(keyBytes[:], hBytes, personalization)

	const maxAttempts = 1000
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := drbg.generate(32)
		if k, ok := FnFromBytesStrict(candidate); ok {
			return k, nil
		}
		drbg.reseed(nil)
	}
	return nil, ErrNonceExhausted
}

// bits2octets implements RFC 6979 section 2.3.4: reduce the leftmost
// curveOrder.BitLen() bits of data modulo n, then re-encode as a big-endian
// byte string of the same length as n.
func bits2octets(data []byte) []byte {
	z1 := bits2int(data)
	z2 := new(big.Int).Mod(z1, curveOrder)
	out := make([]byte, 32)
	b := z2.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// bits2int implements RFC 6979 section 2.3.2: interpret data as a big-endian
// integer, truncating to the bit length of n if data is longer.
func bits2int(data []byte) *big.Int {
	qlen := curveOrder.BitLen()
	blen := len(data) * 8
	z := new(big.Int).SetBytes(data)
	if blen > qlen {
		z.Rsh(z, uint(blen-qlen))
	}
	return z
}
