package secp256k1

import "errors"

// Sentinel errors returned across the package. Wrap with fmt.Errorf("...: %w", ...)
// where additional context helps; callers should compare with errors.Is.
var (
	ErrInvalidPrivateKey    = errors.New("secp256k1: invalid private key")
	ErrInvalidPublicKey     = errors.New("secp256k1: invalid public key")
	ErrInvalidSignature     = errors.New("secp256k1: invalid signature")
	ErrPointNotOnCurve      = errors.New("secp256k1: point not on curve")
	ErrPointAtInfinity      = errors.New("secp256k1: point at infinity")
	ErrNonceExhausted       = errors.New("secp256k1: nonce generation exhausted candidate space")
	ErrSignatureHighS       = errors.New("secp256k1: signature has high S value (non-canonical)")
	ErrUnsupportedRecoverID = errors.New("secp256k1: recovery id 2 or 3 unsupported (x >= n case)")
	ErrInvalidDER           = errors.New("secp256k1: malformed DER signature")
	ErrInvalidLength        = errors.New("secp256k1: input has invalid length")
	ErrZeroScalar           = errors.New("secp256k1: scalar is zero")
)
