package secp256k1

// GetSharedSecret computes the ECDH shared point a*B for a's scalar and B's
// affine point, returning its serialized bytes directly (not a hash of the
// point, unlike the libsecp256k1-module convention of hashing
// version-byte||x): see DESIGN.md for why this repo follows the plain
// point-bytes contract instead.
func GetSharedSecret(priv *PrivateKey, pub *PublicKey, compressed bool) ([]byte, error) {
	if priv == nil || pub == nil {
		return nil, ErrInvalidPublicKey
	}
	point := MultiplyVar(pub.a, priv.d).ToAffine()
	if point.Infinity {
		return nil, ErrPointAtInfinity
	}
	shared, err := NewPublicKeyFromAffine(point)
	if err != nil {
		return nil, err
	}
	if compressed {
		return shared.SerializeCompressed(), nil
	}
	return shared.SerializeUncompressed(), nil
}
