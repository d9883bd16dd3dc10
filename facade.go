package secp256k1

// GetPublicKey derives the public key for priv (d*G), the top-level entry
// point mirroring the other free functions in this package; equivalent to
// priv.PublicKey().
func GetPublicKey(priv *PrivateKey) *PublicKey {
	return priv.PublicKey()
}

// SignSync is Sign under the name this package's design notes use for the
// synchronous entry point, kept alongside SignAsync.
func SignSync(priv *PrivateKey, msgHash []byte, opts *SignOptions) (*Signature, error) {
	return Sign(priv, msgHash, opts)
}
