// Command secp256k1ctl exercises the secp256k1 package's facade over hex
// stdio, for manual testing and as a worked example of the library's API.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	secp256k1 "go.vela.dev/secp256k1"
)

// hexBytesValue is a pflag.Value for flags that take a hex-encoded byte
// string, so malformed hex is rejected at flag-parsing time instead of
// inside the command body.
type hexBytesValue struct {
	bytes *[]byte
}

func (h hexBytesValue) String() string {
	if h.bytes == nil || *h.bytes == nil {
		return ""
	}
	return hex.EncodeToString(*h.bytes)
}

func (h hexBytesValue) Set(s string) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	*h.bytes = b
	return nil
}

func (h hexBytesValue) Type() string { return "hex" }

func hexBytesVar(fs *pflag.FlagSet, p *[]byte, name, usage string) {
	fs.Var(hexBytesValue{bytes: p}, name, usage)
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "secp256k1ctl",
		Short: "secp256k1 curve operations over hex stdio",
	}
	root.AddCommand(keygenCmd(), signCmd(), verifyCmd(), schnorrCmd(), ecdhCmd())
	return root
}

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "generate a random private/public key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf [32]byte
			for {
				if _, err := rand.Read(buf[:]); err != nil {
					return err
				}
				if priv, err := secp256k1.NewPrivateKey(buf[:]); err == nil {
					pub := secp256k1.GetPublicKey(priv)
					fmt.Printf("private: %s\n", priv.Hex())
					fmt.Printf("public:  %s\n", pub.Hex())
					return nil
				}
			}
		},
	}
}

func signCmd() *cobra.Command {
	var privHex, msgHex string
	var recover bool
	c := &cobra.Command{
		Use:   "sign",
		Short: "sign a 32-byte hex message hash with a hex private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := secp256k1.PrivateKeyFromHex(privHex)
			if err != nil {
				return err
			}
			msg, err := hex.DecodeString(msgHex)
			if err != nil {
				return err
			}
			sig, err := secp256k1.Sign(priv, msg, &secp256k1.SignOptions{Recovered: recover})
			if err != nil {
				return err
			}
			fmt.Printf("signature: %s\n", hex.EncodeToString(sig.SerializeCompact()))
			fmt.Printf("der:       %s\n", hex.EncodeToString(sig.SerializeDER()))
			if recover {
				fmt.Printf("recid:     %d\n", sig.RecoveryID)
			}
			return nil
		},
	}
	c.Flags().StringVar(&privHex, "priv", "", "hex-encoded 32-byte private key")
	c.Flags().StringVar(&msgHex, "msg", "", "hex-encoded 32-byte message hash")
	c.Flags().BoolVar(&recover, "recover", false, "compute a recovery id")
	return c
}

func verifyCmd() *cobra.Command {
	var pubHex string
	var msg, sigBytes []byte
	c := &cobra.Command{
		Use:   "verify",
		Short: "verify a compact hex signature against a hex public key and message hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := secp256k1.PublicKeyFromHex(pubHex)
			if err != nil {
				return err
			}
			sig, err := secp256k1.ParseCompactSignature(sigBytes)
			if err != nil {
				return err
			}
			ok := secp256k1.Verify(pub, msg, sig, nil)
			fmt.Println(ok)
			if !ok {
				os.Exit(1)
			}
			return nil
		},
	}
	c.Flags().StringVar(&pubHex, "pub", "", "hex-encoded public key")
	hexBytesVar(c.Flags(), &msg, "msg", "hex-encoded 32-byte message hash")
	hexBytesVar(c.Flags(), &sigBytes, "sig", "hex-encoded 64-byte compact signature")
	return c
}

func schnorrCmd() *cobra.Command {
	var privHex, msgHex, sigHex, pubHex string
	var verify bool
	c := &cobra.Command{
		Use:   "schnorr",
		Short: "sign or verify a BIP-340 Schnorr signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := hex.DecodeString(msgHex)
			if err != nil {
				return err
			}
			if verify {
				pub, err := secp256k1.XOnlyPublicKeyFromBytes(mustHexBytes(pubHex))
				if err != nil {
					return err
				}
				sigBytes, err := hex.DecodeString(sigHex)
				if err != nil {
					return err
				}
				sig, err := secp256k1.ParseSchnorrSignature(sigBytes)
				if err != nil {
					return err
				}
				ok := secp256k1.SchnorrVerify(pub, msg, sig)
				fmt.Println(ok)
				if !ok {
					os.Exit(1)
				}
				return nil
			}
			priv, err := secp256k1.PrivateKeyFromHex(privHex)
			if err != nil {
				return err
			}
			kp := secp256k1.NewKeyPair(priv)
			sig, err := secp256k1.SchnorrSign(kp, msg, nil)
			if err != nil {
				return err
			}
			fmt.Printf("signature: %s\n", hex.EncodeToString(sig.Bytes()))
			fmt.Printf("xonly:     %s\n", kp.XOnly.Hex())
			return nil
		},
	}
	c.Flags().StringVar(&privHex, "priv", "", "hex-encoded 32-byte private key")
	c.Flags().StringVar(&pubHex, "pub", "", "hex-encoded 32-byte x-only public key")
	c.Flags().StringVar(&msgHex, "msg", "", "hex-encoded 32-byte message")
	c.Flags().StringVar(&sigHex, "sig", "", "hex-encoded 64-byte Schnorr signature")
	c.Flags().BoolVar(&verify, "verify", false, "verify instead of sign")
	return c
}

func ecdhCmd() *cobra.Command {
	var privHex, pubHex string
	var uncompressed bool
	c := &cobra.Command{
		Use:   "ecdh",
		Short: "compute an ECDH shared point",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := secp256k1.PrivateKeyFromHex(privHex)
			if err != nil {
				return err
			}
			pub, err := secp256k1.PublicKeyFromHex(pubHex)
			if err != nil {
				return err
			}
			shared, err := secp256k1.GetSharedSecret(priv, pub, !uncompressed)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(shared))
			return nil
		},
	}
	c.Flags().StringVar(&privHex, "priv", "", "hex-encoded 32-byte private key")
	c.Flags().StringVar(&pubHex, "pub", "", "hex-encoded public key")
	c.Flags().BoolVar(&uncompressed, "uncompressed", false, "emit the uncompressed point encoding")
	return c
}

func mustHexBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}
