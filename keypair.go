// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// wifVersion is the mainnet WIF prefix; wifCompressedFlag marks keys whose
// addresses use the compressed public point.
const (
	wifVersion        = 0x80
	wifCompressedFlag = 0x01
)

// KeyPair holds a secp256k1 keypair. A watch-only pair carries just the
// public point and can verify signatures but not create them.
type KeyPair struct {
	priv *btcec.PrivateKey
	pub  *btcec.PublicKey
}

// KeyPairFromBytes builds a keypair from a 32-byte private scalar. Zero and
// out-of-range scalars are rejected with *InvalidScalarError.
func KeyPairFromBytes(privKey []byte) (*KeyPair, error) {
	if len(privKey) != 32 {
		return nil, &InvalidScalarError{Reason: "private key must be 32 bytes"}
	}
	var scalar btcec.ModNScalar
	overflow := scalar.SetByteSlice(privKey)
	zero := scalar.IsZero()
	scalar.Zero()
	if overflow {
		return nil, &InvalidScalarError{Reason: "private key exceeds the curve order"}
	}
	if zero {
		return nil, &InvalidScalarError{Reason: "private key is zero"}
	}

	priv, pub := btcec.PrivKeyFromBytes(privKey)
	return &KeyPair{priv: priv, pub: pub}, nil
}

// PublicKeyFromBytes builds a watch-only keypair from a serialized public
// point (compressed or uncompressed). Points not on the curve are rejected
// with *InvalidPointError.
func PublicKeyFromBytes(pubKey []byte) (*KeyPair, error) {
	pub, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return nil, &InvalidPointError{Reason: err.Error()}
	}
	return &KeyPair{pub: pub}, nil
}

// Sign produces a DER-encoded ECDSA signature over a 32-byte digest using
// the deterministic nonce scheme of RFC 6979, so the same key and digest
// always yield the same signature.
func (kp *KeyPair) Sign(digest []byte) ([]byte, error) {
	if kp.priv == nil {
		return nil, &InvalidScalarError{Reason: "watch-only keypair cannot sign"}
	}
	if len(digest) != 32 {
		return nil, &InvalidEncodingError{Encoding: "digest", Reason: "must be 32 bytes"}
	}
	return ecdsa.Sign(kp.priv, digest).Serialize(), nil
}

// Verify reports whether a DER-encoded signature is valid for the digest
// under this keypair's public key. Malformed signatures simply fail.
func (kp *KeyPair) Verify(digest, sig []byte) bool {
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return parsed.Verify(digest, kp.pub)
}

// PublicKey returns the public point.
func (kp *KeyPair) PublicKey() *btcec.PublicKey { return kp.pub }

// PublicBytes serializes the public point, compressed (33 bytes) or
// uncompressed (65 bytes).
func (kp *KeyPair) PublicBytes(compressed bool) []byte {
	if compressed {
		return kp.pub.SerializeCompressed()
	}
	return kp.pub.SerializeUncompressed()
}

// CanSign reports whether the pair holds a private key.
func (kp *KeyPair) CanSign() bool { return kp.priv != nil }

// PrivateHex returns the private scalar as lowercase hex. Watch-only pairs
// return the empty string.
func (kp *KeyPair) PrivateHex() string {
	if kp.priv == nil {
		return ""
	}
	serialized := kp.priv.Serialize()
	out := hex.EncodeToString(serialized)
	for i := range serialized {
		serialized[i] = 0
	}
	return out
}

// Address encodes the public point in the given format.
func (kp *KeyPair) Address(format Format) (*Address, error) {
	return AddressFromPublicKey(kp.pub, format)
}

// WIF exports the private key in wallet import format with the compressed
// flag set, matching the compressed addresses this package derives.
func (kp *KeyPair) WIF() (string, error) {
	if kp.priv == nil {
		return "", &InvalidScalarError{Reason: "watch-only keypair has no private key"}
	}
	payload := make([]byte, 0, 34)
	payload = append(payload, wifVersion)
	payload = append(payload, kp.priv.Serialize()...)
	payload = append(payload, wifCompressedFlag)
	encoded := base58CheckEncode(payload)
	for i := 1; i < len(payload)-1; i++ {
		payload[i] = 0
	}
	return encoded, nil
}

// KeyPairFromWIF imports a wallet-import-format private key. Only
// compressed-flag mainnet keys are accepted.
func KeyPairFromWIF(wif string) (*KeyPair, error) {
	payload, err := base58CheckDecode(wif)
	if err != nil {
		return nil, err
	}
	if len(payload) != 34 || payload[0] != wifVersion || payload[33] != wifCompressedFlag {
		return nil, &InvalidEncodingError{Encoding: "WIF", Reason: "expected a compressed mainnet key"}
	}
	return KeyPairFromBytes(payload[1:33])
}

// Zero wipes the private key. The pair becomes watch-only.
func (kp *KeyPair) Zero() {
	if kp.priv != nil {
		kp.priv.Zero()
		kp.priv = nil
	}
}
