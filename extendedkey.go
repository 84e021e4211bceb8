// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
)

// masterHMACKey is the fixed HMAC key that turns a seed into the master
// extended key.
var masterHMACKey = []byte("Bitcoin seed")

// Version bytes for serialized extended keys (mainnet xprv/xpub).
var (
	extendedPrivateVersion = [4]byte{0x04, 0x88, 0xad, 0xe4}
	extendedPublicVersion  = [4]byte{0x04, 0x88, 0xb2, 0x1e}
)

const (
	// maxDerivationDepth is the deepest child the 1-byte depth field can
	// describe.
	maxDerivationDepth = 255

	// minSeedBytes and maxSeedBytes bound the master seed length per BIP32.
	minSeedBytes = 16
	maxSeedBytes = 64

	serializedKeyLen = 78
)

// ExtendedKey is a BIP32 extended key: key material plus a chain code and
// the key's position in the derivation tree. An extended key is either
// private (can derive hardened children and sign) or public-only (watch
// keys, normal derivation only). Keys are immutable; derivation returns new
// keys.
type ExtendedKey struct {
	depth      uint8
	parentFP   [4]byte
	childIndex uint32
	chainCode  []byte // 32 bytes
	key        []byte // 32-byte private scalar or 33-byte compressed point
	isPrivate  bool
}

// NewMaster derives the root extended key from a seed by HMAC-SHA512 keyed
// with "Bitcoin seed": the left half becomes the private key, the right
// half the chain code. The seed must be between 16 and 64 bytes; Mnemonic
// seeds are 64.
func NewMaster(seed []byte) (*ExtendedKey, error) {
	if len(seed) < minSeedBytes || len(seed) > maxSeedBytes {
		return nil, fmt.Errorf("seed must be between %d and %d bytes, got %d", minSeedBytes, maxSeedBytes, len(seed))
	}

	mac := hmac.New(sha512.New, masterHMACKey)
	mac.Write(seed)
	sum := mac.Sum(nil)

	key, chainCode := sum[:32], sum[32:]
	var scalar btcec.ModNScalar
	overflow := scalar.SetByteSlice(key)
	zero := scalar.IsZero()
	scalar.Zero()
	if overflow || zero {
		return nil, &InvalidScalarError{Reason: "seed produces an unusable master key"}
	}

	return &ExtendedKey{
		chainCode: chainCode,
		key:       key,
		isPrivate: true,
	}, nil
}

// Child derives the child key at the given index. Indices at or above
// HardenedKeyStart are hardened and require the private key; requesting one
// on a public-only key fails with *InvalidDerivationError.
//
// In the rare case BIP32 defines as invalid (derived offset not a usable
// scalar, or a zero child key) the derivation proceeds with the next index,
// as the standard specifies. The retry never silently crosses the hardened
// boundary or wraps around.
func (k *ExtendedKey) Child(index uint32) (*ExtendedKey, error) {
	if k.depth == maxDerivationDepth {
		return nil, &InvalidDerivationError{Index: index, Reason: "maximum derivation depth reached"}
	}

	hardened := index >= HardenedKeyStart
	if hardened && !k.isPrivate {
		return nil, &InvalidDerivationError{Index: index, Reason: "hardened derivation requires a private key"}
	}

	for {
		child, err := k.childOnce(index, hardened)
		if err == nil {
			return child, nil
		}
		if !isRetryableChild(err) {
			return nil, err
		}
		// BIP32: an invalid child key means "proceed with the next index".
		if index == HardenedKeyStart-1 || index == math.MaxUint32 {
			return nil, &InvalidDerivationError{Index: index, Reason: "no valid child before index boundary"}
		}
		index++
	}
}

// errInvalidChildKey marks the BIP32 invalid-key edge case internally so
// Child can retry with the next index.
type errInvalidChildKey struct{}

func (errInvalidChildKey) Error() string { return "derived child key is invalid" }

func isRetryableChild(err error) bool {
	_, ok := err.(errInvalidChildKey)
	return ok
}

func (k *ExtendedKey) childOnce(index uint32, hardened bool) (*ExtendedKey, error) {
	// Data = 0x00 || ser256(kpar) || ser32(i) for hardened children,
	// serP(Kpar) || ser32(i) otherwise.
	data := make([]byte, 0, 37)
	if hardened {
		data = append(data, 0x00)
		data = append(data, k.key...)
	} else {
		data = append(data, k.publicKeyBytes()...)
	}
	data = binary.BigEndian.AppendUint32(data, index)

	mac := hmac.New(sha512.New, k.chainCode)
	mac.Write(data)
	sum := mac.Sum(nil)
	il, chainCode := sum[:32], sum[32:]

	var offset btcec.ModNScalar
	if overflow := offset.SetByteSlice(il); overflow {
		return nil, errInvalidChildKey{}
	}

	var childKey []byte
	if k.isPrivate {
		// ki = parse256(IL) + kpar (mod n)
		var parent btcec.ModNScalar
		parent.SetByteSlice(k.key)
		offset.Add(&parent)
		parent.Zero()
		if offset.IsZero() {
			return nil, errInvalidChildKey{}
		}
		keyBytes := offset.Bytes()
		childKey = keyBytes[:]
	} else {
		// Ki = parse256(IL)*G + Kpar
		if offset.IsZero() {
			return nil, errInvalidChildKey{}
		}
		parent, err := btcec.ParsePubKey(k.key)
		if err != nil {
			return nil, &InvalidPointError{Reason: err.Error()}
		}

		var offsetJ, parentJ, childJ btcec.JacobianPoint
		btcec.ScalarBaseMultNonConst(&offset, &offsetJ)
		parent.AsJacobian(&parentJ)
		btcec.AddNonConst(&offsetJ, &parentJ, &childJ)
		if childJ.Z.IsZero() {
			return nil, errInvalidChildKey{}
		}
		childJ.ToAffine()
		childKey = btcec.NewPublicKey(&childJ.X, &childJ.Y).SerializeCompressed()
	}
	offset.Zero()

	var parentFP [4]byte
	copy(parentFP[:], btcutil.Hash160(k.publicKeyBytes())[:4])

	return &ExtendedKey{
		depth:      k.depth + 1,
		parentFP:   parentFP,
		childIndex: index,
		chainCode:  chainCode,
		key:        childKey,
		isPrivate:  k.isPrivate,
	}, nil
}

// Derive walks the full path from this key, one child at a time.
func (k *ExtendedKey) Derive(path DerivationPath) (*ExtendedKey, error) {
	current := k
	for _, index := range path {
		child, err := current.Child(index)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// Neuter returns the public-only counterpart of this key, suitable for
// watch-only address derivation. Neutering a public key returns a copy.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	neutered := &ExtendedKey{
		depth:      k.depth,
		parentFP:   k.parentFP,
		childIndex: k.childIndex,
		chainCode:  make([]byte, len(k.chainCode)),
		key:        k.publicKeyBytes(),
		isPrivate:  false,
	}
	copy(neutered.chainCode, k.chainCode)
	return neutered
}

// KeyPair extracts the signing keypair held by this extended key. For
// public-only keys the result is a watch-only keypair that can verify but
// not sign.
func (k *ExtendedKey) KeyPair() (*KeyPair, error) {
	if k.isPrivate {
		return KeyPairFromBytes(k.key)
	}
	return PublicKeyFromBytes(k.key)
}

// Address encodes the key's public point in the given format.
func (k *ExtendedKey) Address(format Format) (*Address, error) {
	pub, err := btcec.ParsePubKey(k.publicKeyBytes())
	if err != nil {
		return nil, &InvalidPointError{Reason: err.Error()}
	}
	return AddressFromPublicKey(pub, format)
}

// IsPrivate reports whether this key holds private key material.
func (k *ExtendedKey) IsPrivate() bool { return k.isPrivate }

// Depth returns the number of derivation steps from the master key.
func (k *ExtendedKey) Depth() uint8 { return k.depth }

// ChildIndex returns the index this key was derived at; 0 for the master.
func (k *ExtendedKey) ChildIndex() uint32 { return k.childIndex }

// ParentFingerprint returns the first four bytes of the parent key's
// hash160; zero for the master.
func (k *ExtendedKey) ParentFingerprint() [4]byte { return k.parentFP }

// ChainCode returns a copy of the 32-byte chain code.
func (k *ExtendedKey) ChainCode() []byte {
	cp := make([]byte, len(k.chainCode))
	copy(cp, k.chainCode)
	return cp
}

// publicKeyBytes returns the compressed public point for this key,
// computing it from the private scalar when needed.
func (k *ExtendedKey) publicKeyBytes() []byte {
	if !k.isPrivate {
		cp := make([]byte, len(k.key))
		copy(cp, k.key)
		return cp
	}
	priv, pub := btcec.PrivKeyFromBytes(k.key)
	defer priv.Zero()
	return pub.SerializeCompressed()
}

// String serializes the key in the standard 78-byte extended-key layout
// (version, depth, parent fingerprint, child index, chain code, key
// material) wrapped in Base58Check, yielding the familiar xprv/xpub form.
func (k *ExtendedKey) String() string {
	payload := make([]byte, 0, serializedKeyLen)
	if k.isPrivate {
		payload = append(payload, extendedPrivateVersion[:]...)
	} else {
		payload = append(payload, extendedPublicVersion[:]...)
	}
	payload = append(payload, k.depth)
	payload = append(payload, k.parentFP[:]...)
	payload = binary.BigEndian.AppendUint32(payload, k.childIndex)
	payload = append(payload, k.chainCode...)
	if k.isPrivate {
		payload = append(payload, 0x00)
		payload = append(payload, k.key...)
	} else {
		payload = append(payload, k.key...)
	}
	return base58CheckEncode(payload)
}

// ParseExtendedKey decodes a serialized xprv/xpub string, verifying its
// checksum and validating the embedded key material.
func ParseExtendedKey(s string) (*ExtendedKey, error) {
	payload, err := base58CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if len(payload) != serializedKeyLen {
		return nil, &InvalidEncodingError{Encoding: "extended key", Reason: fmt.Sprintf("expected %d payload bytes, got %d", serializedKeyLen, len(payload))}
	}

	var version [4]byte
	copy(version[:], payload[:4])

	key := &ExtendedKey{
		depth:      payload[4],
		childIndex: binary.BigEndian.Uint32(payload[9:13]),
		chainCode:  append([]byte(nil), payload[13:45]...),
	}
	copy(key.parentFP[:], payload[5:9])
	keyData := payload[45:78]

	switch version {
	case extendedPrivateVersion:
		if keyData[0] != 0x00 {
			return nil, &InvalidEncodingError{Encoding: "extended key", Reason: "private key data must begin with 0x00"}
		}
		var scalar btcec.ModNScalar
		overflow := scalar.SetByteSlice(keyData[1:])
		zero := scalar.IsZero()
		scalar.Zero()
		if overflow || zero {
			return nil, &InvalidScalarError{Reason: "serialized private key out of range"}
		}
		key.key = append([]byte(nil), keyData[1:]...)
		key.isPrivate = true
	case extendedPublicVersion:
		if _, err := btcec.ParsePubKey(keyData); err != nil {
			return nil, &InvalidPointError{Reason: err.Error()}
		}
		key.key = append([]byte(nil), keyData...)
	default:
		return nil, &InvalidEncodingError{Encoding: "extended key", Reason: fmt.Sprintf("unknown version bytes %x", version)}
	}

	return key, nil
}

// Zero wipes the key material and chain code. The key must not be used
// afterwards.
func (k *ExtendedKey) Zero() {
	for i := range k.key {
		k.key[i] = 0
	}
	for i := range k.chainCode {
		k.chainCode[i] = 0
	}
	k.key = nil
	k.chainCode = nil
	k.isPrivate = false
}
