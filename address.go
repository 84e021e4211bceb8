// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
)

// Format selects how a public key is rendered as an address.
type Format int

const (
	// FormatHex is the raw Ethereum address: 0x plus the lowercase hex of
	// the last 20 bytes of the Keccak-256 public key hash.
	FormatHex Format = iota

	// FormatChecksumHex is the EIP-55 mixed-case form of FormatHex.
	FormatChecksumHex

	// FormatP2PKH is the legacy Base58Check pay-to-pubkey-hash address.
	FormatP2PKH

	// FormatP2SH is the nested-segwit P2SH-P2WPKH Base58Check address.
	FormatP2SH

	// FormatBech32 is the native-segwit witness v0 P2WPKH address.
	FormatBech32
)

var formatNames = map[Format]string{
	FormatHex:         "hex",
	FormatChecksumHex: "checksum-hex",
	FormatP2PKH:       "p2pkh",
	FormatP2SH:        "p2sh",
	FormatBech32:      "bech32",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat maps a format name, as accepted on the command line, to its
// Format value.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, &UnsupportedFormatError{Format: name}
}

// Address is an encoded public key hash together with the format that
// produced it.
type Address struct {
	hash    [20]byte
	format  Format
	encoded string
}

// AddressFromPublicKey encodes a public key in the given format. Ethereum
// formats hash the uncompressed point with Keccak-256; Bitcoin formats
// hash160 the compressed point.
func AddressFromPublicKey(pub *btcec.PublicKey, format Format) (*Address, error) {
	var hash [20]byte
	switch format {
	case FormatHex, FormatChecksumHex:
		// Keccak-256 over the 64-byte point, skipping the 0x04 prefix.
		uncompressed := pub.SerializeUncompressed()
		copy(hash[:], crypto.Keccak256(uncompressed[1:])[12:])
	case FormatP2PKH, FormatBech32:
		copy(hash[:], btcutil.Hash160(pub.SerializeCompressed()))
	case FormatP2SH:
		// Hash160 of the P2WPKH redeem script 0x0014 || hash160(pubkey).
		keyHash := btcutil.Hash160(pub.SerializeCompressed())
		redeem := append([]byte{0x00, 0x14}, keyHash...)
		copy(hash[:], btcutil.Hash160(redeem))
	default:
		return nil, &UnsupportedFormatError{Format: format.String()}
	}

	encoded, err := encodeHash(hash, format)
	if err != nil {
		return nil, err
	}
	return &Address{hash: hash, format: format, encoded: encoded}, nil
}

func encodeHash(hash [20]byte, format Format) (string, error) {
	switch format {
	case FormatHex:
		return "0x" + hex.EncodeToString(hash[:]), nil
	case FormatChecksumHex:
		return checksumHex(hash), nil
	case FormatP2PKH:
		return base58CheckEncode(append([]byte{chaincfg.MainNetParams.PubKeyHashAddrID}, hash[:]...)), nil
	case FormatP2SH:
		return base58CheckEncode(append([]byte{chaincfg.MainNetParams.ScriptHashAddrID}, hash[:]...)), nil
	case FormatBech32:
		converted, err := bech32.ConvertBits(hash[:], 8, 5, true)
		if err != nil {
			return "", &InvalidEncodingError{Encoding: "bech32", Reason: err.Error()}
		}
		encoded, err := bech32.Encode(chaincfg.MainNetParams.Bech32HRPSegwit, append([]byte{0x00}, converted...))
		if err != nil {
			return "", &InvalidEncodingError{Encoding: "bech32", Reason: err.Error()}
		}
		return encoded, nil
	default:
		return "", &UnsupportedFormatError{Format: format.String()}
	}
}

// checksumHex applies the EIP-55 checksum: each hex nibble is uppercased
// when the corresponding nibble of Keccak-256(lowercase address) is 8 or
// higher.
func checksumHex(hash [20]byte) string {
	lower := hex.EncodeToString(hash[:])
	digest := crypto.Keccak256([]byte(lower))

	out := make([]byte, len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if c >= 'a' && c <= 'f' {
			nibble := digest[i/2]
			if i%2 == 0 {
				nibble >>= 4
			}
			if nibble&0x0f >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[i] = c
	}
	return "0x" + string(out)
}

// String returns the encoded address.
func (a *Address) String() string { return a.encoded }

// Format returns the format this address was encoded with.
func (a *Address) Format() Format { return a.format }

// Hash returns the underlying 20-byte public key hash.
func (a *Address) Hash() [20]byte { return a.hash }

// DecodeAddress parses an encoded address back to its hash, detecting the
// format from the string itself. Checksum failures surface as
// *ChecksumMismatchError; structural problems as *InvalidEncodingError.
func DecodeAddress(s string) (*Address, error) {
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		return decodeHexAddress(s)
	case strings.HasPrefix(strings.ToLower(s), chaincfg.MainNetParams.Bech32HRPSegwit+"1"):
		return decodeBech32Address(s)
	default:
		return decodeBase58Address(s)
	}
}

func decodeHexAddress(s string) (*Address, error) {
	body := s[2:]
	if len(body) != 40 {
		return nil, &InvalidEncodingError{Encoding: "hex address", Reason: "expected 40 hex characters"}
	}
	raw, err := hex.DecodeString(body)
	if err != nil {
		return nil, &InvalidEncodingError{Encoding: "hex address", Reason: err.Error()}
	}
	var hash [20]byte
	copy(hash[:], raw)

	// A mixed-case body claims an EIP-55 checksum, so validate it.
	// Single-case bodies carry no checksum at all.
	format := FormatHex
	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		format = FormatChecksumHex
		expected := checksumHex(hash)
		// Compare bodies only so the prefix casing does not matter.
		if body != expected[2:] {
			return nil, &ChecksumMismatchError{Expected: expected, Actual: s}
		}
	}

	encoded, err := encodeHash(hash, format)
	if err != nil {
		return nil, err
	}
	return &Address{hash: hash, format: format, encoded: encoded}, nil
}

func decodeBech32Address(s string) (*Address, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		var checksumErr bech32.ErrInvalidChecksum
		if errors.As(err, &checksumErr) {
			return nil, &ChecksumMismatchError{Expected: checksumErr.Expected, Actual: checksumErr.Actual}
		}
		return nil, &InvalidEncodingError{Encoding: "bech32", Reason: err.Error()}
	}
	if hrp != chaincfg.MainNetParams.Bech32HRPSegwit {
		return nil, &InvalidEncodingError{Encoding: "bech32", Reason: fmt.Sprintf("unexpected prefix %q", hrp)}
	}
	if len(data) == 0 || data[0] != 0x00 {
		return nil, &InvalidEncodingError{Encoding: "bech32", Reason: "expected witness version 0"}
	}
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, &InvalidEncodingError{Encoding: "bech32", Reason: err.Error()}
	}
	if len(program) != 20 {
		return nil, &InvalidEncodingError{Encoding: "bech32", Reason: "expected a 20-byte witness program"}
	}

	var hash [20]byte
	copy(hash[:], program)
	return &Address{hash: hash, format: FormatBech32, encoded: strings.ToLower(s)}, nil
}

func decodeBase58Address(s string) (*Address, error) {
	payload, err := base58CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if len(payload) != 21 {
		return nil, &InvalidEncodingError{Encoding: "base58check", Reason: "expected a 21-byte payload"}
	}

	var format Format
	switch payload[0] {
	case chaincfg.MainNetParams.PubKeyHashAddrID:
		format = FormatP2PKH
	case chaincfg.MainNetParams.ScriptHashAddrID:
		format = FormatP2SH
	default:
		return nil, &InvalidEncodingError{Encoding: "base58check", Reason: fmt.Sprintf("unknown version byte 0x%02x", payload[0])}
	}

	var hash [20]byte
	copy(hash[:], payload[1:])
	return &Address{hash: hash, format: format, encoded: s}, nil
}

// ValidateChecksumHex reports whether a 0x-prefixed hex address carries a
// correct EIP-55 checksum. All-lowercase and all-uppercase bodies carry no
// checksum and are accepted.
func ValidateChecksumHex(s string) error {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return &InvalidEncodingError{Encoding: "hex address", Reason: "missing 0x prefix"}
	}
	body := s[2:]
	if len(body) != 40 {
		return &InvalidEncodingError{Encoding: "hex address", Reason: "expected 40 hex characters"}
	}
	raw, err := hex.DecodeString(body)
	if err != nil {
		return &InvalidEncodingError{Encoding: "hex address", Reason: err.Error()}
	}
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return nil
	}
	var hash [20]byte
	copy(hash[:], raw)
	expected := checksumHex(hash)
	if body != expected[2:] {
		return &ChecksumMismatchError{Expected: expected, Actual: s}
	}
	return nil
}
