// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package hdwallet implements hierarchical deterministic key derivation and
// address encoding for secp256k1 wallets.
//
// The package covers the full pipeline from a BIP39 mnemonic phrase to a
// spendable address: mnemonic → seed → extended-key tree (BIP32) → keypair →
// address. Addresses can be rendered as raw hex, EIP-55 checksummed hex,
// Base58Check (P2PKH and P2SH-P2WPKH) or Bech32 (P2WPKH), and every encoding
// decodes back to the same underlying public-key hash.
//
// All derivations are pure functions of their inputs. Nothing in this package
// reads the clock, the network, or a random source after the initial entropy
// has been drawn, so the same mnemonic and path always produce the same keys
// and addresses.
package hdwallet

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"
)

// doubleSHA256 is the checksum hash used by Base58Check payloads
// (addresses, WIF keys, and serialized extended keys).
func doubleSHA256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// base58CheckEncode appends a 4-byte double-SHA256 checksum to the payload
// and encodes the result with the Bitcoin Base58 alphabet.
func base58CheckEncode(payload []byte) string {
	buf := make([]byte, 0, len(payload)+4)
	buf = append(buf, payload...)
	buf = append(buf, doubleSHA256(payload)[:4]...)
	return base58.Encode(buf)
}

// base58CheckDecode decodes a Base58Check string and verifies its trailing
// checksum, returning the payload without the checksum bytes. A checksum
// mismatch is reported as a *ChecksumMismatchError.
func base58CheckDecode(s string) ([]byte, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return nil, &InvalidEncodingError{Encoding: "base58", Reason: err.Error()}
	}
	if len(decoded) < 5 {
		return nil, &InvalidEncodingError{Encoding: "base58check", Reason: "payload too short"}
	}
	payload, got := decoded[:len(decoded)-4], decoded[len(decoded)-4:]
	want := doubleSHA256(payload)[:4]
	for i := range want {
		if want[i] != got[i] {
			return nil, &ChecksumMismatchError{}
		}
	}
	return payload, nil
}
