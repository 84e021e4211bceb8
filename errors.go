// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import "fmt"

// InvalidMnemonicError is returned when a phrase cannot be interpreted as a
// valid mnemonic: wrong word count, a word outside the active word list, or
// a failed checksum.
type InvalidMnemonicError struct {
	Reason string
}

func (e *InvalidMnemonicError) Error() string {
	return "invalid mnemonic: " + e.Reason
}

// InvalidDerivationError is returned when a child key cannot be derived,
// most commonly when hardened derivation is requested on a public-only
// (watch) extended key.
type InvalidDerivationError struct {
	Index  uint32
	Reason string
}

func (e *InvalidDerivationError) Error() string {
	return fmt.Sprintf("cannot derive child %d: %s", e.Index, e.Reason)
}

// InvalidScalarError is returned when private key material is not a valid
// secp256k1 scalar (zero, or not less than the curve order).
type InvalidScalarError struct {
	Reason string
}

func (e *InvalidScalarError) Error() string {
	return "invalid private scalar: " + e.Reason
}

// InvalidPointError is returned when public key material does not describe a
// point on the secp256k1 curve.
type InvalidPointError struct {
	Reason string
}

func (e *InvalidPointError) Error() string {
	return "invalid public key point: " + e.Reason
}

// ChecksumMismatchError is returned when an encoded address, WIF key, or
// extended key carries a checksum that does not match its payload.
type ChecksumMismatchError struct {
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	if e.Expected == "" && e.Actual == "" {
		return "checksum mismatch"
	}
	return fmt.Sprintf("checksum mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// UnsupportedFormatError is returned when an unknown address format is
// requested or encountered while decoding.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return "unsupported address format: " + e.Format
}

// InvalidEncodingError is returned when a string is not valid in its claimed
// encoding (bad Base58 alphabet, malformed hex, truncated payload) before
// any checksum could even be verified.
type InvalidEncodingError struct {
	Encoding string
	Reason   string
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("invalid %s encoding: %s", e.Encoding, e.Reason)
}
