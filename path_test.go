// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"testing"

	"github.com/matryer/is"
)

// TestParseDerivationPath_Valid covers the accepted path notations.
func TestParseDerivationPath_Valid(t *testing.T) {
	is := is.New(t)

	for _, tc := range []struct {
		in   string
		want DerivationPath
	}{
		{"m", DerivationPath{}},
		{"m/0", DerivationPath{0}},
		{"m/0'", DerivationPath{HardenedKeyStart}},
		{"m/0h", DerivationPath{HardenedKeyStart}},
		{"m/0H", DerivationPath{HardenedKeyStart}},
		{"m/44'/60'/0'/0/0", DerivationPath{HardenedKeyStart + 44, HardenedKeyStart + 60, HardenedKeyStart, 0, 0}},
		{"m / 44' / 0", DerivationPath{HardenedKeyStart + 44, 0}},
		{"m/2147483647'", DerivationPath{HardenedKeyStart + 2147483647}},
	} {
		got, err := ParseDerivationPath(tc.in)
		is.NoErr(err)
		is.Equal(got, tc.want)
	}
}

// TestParseDerivationPath_Invalid rejects malformed paths.
func TestParseDerivationPath_Invalid(t *testing.T) {
	is := is.New(t)

	for _, in := range []string{
		"",
		"44'/60'",
		"n/0",
		"m/",
		"m/0/",
		"m//0",
		"m/abc",
		"m/-1",
		"m/2147483648'",
		"m/4294967296",
	} {
		_, err := ParseDerivationPath(in)
		is.True(err != nil)
	}
}

// TestDerivationPath_String renders the canonical form with apostrophes.
func TestDerivationPath_String(t *testing.T) {
	is := is.New(t)

	is.Equal(DerivationPath{}.String(), "m")
	is.Equal(NostrPath().String(), "m/44'/1237'/0'/0/0")
	is.Equal(DefaultBitcoinPath().String(), "m/44'/0'/0'/0/0")
	is.Equal(DefaultEthereumPath().String(), "m/44'/60'/0'/0/0")
	is.Equal(BIP49Path(CoinTypeBitcoin, 0, 0, 0).String(), "m/49'/0'/0'/0/0")
	is.Equal(BIP84Path(CoinTypeBitcoin, 0, 0, 0).String(), "m/84'/0'/0'/0/0")

	// Alternate hardened markers collapse to the canonical form.
	parsed, err := ParseDerivationPath("m/44h/0H/0'/0/0")
	is.NoErr(err)
	is.Equal(parsed.String(), "m/44'/0'/0'/0/0")
}

// TestDerivationPath_Extend appends without touching the receiver.
func TestDerivationPath_Extend(t *testing.T) {
	is := is.New(t)

	base, err := ParseDerivationPath("m/84'/0'/0'/0")
	is.NoErr(err)

	extended := base.Extend(5)
	is.Equal(extended.String(), "m/84'/0'/0'/0/5")
	is.Equal(base.String(), "m/84'/0'/0'/0")
}

// TestPathIterator walks sequential leaf indices.
func TestPathIterator(t *testing.T) {
	is := is.New(t)

	base, err := ParseDerivationPath("m/44'/60'/0'/0/0")
	is.NoErr(err)

	next := PathIterator(base)
	is.Equal(next().String(), "m/44'/60'/0'/0/0")
	is.Equal(next().String(), "m/44'/60'/0'/0/1")
	is.Equal(next().String(), "m/44'/60'/0'/0/2")
}
