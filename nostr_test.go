// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

// TestDeriveNostrKeys_KnownVector checks the published reference vector
// for mnemonic-based nostr key derivation.
func TestDeriveNostrKeys_KnownVector(t *testing.T) {
	is := is.New(t)

	const phrase = "leader monkey parrot ring guide accident before fence cannon height naive bean"

	keys, err := DeriveNostrKeys(phrase, "")
	is.NoErr(err)
	is.Equal(keys.PrivateHex, "7f7ff03d123792d6ac594bfa67bf6d0c0ab55b6b1fdb6249303fe861f1ccba9a")
	is.Equal(keys.PublicHex, "17162c921dc4d2518f9a101db33695df1afb56ab82f5ff3e5da6eec3ca5cd917")
	is.Equal(keys.Npub, "npub1zutzeysacnf9rru6zqwmxd54mud0k44tst6l70ja5mhv8jjumytsd2x7nu")
	is.Equal(keys.Nsec, "nsec10allq0gjx7fddtzef0ax00mdps9t2kmtrldkyjfs8l5xruwvh2dq0lhhkp")
}

// TestDeriveNostrKeys_Passphrase yields a different identity.
func TestDeriveNostrKeys_Passphrase(t *testing.T) {
	is := is.New(t)

	plain, err := DeriveNostrKeys(testPhrase, "")
	is.NoErr(err)
	withPass, err := DeriveNostrKeys(testPhrase, "extra words")
	is.NoErr(err)

	is.True(plain.Npub != withPass.Npub)
	is.True(strings.HasPrefix(withPass.Npub, "npub1"))
	is.True(strings.HasPrefix(withPass.Nsec, "nsec1"))
}

// TestDeriveNostrKeys_InvalidMnemonic propagates the mnemonic error.
func TestDeriveNostrKeys_InvalidMnemonic(t *testing.T) {
	is := is.New(t)

	_, err := DeriveNostrKeys("definitely not a seed phrase", "")
	var invalid *InvalidMnemonicError
	is.True(errors.As(err, &invalid))
}
