// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/matryer/is"
)

// TestNewMaster_Vector1 walks the first reference test vector for
// hierarchical deterministic keys, checking the serialized private and
// public key at every level of the chain.
func TestNewMaster_Vector1(t *testing.T) {
	is := is.New(t)

	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	is.NoErr(err)

	key, err := NewMaster(seed)
	is.NoErr(err)

	steps := []struct {
		child uint32
		xprv  string
		xpub  string
	}{
		{
			0, // unused for the master
			"xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
			"xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
		},
		{
			HardenedKeyStart,
			"xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7",
			"xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw",
		},
		{
			1,
			"xprv9wTYmMFdV23N2TdNG573QoEsfRrWKQgWeibmLntzniatZvR9BmLnvSxqu53Kw1UmYPxLgboyZQaXwTCg8MSY3H2EU4pWcQDnRnrVA1xe8fs",
			"xpub6ASuArnXKPbfEwhqN6e3mwBcDTgzisQN1wXN9BJcM47sSikHjJf3UFHKkNAWbWMiGj7Wf5uMash7SyYq527Hqck2AxYysAA7xmALppuCkwQ",
		},
		{
			HardenedKeyStart + 2,
			"xprv9z4pot5VBttmtdRTWfWQmoH1taj2axGVzFqSb8C9xaxKymcFzXBDptWmT7FwuEzG3ryjH4ktypQSAewRiNMjANTtpgP4mLTj34bhnZX7UiM",
			"xpub6D4BDPcP2GT577Vvch3R8wDkScZWzQzMMUm3PWbmWvVJrZwQY4VUNgqFJPMM3No2dFDFGTsxxpG5uJh7n7epu4trkrX7x7DogT5Uv6fcLW5",
		},
		{
			2,
			"xprvA2JDeKCSNNZky6uBCviVfJSKyQ1mDYahRjijr5idH2WwLsEd4Hsb2Tyh8RfQMuPh7f7RtyzTtdrbdqqsunu5Mm3wDvUAKRHSC34sJ7in334",
			"xpub6FHa3pjLCk84BayeJxFW2SP4XRrFd1JYnxeLeU8EqN3vDfZmbqBqaGJAyiLjTAwm6ZLRQUMv1ZACTj37sR62cfN7fe5JnJ7dh8zL4fiyLHV",
		},
		{
			1000000000,
			"xprvA41z7zogVVwxVSgdKUHDy1SKmdb533PjDz7J6N6mV6uS3ze1ai8FHa8kmHScGpWmj4WggLyQjgPie1rFSruoUihUZREPSL39UNdE3BBDu76",
			"xpub6H1LXWLaKsWFhvm6RVpEL9P4KfRZSW7abD2ttkWP3SSQvnyA8FSVqNTEcYFgJS2UaFcxupHiYkro49S8yGasTvXEYBVPamhGW6cFJodrTHy",
		},
	}

	for depth, step := range steps {
		if depth > 0 {
			key, err = key.Child(step.child)
			is.NoErr(err)
		}
		is.Equal(key.String(), step.xprv)
		is.Equal(key.Neuter().String(), step.xpub)
		is.Equal(int(key.Depth()), depth)
	}
}

// TestExtendedKey_PublicDerivation verifies that deriving a normal child
// from a neutered key matches the neutered private derivation.
func TestExtendedKey_PublicDerivation(t *testing.T) {
	is := is.New(t)

	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	is.NoErr(err)
	master, err := NewMaster(seed)
	is.NoErr(err)

	path, err := ParseDerivationPath("m/0'/1/2'")
	is.NoErr(err)
	account, err := master.Derive(path)
	is.NoErr(err)

	fromPrivate, err := account.Child(2)
	is.NoErr(err)
	fromPublic, err := account.Neuter().Child(2)
	is.NoErr(err)

	is.Equal(fromPrivate.Neuter().String(), fromPublic.String())
	is.Equal(fromPublic.String(),
		"xpub6FHa3pjLCk84BayeJxFW2SP4XRrFd1JYnxeLeU8EqN3vDfZmbqBqaGJAyiLjTAwm6ZLRQUMv1ZACTj37sR62cfN7fe5JnJ7dh8zL4fiyLHV")
}

// TestExtendedKey_HardenedFromPublic fails with a typed derivation error.
func TestExtendedKey_HardenedFromPublic(t *testing.T) {
	is := is.New(t)

	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	is.NoErr(err)
	master, err := NewMaster(seed)
	is.NoErr(err)

	_, err = master.Neuter().Child(HardenedKeyStart)
	var derivErr *InvalidDerivationError
	is.True(errors.As(err, &derivErr))
	is.Equal(derivErr.Index, HardenedKeyStart)
}

// TestParseExtendedKey_RoundTrip parses the serialized form back into an
// equivalent key.
func TestParseExtendedKey_RoundTrip(t *testing.T) {
	is := is.New(t)

	const xprv = "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7"
	key, err := ParseExtendedKey(xprv)
	is.NoErr(err)
	is.True(key.IsPrivate())
	is.Equal(int(key.Depth()), 1)
	is.Equal(key.ChildIndex(), HardenedKeyStart)
	is.Equal(key.String(), xprv)

	// Parsed keys keep deriving.
	child, err := key.Child(1)
	is.NoErr(err)
	is.Equal(child.String(),
		"xprv9wTYmMFdV23N2TdNG573QoEsfRrWKQgWeibmLntzniatZvR9BmLnvSxqu53Kw1UmYPxLgboyZQaXwTCg8MSY3H2EU4pWcQDnRnrVA1xe8fs")

	const xpub = "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw"
	pub, err := ParseExtendedKey(xpub)
	is.NoErr(err)
	is.True(!pub.IsPrivate())
	is.Equal(pub.String(), xpub)
}

// TestParseExtendedKey_Corrupted detects a flipped character through the
// checksum.
func TestParseExtendedKey_Corrupted(t *testing.T) {
	is := is.New(t)

	const xprv = "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7"
	corrupted := xprv[:len(xprv)-1] + "8"
	_, err := ParseExtendedKey(corrupted)
	var checksumErr *ChecksumMismatchError
	is.True(errors.As(err, &checksumErr))

	_, err = ParseExtendedKey("not base58 at all!!")
	var encodingErr *InvalidEncodingError
	is.True(errors.As(err, &encodingErr))
}

// TestNewMaster_SeedLength enforces the 16..64 byte seed bounds.
func TestNewMaster_SeedLength(t *testing.T) {
	is := is.New(t)

	_, err := NewMaster(make([]byte, 15))
	is.True(err != nil)
	_, err = NewMaster(make([]byte, 65))
	is.True(err != nil)

	_, err = NewMaster(make([]byte, 16))
	is.NoErr(err)
	_, err = NewMaster(make([]byte, 64))
	is.NoErr(err)
}

// TestExtendedKey_Zero renders the key unusable.
func TestExtendedKey_Zero(t *testing.T) {
	is := is.New(t)

	master, err := NewMaster(make([]byte, 32))
	is.NoErr(err)
	master.Zero()
	is.True(!master.IsPrivate())
	is.Equal(len(master.ChainCode()), 0)
}
