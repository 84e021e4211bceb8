// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"encoding/hex"

	"github.com/nbd-wtf/go-nostr/nip19"
)

// NostrKeys is a nostr identity derived from a mnemonic per NIP-06.
type NostrKeys struct {
	PrivateHex string // 32-byte signing key, hex
	PublicHex  string // x-only public key, hex
	Nsec       string // bech32 private key
	Npub       string // bech32 public key
}

// DeriveNostrKeys derives the NIP-06 nostr identity (m/44'/1237'/0'/0/0)
// from a mnemonic phrase. The x-only public key drops the parity byte of
// the compressed point, as nostr's Schnorr signatures require.
func DeriveNostrKeys(phrase, passphrase string) (*NostrKeys, error) {
	mnemonic, err := MnemonicFromPhrase(phrase)
	if err != nil {
		return nil, err
	}
	defer mnemonic.Zero()

	seed := mnemonic.Seed(passphrase)
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()

	master, err := NewMaster(seed)
	if err != nil {
		return nil, err
	}
	defer master.Zero()

	key, err := master.Derive(NostrPath())
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	kp, err := key.KeyPair()
	if err != nil {
		return nil, err
	}
	defer kp.Zero()

	privHex := kp.PrivateHex()
	pubHex := hex.EncodeToString(kp.PublicBytes(true)[1:])

	nsec, err := nip19.EncodePrivateKey(privHex)
	if err != nil {
		return nil, &InvalidEncodingError{Encoding: "nsec", Reason: err.Error()}
	}
	npub, err := nip19.EncodePublicKey(pubHex)
	if err != nil {
		return nil, &InvalidEncodingError{Encoding: "npub", Reason: err.Error()}
	}

	return &NostrKeys{
		PrivateHex: privHex,
		PublicHex:  pubHex,
		Nsec:       nsec,
		Npub:       npub,
	}, nil
}
