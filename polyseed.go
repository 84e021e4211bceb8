// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"fmt"

	polyseed "github.com/complex-gh/polyseed_go"
)

// polyseedEntropyBytes is the 150-bit entropy payload a polyseed phrase
// carries.
const polyseedEntropyBytes = 19

// PolyseedPhrase encodes 19 bytes of entropy as a 16-word Monero-style
// polyseed phrase. Polyseed is a separate phrase format from BIP39: its
// phrases are not interchangeable with the 12-24 word mnemonics produced by
// Mnemonic, and it only exists in a 16-word length.
func PolyseedPhrase(entropy []byte) (string, error) {
	if len(entropy) != polyseedEntropyBytes {
		return "", &InvalidMnemonicError{Reason: fmt.Sprintf("polyseed entropy must be %d bytes, got %d", polyseedEntropyBytes, len(entropy))}
	}

	seed, err := polyseed.CreateFromBytes(entropy, 0)
	if err != nil {
		return "", fmt.Errorf("could not create polyseed: %w", err)
	}
	defer seed.Free()

	lang := polyseed.GetLang(0)
	if lang == nil {
		return "", fmt.Errorf("could not get polyseed language")
	}

	return seed.Encode(lang, polyseed.CoinMonero), nil
}
