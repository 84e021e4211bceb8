// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// BIP39 seed derivation parameters: PBKDF2-HMAC-SHA512 with 2048 rounds
// producing a 64-byte seed.
const (
	seedPBKDF2Rounds = 2048
	seedLength       = 64
)

// Mnemonic is an entropy-backed seed phrase. The phrase rendering and the
// seed are both derived from the entropy on demand; a Mnemonic is never
// mutated after creation.
type Mnemonic struct {
	entropy []byte
}

// NewMnemonic draws fresh entropy from crypto/rand and returns a mnemonic of
// the requested word count. Valid word counts are 12, 15, 18, 21, or 24
// (128 to 256 bits of entropy).
func NewMnemonic(wordCount int) (*Mnemonic, error) {
	size, err := entropySize(wordCount)
	if err != nil {
		return nil, err
	}
	entropy := make([]byte, size)
	if _, err := rand.Read(entropy); err != nil {
		return nil, fmt.Errorf("could not read entropy: %w", err)
	}
	return &Mnemonic{entropy: entropy}, nil
}

// MnemonicFromEntropy wraps existing entropy bytes. The entropy length must
// be 16, 20, 24, 28, or 32 bytes.
func MnemonicFromEntropy(entropy []byte) (*Mnemonic, error) {
	switch len(entropy) {
	case 16, 20, 24, 28, 32:
	default:
		return nil, &InvalidMnemonicError{Reason: fmt.Sprintf("entropy must be 16-32 bytes in 4-byte steps, got %d", len(entropy))}
	}
	cp := make([]byte, len(entropy))
	copy(cp, entropy)
	return &Mnemonic{entropy: cp}, nil
}

// MnemonicFromPhrase recovers the entropy behind a phrase and validates its
// checksum. The phrase is NFKD-normalized before the words are looked up, so
// composed and decomposed Unicode spellings are equivalent.
func MnemonicFromPhrase(phrase string) (*Mnemonic, error) {
	words := strings.Fields(norm.NFKD.String(phrase))

	var entropyLen int
	switch len(words) {
	case 12, 15, 18, 21, 24:
		entropyLen = len(words) / 3 * 4
	default:
		return nil, &InvalidMnemonicError{Reason: fmt.Sprintf("phrase must have 12, 15, 18, 21, or 24 words, got %d", len(words))}
	}

	_, index := activeWordList()

	// Accumulate the 11-bit word indices into one big integer holding
	// ENT+CS bits: the entropy followed by the checksum bits.
	acc := new(big.Int)
	for _, word := range words {
		idx, ok := index[word]
		if !ok {
			return nil, &InvalidMnemonicError{Reason: fmt.Sprintf("unknown word %q", word)}
		}
		acc.Lsh(acc, 11)
		acc.Or(acc, big.NewInt(int64(idx)))
	}

	checksumBits := uint(len(words) / 3)
	entropy := new(big.Int).Rsh(acc, checksumBits).FillBytes(make([]byte, entropyLen))

	gotChecksum := new(big.Int).And(acc, big.NewInt(int64(1)<<checksumBits-1)).Uint64()
	hash := sha256.Sum256(entropy)
	wantChecksum := uint64(hash[0] >> (8 - checksumBits))
	if gotChecksum != wantChecksum {
		return nil, &InvalidMnemonicError{Reason: "checksum mismatch"}
	}

	return &Mnemonic{entropy: entropy}, nil
}

// Phrase renders the mnemonic as its word sequence: the entropy plus the
// leading SHA-256 checksum bits, read in 11-bit chunks indexing the active
// word list.
func (m *Mnemonic) Phrase() string {
	list, _ := activeWordList()

	checksumBits := uint(len(m.entropy) / 4)
	hash := sha256.Sum256(m.entropy)

	acc := new(big.Int).SetBytes(m.entropy)
	acc.Lsh(acc, checksumBits)
	acc.Or(acc, big.NewInt(int64(hash[0]>>(8-checksumBits))))

	words := make([]string, (len(m.entropy)*8+int(checksumBits))/11)
	mask := big.NewInt(wordListSize - 1)
	idx := new(big.Int)
	for i := len(words) - 1; i >= 0; i-- {
		idx.And(acc, mask)
		acc.Rsh(acc, 11)
		words[i] = list[idx.Int64()]
	}
	return strings.Join(words, " ")
}

// Entropy returns a copy of the raw entropy bytes.
func (m *Mnemonic) Entropy() []byte {
	cp := make([]byte, len(m.entropy))
	copy(cp, m.entropy)
	return cp
}

// Seed stretches the phrase into a 64-byte wallet seed with
// PBKDF2-HMAC-SHA512 over 2048 rounds, salted with "mnemonic" plus the
// NFKD-normalized passphrase. Identical inputs always yield identical seed
// bytes. The caller owns the returned slice and should zero it when done.
func (m *Mnemonic) Seed(passphrase string) []byte {
	password := []byte(norm.NFKD.String(m.Phrase()))
	salt := []byte("mnemonic" + norm.NFKD.String(passphrase))
	return pbkdf2.Key(password, salt, seedPBKDF2Rounds, seedLength, sha512.New)
}

// WordCount returns the number of words in the phrase.
func (m *Mnemonic) WordCount() int {
	return len(m.entropy) / 4 * 3
}

// Zero wipes the entropy from memory. The mnemonic must not be used
// afterwards.
func (m *Mnemonic) Zero() {
	for i := range m.entropy {
		m.entropy[i] = 0
	}
	m.entropy = nil
}

func (m *Mnemonic) String() string {
	return m.Phrase()
}

func entropySize(wordCount int) (int, error) {
	switch wordCount {
	case 12, 15, 18, 21, 24:
		return wordCount / 3 * 4, nil
	default:
		return 0, &InvalidMnemonicError{Reason: fmt.Sprintf("word count must be 12, 15, 18, 21, or 24, got %d", wordCount)}
	}
}
