// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// wordListSize is the number of words every BIP39 word list carries; each
// word encodes 11 bits of the entropy+checksum stream.
const wordListSize = 2048

var (
	wordMu    sync.RWMutex
	wordList  = wordlists.English
	wordIndex = buildWordIndex(wordlists.English)
)

func buildWordIndex(list []string) map[string]int {
	index := make(map[string]int, len(list))
	for i, word := range list {
		index[word] = i
	}
	return index
}

// SetWordList replaces the active word list. The list is installed once,
// typically at startup before any phrases are parsed or generated; phrases
// produced under one list do not validate under another.
func SetWordList(list []string) error {
	if len(list) != wordListSize {
		return &InvalidMnemonicError{Reason: "word list must contain exactly 2048 words"}
	}
	index := buildWordIndex(list)
	if len(index) != wordListSize {
		return &InvalidMnemonicError{Reason: "word list contains duplicate words"}
	}

	wordMu.Lock()
	defer wordMu.Unlock()
	wordList = list
	wordIndex = index
	return nil
}

// activeWordList returns the current word list and its reverse index.
func activeWordList() ([]string, map[string]int) {
	wordMu.RLock()
	defer wordMu.RUnlock()
	return wordList, wordIndex
}
