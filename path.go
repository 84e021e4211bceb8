// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

import (
	"fmt"
	"strconv"
	"strings"
)

// HardenedKeyStart is the first hardened child index. Indices at or above
// this value require the parent private key to derive.
const HardenedKeyStart uint32 = 0x80000000

// DerivationPath is an ordered sequence of BIP32 child indices, the
// machine form of a path string like "m/44'/60'/0'/0/0". Paths are
// immutable once parsed.
type DerivationPath []uint32

// Well-known BIP44 coin types (SLIP-44).
const (
	CoinTypeBitcoin  uint32 = 0
	CoinTypeEthereum uint32 = 60
	CoinTypeNostr    uint32 = 1237
)

// BIP44Path builds m/44'/coin'/account'/change/index.
func BIP44Path(coin, account, change, index uint32) DerivationPath {
	return DerivationPath{
		HardenedKeyStart + 44,
		HardenedKeyStart + coin,
		HardenedKeyStart + account,
		change,
		index,
	}
}

// BIP49Path builds m/49'/coin'/account'/change/index (P2SH-wrapped SegWit).
func BIP49Path(coin, account, change, index uint32) DerivationPath {
	return DerivationPath{
		HardenedKeyStart + 49,
		HardenedKeyStart + coin,
		HardenedKeyStart + account,
		change,
		index,
	}
}

// BIP84Path builds m/84'/coin'/account'/change/index (native SegWit).
func BIP84Path(coin, account, change, index uint32) DerivationPath {
	return DerivationPath{
		HardenedKeyStart + 84,
		HardenedKeyStart + coin,
		HardenedKeyStart + account,
		change,
		index,
	}
}

// DefaultBitcoinPath returns m/44'/0'/0'/0/0.
func DefaultBitcoinPath() DerivationPath {
	return BIP44Path(CoinTypeBitcoin, 0, 0, 0)
}

// DefaultEthereumPath returns m/44'/60'/0'/0/0.
func DefaultEthereumPath() DerivationPath {
	return BIP44Path(CoinTypeEthereum, 0, 0, 0)
}

// NostrPath returns m/44'/1237'/0'/0/0, the NIP-06 key derivation path.
func NostrPath() DerivationPath {
	return BIP44Path(CoinTypeNostr, 0, 0, 0)
}

// ParseDerivationPath converts a path string of the form "m/44'/60'/0'/0/0"
// into its index sequence. Hardened components may be marked with ', h, or
// H. Whitespace around components is ignored. "m" alone is the empty (root)
// path.
func ParseDerivationPath(path string) (DerivationPath, error) {
	components := strings.Split(path, "/")
	if strings.TrimSpace(components[0]) != "m" {
		return nil, fmt.Errorf("derivation path must start with \"m\": %q", path)
	}
	components = components[1:]

	result := make(DerivationPath, 0, len(components))
	for _, component := range components {
		component = strings.TrimSpace(component)

		var hardened bool
		switch {
		case strings.HasSuffix(component, "'"),
			strings.HasSuffix(component, "h"),
			strings.HasSuffix(component, "H"):
			hardened = true
			component = strings.TrimSpace(component[:len(component)-1])
		}

		value, err := strconv.ParseUint(component, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path component %q: %w", component, err)
		}
		index := uint32(value)
		if index >= HardenedKeyStart {
			return nil, fmt.Errorf("path component %d out of range [0, %d]", index, HardenedKeyStart-1)
		}
		if hardened {
			index += HardenedKeyStart
		}
		result = append(result, index)
	}
	return result, nil
}

// String renders the path in its canonical form, using ' as the hardened
// marker. The result round-trips through ParseDerivationPath.
func (path DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, component := range path {
		b.WriteString("/")
		if component >= HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(component-HardenedKeyStart), 10))
			b.WriteString("'")
		} else {
			b.WriteString(strconv.FormatUint(uint64(component), 10))
		}
	}
	return b.String()
}

// Extend returns a new path with the given indices appended; the receiver
// is not modified.
func (path DerivationPath) Extend(indices ...uint32) DerivationPath {
	extended := make(DerivationPath, 0, len(path)+len(indices))
	extended = append(extended, path...)
	extended = append(extended, indices...)
	return extended
}

// PathIterator returns a function producing successive sibling paths by
// incrementing the last component of base: m/44'/60'/0'/0/0, .../1, .../2
// and so on. The base path must not be empty.
func PathIterator(base DerivationPath) func() DerivationPath {
	path := base.Extend()
	path[len(path)-1]--
	return func() DerivationPath {
		path[len(path)-1]++
		return path.Extend()
	}
}
