// derive_vector prints every standard derivation for a BIP39 mnemonic so
// results can be cross-checked against other wallet implementations.
//
// Usage:
//
//	go run ./scripts/derive_vector "your 24 word seed phrase here"
//
// Or with stdin:
//
//	echo "your 24 word seed phrase" | go run ./scripts/derive_vector
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/complex-gh/hdwallet"
)

func main() {
	var phrase string

	if len(os.Args) > 1 {
		phrase = strings.Join(os.Args[1:], " ")
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			phrase = strings.TrimSpace(scanner.Text())
		}
	}

	if phrase == "" {
		fmt.Fprintln(os.Stderr, "Usage: derive_vector \"24 word seed phrase\"")
		fmt.Fprintln(os.Stderr, "   or: echo \"seed phrase\" | derive_vector")
		os.Exit(1)
	}

	mnemonic, err := hdwallet.MnemonicFromPhrase(phrase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := mnemonic.Seed("")
	master, err := hdwallet.NewMaster(seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seed     %x\n", seed)
	fmt.Printf("m        %s\n", master)
	fmt.Printf("M        %s\n", master.Neuter())

	for _, d := range []struct {
		path   hdwallet.DerivationPath
		format hdwallet.Format
	}{
		{hdwallet.DefaultBitcoinPath(), hdwallet.FormatP2PKH},
		{hdwallet.BIP49Path(hdwallet.CoinTypeBitcoin, 0, 0, 0), hdwallet.FormatP2SH},
		{hdwallet.BIP84Path(hdwallet.CoinTypeBitcoin, 0, 0, 0), hdwallet.FormatBech32},
		{hdwallet.DefaultEthereumPath(), hdwallet.FormatChecksumHex},
	} {
		key, err := master.Derive(d.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		addr, err := key.Address(d.format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%-12s %s\n", d.format, addr)

		kp, err := key.KeyPair()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if d.format == hdwallet.FormatChecksumHex {
			fmt.Printf("%-12s %s\n", "priv-hex", kp.PrivateHex())
		} else {
			wif, err := kp.WIF()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%-12s %s\n", "priv-wif", wif)
		}
	}

	nostr, err := hdwallet.DeriveNostrKeys(phrase, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("npub     %s\n", nostr.Npub)
	fmt.Printf("nsec     %s\n", nostr.Nsec)
}
