// Package main provides the hdwallet CLI tool for deriving keys and
// addresses from mnemonic seed phrases.
package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/complex-gh/hdwallet"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/term"
	lang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	maxWidth = 72
)

var (
	baseStyle  = lipgloss.NewStyle().Margin(0, 0, 1, 2) //nolint:mnd
	red        = lipgloss.Color(completeColor("#FF4444", "196", "9"))
	errorStyle = baseStyle.
			Foreground(red).
			Background(lipgloss.AdaptiveColor{Light: completeColor("#FFEBEB", "255", "7"), Dark: completeColor("#2B1A1A", "235", "8")}).
			Padding(1, 2) //nolint:mnd

	language       string
	pathStr        string
	formatStr      string
	seedPassphrase string
	showPrivate    bool
	scanCount      uint32
	scanStart      uint32

	rootCmd = &cobra.Command{
		Use:   "hdwallet [phrase-file]",
		Short: "Derive keys and addresses from a mnemonic seed phrase",
		Long: `Derive keys and addresses from a mnemonic seed phrase.

The phrase is read from the given file, from a pipe, or typed at a hidden
prompt. With no flags the standard derivations are shown: Bitcoin legacy,
nested-segwit and native-segwit addresses, the Ethereum address, nostr
keys, and the master extended keys. With --path and --format a single
derivation is shown instead.

SECURITY TIP: Prefer the hidden prompt or a pipe over putting the phrase
in a file. If you must pass a file, shred it afterwards.`,
		Example: `  hdwallet
  hdwallet phrase.txt
  echo "$PHRASE" | hdwallet -
  hdwallet --path "m/44'/0'/0'/0/0" --format p2pkh
  hdwallet --path "m/84'/0'/0'/0" --format bech32 --scan 20
  hdwallet --path "m/44'/60'/0'/0/0" --format checksum-hex --show-private
  hdwallet --passphrase "extra words"`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setLanguage(language); err != nil {
				return err
			}

			var phrasePath string
			if len(args) > 0 {
				phrasePath = args[0]
			}
			phrase, err := readPhrase(phrasePath)
			if err != nil {
				return err
			}

			mnemonic, err := hdwallet.MnemonicFromPhrase(phrase)
			if err != nil {
				var invalid *hdwallet.InvalidMnemonicError
				if errors.As(err, &invalid) {
					return formatStyledError(err)
				}
				return err
			}
			defer mnemonic.Zero()

			if pathStr != "" {
				return deriveOne(cmd, mnemonic)
			}
			return deriveOverview(mnemonic)
		},
	}

	newWordCount int

	// newCmd generates a fresh mnemonic from the system's entropy source.
	newCmd = &cobra.Command{
		Use:   "new",
		Short: "Generate a new mnemonic seed phrase",
		Long: `Generate a new mnemonic seed phrase from system randomness.

Valid word counts are: 12, 15, 16, 18, 21, or 24.
- 12, 15, 18, 21, 24 words use BIP39 format
- 16 words use Polyseed format`,
		Example: `  hdwallet new
  hdwallet new --words 12
  hdwallet new --words 16 | head -1`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := setLanguage(language); err != nil {
				return err
			}

			if newWordCount == 16 { //nolint:mnd
				entropy := make([]byte, 19) //nolint:mnd
				if _, err := rand.Read(entropy); err != nil {
					return fmt.Errorf("could not gather entropy: %w", err)
				}
				phrase, err := hdwallet.PolyseedPhrase(entropy)
				if err != nil {
					return fmt.Errorf("could not generate polyseed: %w", err)
				}
				fmt.Println(phrase)
				return nil
			}

			mnemonic, err := hdwallet.NewMnemonic(newWordCount)
			if err != nil {
				return fmt.Errorf("could not generate mnemonic: %w", err)
			}
			defer mnemonic.Zero()
			fmt.Println(mnemonic.Phrase())
			return nil
		},
	}

	// decodeCmd inspects an encoded address or extended key.
	decodeCmd = &cobra.Command{
		Use:   "decode <address-or-extended-key>",
		Short: "Decode an address or extended key and verify its checksum",
		Example: `  hdwallet decode 1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA
  hdwallet decode bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu
  hdwallet decode 0x9858EfFD232B4033E47d90003D41EC34EcaEda94
  hdwallet decode xpub661MyMwAqRbcF...`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			input := args[0]

			if strings.HasPrefix(input, "xprv") || strings.HasPrefix(input, "xpub") {
				key, err := hdwallet.ParseExtendedKey(input)
				if err != nil {
					return formatStyledError(err)
				}
				defer key.Zero()
				kind := "public"
				if key.IsPrivate() {
					kind = "private"
				}
				fmt.Printf("extended %s key\n", kind)
				fmt.Printf("depth:       %d\n", key.Depth())
				fmt.Printf("parent:      %x\n", key.ParentFingerprint())
				fmt.Printf("child index: %d\n", key.ChildIndex())
				return nil
			}

			addr, err := hdwallet.DecodeAddress(input)
			if err != nil {
				return formatStyledError(err)
			}
			hash := addr.Hash()
			fmt.Printf("format: %s\n", addr.Format())
			fmt.Printf("hash:   %x\n", hash)
			return nil
		},
	}

	manCmd = &cobra.Command{
		Use:          "man",
		Args:         cobra.NoArgs,
		Short:        "generate man pages",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex.\n"+
				"Released under MIT license.")
			fmt.Println(manPage.Build(roff.NewDocument()))
			return nil
		},
	}

	// completionCmd generates shell completion scripts for bash, zsh, fish, and powershell.
	completionCmd = &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for hdwallet.

To load completions:

Bash:
  $ source <(hdwallet completion bash)

Zsh:
  $ hdwallet completion zsh > "${fpath[1]}/_hdwallet"

Fish:
  $ hdwallet completion fish | source

PowerShell:
  PS> hdwallet completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", "en", "Word list language")
	rootCmd.Flags().StringVarP(&pathStr, "path", "p", "", "Derivation path (e.g. m/44'/0'/0'/0/0)")
	rootCmd.Flags().StringVarP(&formatStr, "format", "f", "p2pkh", "Address format: hex, checksum-hex, p2pkh, p2sh, bech32")
	rootCmd.Flags().StringVar(&seedPassphrase, "passphrase", "", "Optional passphrase mixed into the seed")
	rootCmd.Flags().BoolVar(&showPrivate, "show-private", false, "Also print private key material (WIF / hex)")
	rootCmd.Flags().Uint32Var(&scanCount, "scan", 0, "Derive this many consecutive addresses under --path")
	rootCmd.Flags().Uint32Var(&scanStart, "scan-start", 0, "First child index for --scan")
	newCmd.Flags().IntVarP(&newWordCount, "words", "w", 24, "Word count (12, 15, 16, 18, 21, or 24)")
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readPhrase reads the mnemonic phrase from a file, a pipe, or a hidden
// terminal prompt, in that order of preference.
func readPhrase(path string) (string, error) {
	if path != "" && path != "-" {
		// G304: path is user-provided input, which is expected for a CLI tool
		bts, err := os.ReadFile(path) //nolint:gosec
		if err != nil {
			return "", fmt.Errorf("could not read phrase: %w", err)
		}
		return strings.TrimSpace(string(bts)), nil
	}

	if fi, _ := os.Stdin.Stat(); path == "-" || (fi.Mode()&os.ModeNamedPipe) != 0 {
		bts, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("could not read phrase: %w", err)
		}
		return strings.TrimSpace(string(bts)), nil
	}

	return readHidden("Enter the seed phrase: ")
}

func readHidden(msg string) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, msg)
	defer fmt.Fprintf(os.Stderr, "\n")
	t, err := tty.Open()
	if err != nil {
		return "", fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close()                                       //nolint: errcheck
	phrase, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	if err != nil {
		return "", fmt.Errorf("could not read phrase: %w", err)
	}
	return strings.TrimSpace(string(phrase)), nil
}

// deriveOne derives a single path, or a consecutive range of addresses when
// --scan is set.
func deriveOne(cmd *cobra.Command, mnemonic *hdwallet.Mnemonic) error {
	path, err := hdwallet.ParseDerivationPath(pathStr)
	if err != nil {
		return formatStyledError(err)
	}
	format, err := hdwallet.ParseFormat(formatStr)
	if err != nil {
		return formatStyledError(err)
	}

	seed := mnemonic.Seed(seedPassphrase)
	defer wipe(seed)
	master, err := hdwallet.NewMaster(seed)
	if err != nil {
		return fmt.Errorf("could not derive master key: %w", err)
	}
	defer master.Zero()

	if scanCount > 0 {
		return hdwallet.ScanAddresses(cmd.Context(), master, path, scanStart, scanCount, format,
			func(index uint32, addr *hdwallet.Address) bool {
				fmt.Printf("%s (%s/%d)\n", addr, path, index)
				return true
			})
	}

	key, err := master.Derive(path)
	if err != nil {
		return fmt.Errorf("could not derive %s: %w", path, err)
	}
	defer key.Zero()

	addr, err := key.Address(format)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s %s)\n", addr, format, path)

	if showPrivate {
		kp, err := key.KeyPair()
		if err != nil {
			return err
		}
		defer kp.Zero()
		switch format {
		case hdwallet.FormatHex, hdwallet.FormatChecksumHex:
			fmt.Printf("%s (private key hex)\n", kp.PrivateHex())
		default:
			wif, err := kp.WIF()
			if err != nil {
				return err
			}
			fmt.Printf("%s (private key WIF)\n", wif)
		}
	}
	return nil
}

// deriveOverview prints the standard derivations in a fixed order, matching
// what most wallets show on first import.
func deriveOverview(mnemonic *hdwallet.Mnemonic) error {
	seed := mnemonic.Seed(seedPassphrase)
	defer wipe(seed)
	master, err := hdwallet.NewMaster(seed)
	if err != nil {
		return fmt.Errorf("could not derive master key: %w", err)
	}
	defer master.Zero()

	fmt.Printf("[bitcoin addresses]\n")
	fmt.Println()
	for _, d := range []struct {
		path   hdwallet.DerivationPath
		format hdwallet.Format
		label  string
	}{
		{hdwallet.DefaultBitcoinPath(), hdwallet.FormatP2PKH, "legacy P2PKH - BIP44 m/44'/0'/0'/0/0"},
		{hdwallet.BIP49Path(hdwallet.CoinTypeBitcoin, 0, 0, 0), hdwallet.FormatP2SH, "segwit P2SH-P2WPKH - BIP49 m/49'/0'/0'/0/0"},
		{hdwallet.BIP84Path(hdwallet.CoinTypeBitcoin, 0, 0, 0), hdwallet.FormatBech32, "native segwit P2WPKH - BIP84 m/84'/0'/0'/0/0"},
	} {
		key, err := master.Derive(d.path)
		if err != nil {
			return fmt.Errorf("could not derive %s: %w", d.path, err)
		}
		addr, err := key.Address(d.format)
		key.Zero()
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", addr, d.label)
	}
	fmt.Println()

	ethKey, err := master.Derive(hdwallet.DefaultEthereumPath())
	if err != nil {
		return fmt.Errorf("could not derive ethereum key: %w", err)
	}
	ethAddr, err := ethKey.Address(hdwallet.FormatChecksumHex)
	ethKey.Zero()
	if err != nil {
		return err
	}
	fmt.Printf("[ethereum address]\n")
	fmt.Println()
	fmt.Printf("%s (BIP44 m/44'/60'/0'/0/0)\n", ethAddr)
	fmt.Println()

	nostrKeys, err := hdwallet.DeriveNostrKeys(mnemonic.Phrase(), seedPassphrase)
	if err != nil {
		return fmt.Errorf("could not derive nostr keys: %w", err)
	}
	fmt.Printf("[nostr keys]\n")
	fmt.Println()
	fmt.Printf("%s (nostr public key aka \"nostr user\")\n", nostrKeys.Npub)
	fmt.Printf("%s (nostr secret key aka \"nostr pass\")\n", nostrKeys.Nsec)
	fmt.Println()

	fmt.Printf("[master extended keys]\n")
	fmt.Println()
	fmt.Printf("%s (master xpub at m)\n", master.Neuter())
	if showPrivate {
		fmt.Printf("%s (master xprv at m)\n", master)
	}
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func getWidth(maxw int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint: gosec
	if err != nil || w > maxw {
		return maxWidth
	}
	return w
}

func renderBlock(w io.Writer, s lipgloss.Style, width int, str string) {
	_, _ = io.WriteString(w, s.Width(width).Render(str))
	_, _ = io.WriteString(w, "\n")
}

// formatStyledError shows a styled version of the error on terminals and
// returns a plain one so the command exits non-zero.
func formatStyledError(err error) error {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		b := strings.Builder{}
		w := getWidth(maxWidth)

		b.WriteRune('\n')
		renderBlock(&b, errorStyle, w, err.Error())
		b.WriteRune('\n')

		fmt.Print(b.String())
	}
	return err
}

func completeColor(truecolor, ansi256, ansi string) string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return truecolor
	case termenv.ANSI256:
		return ansi256
	}
	return ansi
}

// setLanguage selects the word list used to parse and generate mnemonics.
func setLanguage(language string) error {
	list := getWordlist(language)
	if list == nil {
		return fmt.Errorf("this language is not supported")
	}
	return hdwallet.SetWordList(list)
}

func sanitizeLang(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

var wordLists = map[lang.Tag][]string{
	lang.Chinese:              wordlists.ChineseSimplified,
	lang.SimplifiedChinese:    wordlists.ChineseSimplified,
	lang.TraditionalChinese:   wordlists.ChineseTraditional,
	lang.Czech:                wordlists.Czech,
	lang.AmericanEnglish:      wordlists.English,
	lang.BritishEnglish:       wordlists.English,
	lang.English:              wordlists.English,
	lang.French:               wordlists.French,
	lang.Italian:              wordlists.Italian,
	lang.Japanese:             wordlists.Japanese,
	lang.Korean:               wordlists.Korean,
	lang.Spanish:              wordlists.Spanish,
	lang.EuropeanSpanish:      wordlists.Spanish,
	lang.LatinAmericanSpanish: wordlists.Spanish,
}

func getWordlist(language string) []string {
	language = sanitizeLang(language)
	tag := lang.Make(language)
	en := display.English.Languages() // default language name matcher
	for t := range wordLists {
		if sanitizeLang(en.Name(t)) == language {
			tag = t
			break
		}
	}
	if tag == lang.Und { // Unknown language
		return nil
	}
	base, _ := tag.Base()
	btag := lang.MustParse(base.String())
	wl := wordLists[tag]
	if wl == nil {
		return wordLists[btag]
	}
	return wl
}
