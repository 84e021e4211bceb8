// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdwallet

// paymentCodeVersion is the BIP47 version 1 payment code marker; the
// prefix byte makes the Base58Check form start with "P".
const (
	paymentCodeVersion = 0x01
	paymentCodePrefix  = 0x47
)

// PayNym is a BIP47 reusable payment code identity: the payment code
// published to receive funds and the notification address peers send the
// initial notification transaction to.
type PayNym struct {
	PaymentCode         string
	NotificationAddress string
}

// DerivePayNym derives the BIP47 payment code and notification address
// for a mnemonic phrase. The payment code packs the public key and chain
// code at m/47'/0'/0' into an 80-byte structure; the notification address
// is the legacy address of that account's first normal child.
func DerivePayNym(phrase, passphrase string) (*PayNym, error) {
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

	account, err := master.Derive(DerivationPath{
		HardenedKeyStart + 47,
		HardenedKeyStart + CoinTypeBitcoin,
		HardenedKeyStart,
	})
	if err != nil {
		return nil, err
	}
	defer account.Zero()

	// version || features || serP(K) || chain code || 13 bytes reserved
	payload := make([]byte, 0, 81)
	payload = append(payload, paymentCodePrefix)
	payload = append(payload, paymentCodeVersion, 0x00)
	payload = append(payload, account.publicKeyBytes()...)
	payload = append(payload, account.ChainCode()...)
	payload = append(payload, make([]byte, 13)...)
	paymentCode := base58CheckEncode(payload)

	notifyKey, err := account.Child(0)
	if err != nil {
		return nil, err
	}
	defer notifyKey.Zero()
	notifyAddr, err := notifyKey.Address(FormatP2PKH)
	if err != nil {
		return nil, err
	}

	return &PayNym{
		PaymentCode:         paymentCode,
		NotificationAddress: notifyAddr.String(),
	}, nil
}
