package solana

import (
	"crypto/ed25519"
	"errors"

	"github.com/cosmos/go-bip39"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// KeyFromMnemonic derives an ed25519 key from the first 32 bytes of the BIP-39 seed.
func KeyFromMnemonic(mnemonic string) (solanago.PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}

	seed := bip39.NewSeed(mnemonic, "")[:32]
	key := ed25519.NewKeyFromSeed(seed)

	return solanago.PrivateKey(key), nil
}

// BuildTransfer returns a transaction moving lamports from `from` to `to`, paid and signed by `from`.
func BuildTransfer(from solanago.PrivateKey, to solanago.PublicKey, lamports uint64, blockhash solanago.Hash) (*solanago.Transaction, error) {
	tx, err := solanago.NewTransaction(
		[]solanago.Instruction{
			system.NewTransferInstruction(lamports, from.PublicKey(), to).Build(),
		},
		blockhash,
		solanago.TransactionPayer(from.PublicKey()),
	)
	if err != nil {
		return nil, err
	}

	_, err = tx.Sign(func(key solanago.PublicKey) *solanago.PrivateKey {
		if from.PublicKey().Equals(key) {
			return &from
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tx, nil
}
