package solana

import (
	"testing"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestKeyFromMnemonic(t *testing.T) {
	key1, err := KeyFromMnemonic(testMnemonic)
	require.Nil(t, err)
	key2, err := KeyFromMnemonic(testMnemonic)
	require.Nil(t, err)

	require.Equal(t, key1, key2)
	require.Len(t, key1, 64)

	_, err = KeyFromMnemonic("not a valid mnemonic")
	require.NotNil(t, err)
}

func TestBuildTransfer(t *testing.T) {
	from, err := KeyFromMnemonic(testMnemonic)
	require.Nil(t, err)
	to := solanago.NewWallet().PublicKey()
	blockhash := solanago.MustHashFromBase58(testBlockhash)

	tx, err := BuildTransfer(from, to, 1_000_000_000, blockhash)
	require.Nil(t, err)
	require.Len(t, tx.Signatures, 1)
	require.Nil(t, tx.VerifySignatures())

	bz, err := EncodeTransaction(tx)
	require.Nil(t, err)

	decoded, err := solanago.TransactionFromDecoder(bin.NewBinDecoder(bz))
	require.Nil(t, err)
	require.Equal(t, blockhash, decoded.Message.RecentBlockhash)
	require.Equal(t, from.PublicKey(), decoded.Message.AccountKeys[0])
	require.Equal(t, tx.Signatures, decoded.Signatures)
	require.Len(t, decoded.Message.Instructions, 1)

	ix := decoded.Message.Instructions[0]
	programId, err := decoded.Message.ResolveProgramIDIndex(ix.ProgramIDIndex)
	require.Nil(t, err)
	require.Equal(t, system.ProgramID, programId)
}
