package solana

import (
	"encoding/base64"
	"errors"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	solanatypes "github.com/sisu-network/solrpc/chains/solana/types"
	"github.com/sisu-network/solrpc/types"
	"github.com/stretchr/testify/require"
)

func getSignedTxBytes(t *testing.T) ([]byte, *solanago.Transaction) {
	from := solanago.NewWallet().PrivateKey
	tx, err := BuildTransfer(from, solanago.NewWallet().PublicKey(), 5_000, solanago.MustHashFromBase58(testBlockhash))
	require.Nil(t, err)

	bz, err := tx.MarshalBinary()
	require.Nil(t, err)

	return bz, tx
}

func TestSolanaDispatcher(t *testing.T) {
	bz, tx := getSignedTxBytes(t)

	callCount := 0
	rpc := &MockRpcClient{
		CallFunc: func(method solanatypes.RpcMethod) (interface{}, error) {
			callCount++
			require.Equal(t, base64.StdEncoding.EncodeToString(bz), method.Target)
			return tx.Signatures[0].String(), nil
		},
	}
	dispatcher := NewDispatcher("solana-devnet", NewClient(rpc))
	dispatcher.Start()

	result := dispatcher.Dispatch(&types.DispatchedTxRequest{Chain: "solana-devnet", Tx: bz})
	require.True(t, result.Success)
	require.False(t, result.Cached)
	require.Equal(t, "solana-devnet", result.Chain)
	require.Equal(t, tx.Signatures[0].String(), result.TxHash)

	// Same transaction again is served from the record of recent sends.
	result = dispatcher.Dispatch(&types.DispatchedTxRequest{Chain: "solana-devnet", Tx: bz})
	require.True(t, result.Success)
	require.True(t, result.Cached)
	require.Equal(t, tx.Signatures[0].String(), result.TxHash)
	require.Equal(t, 1, callCount)
}

func TestSolanaDispatcherFailure(t *testing.T) {
	bz, _ := getSignedTxBytes(t)

	callCount := 0
	rpc := &MockRpcClient{
		CallFunc: func(method solanatypes.RpcMethod) (interface{}, error) {
			callCount++
			return nil, &RpcError{Kind: types.ErrServer, Code: -32002, Msg: "Transaction simulation failed"}
		},
	}
	dispatcher := NewDispatcher("solana-devnet", NewClient(rpc))

	result := dispatcher.Dispatch(&types.DispatchedTxRequest{Tx: bz})
	require.False(t, result.Success)
	require.True(t, IsKind(result.Err, types.ErrServer))

	// Failures are not remembered.
	dispatcher.Dispatch(&types.DispatchedTxRequest{Tx: bz})
	require.Equal(t, 2, callCount)
}

func TestSolanaDispatcherInvalidTx(t *testing.T) {
	rpc := &MockRpcClient{
		CallFunc: func(method solanatypes.RpcMethod) (interface{}, error) {
			return nil, errors.New("must not be called")
		},
	}
	dispatcher := NewDispatcher("solana-devnet", NewClient(rpc))

	result := dispatcher.Dispatch(&types.DispatchedTxRequest{Tx: []byte{0xff, 0xff, 0xff}})
	require.False(t, result.Success)
	require.True(t, IsKind(result.Err, types.ErrSerialize))

	// Unsigned transaction: zero signatures followed by the message.
	_, tx := getSignedTxBytes(t)
	msg, err := tx.Message.MarshalBinary()
	require.Nil(t, err)
	bz := append([]byte{0}, msg...)

	result = dispatcher.Dispatch(&types.DispatchedTxRequest{Tx: bz})
	require.False(t, result.Success)
	require.True(t, IsKind(result.Err, types.ErrSerialize))
}
