package solana

import (
	"bytes"
	"encoding/base64"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	solanatypes "github.com/sisu-network/solrpc/chains/solana/types"
	"github.com/sisu-network/solrpc/types"
)

// Client exposes the two calls needed to build and submit a transaction.
type Client struct {
	rpc RpcClient
}

func NewClient(rpc RpcClient) *Client {
	return &Client{rpc: rpc}
}

// GetLatestBlockhash returns the hash found in result.value.blockhash.
func (c *Client) GetLatestBlockhash() (solanago.Hash, error) {
	result, err := c.rpc.Call(solanatypes.NewGetLatestBlockhash())
	if err != nil {
		return solanago.Hash{}, err
	}

	obj, _ := result.(map[string]interface{})
	value, _ := obj["value"].(map[string]interface{})
	blockhash, ok := value["blockhash"].(string)
	if !ok {
		return solanago.Hash{}, newRpcError(types.ErrShape, "No blockhash in response", nil)
	}

	hash, err := solanago.HashFromBase58(blockhash)
	if err != nil {
		return solanago.Hash{}, newRpcError(types.ErrShape, "Hash parse", err)
	}

	return hash, nil
}

// SendTransaction serializes tx, encodes it in base64 and submits it. It returns the transaction
// signature reported by the node.
func (c *Client) SendTransaction(tx *solanago.Transaction) (string, error) {
	bz, err := EncodeTransaction(tx)
	if err != nil {
		return "", err
	}

	return c.SendTransactionBase64(base64.StdEncoding.EncodeToString(bz))
}

func (c *Client) SendTransactionBase64(base64Tx string) (string, error) {
	result, err := c.rpc.Call(solanatypes.NewSendTransaction(base64Tx))
	if err != nil {
		return "", err
	}

	signature, ok := result.(string)
	if !ok {
		return "", newRpcError(types.ErrShape, "Invalid response format: expected transaction signature", nil)
	}

	return signature, nil
}

// EncodeTransaction returns the canonical wire encoding of a signed transaction.
func EncodeTransaction(tx *solanago.Transaction) ([]byte, error) {
	if tx == nil {
		return nil, newRpcError(types.ErrSerialize, "Transaction serialization failed: nil transaction", nil)
	}

	buf := new(bytes.Buffer)
	if err := tx.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, newRpcError(types.ErrSerialize, "Transaction serialization failed", err)
	}

	return buf.Bytes(), nil
}
