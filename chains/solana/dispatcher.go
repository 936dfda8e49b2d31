package solana

import (
	"encoding/base64"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/golang/groupcache/lru"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/solrpc/chains"
	"github.com/sisu-network/solrpc/types"
)

const DispatchCacheSize = 1000

type Dispatcher struct {
	chain  string
	client *Client
	// first tx signature -> signature returned by the node
	recent *lru.Cache
}

func NewDispatcher(chain string, client *Client) chains.Dispatcher {
	return &Dispatcher{
		chain:  chain,
		client: client,
		recent: lru.New(DispatchCacheSize),
	}
}

func (d *Dispatcher) Start() {
}

func (d *Dispatcher) Dispatch(request *types.DispatchedTxRequest) *types.DispatchedTxResult {
	log.Debug("Dispatching solana transaction ...")

	tx, err := solanago.TransactionFromDecoder(bin.NewBinDecoder(request.Tx))
	if err != nil {
		log.Error("error when decoding solana tx: ", err)
		return types.NewDispatchTxError(d.chain, newRpcError(types.ErrSerialize, "Transaction decode failed", err))
	}
	if len(tx.Signatures) == 0 {
		return types.NewDispatchTxError(d.chain, newRpcError(types.ErrSerialize, "Transaction is not signed", nil))
	}

	txId := tx.Signatures[0].String()
	if signature, ok := d.recent.Get(txId); ok {
		log.Verbose("Solana transaction was already dispatched, signature = ", signature)
		return &types.DispatchedTxResult{
			Success: true,
			Chain:   d.chain,
			TxHash:  signature.(string),
			Cached:  true,
		}
	}

	signature, err := d.client.SendTransactionBase64(base64.StdEncoding.EncodeToString(request.Tx))
	if err != nil {
		log.Error("error when submitting solana tx: ", err)
		return types.NewDispatchTxError(d.chain, err)
	}

	d.recent.Add(txId, signature)
	log.Verbose("Solana transaction is dispatched successfully, signature = ", signature)

	return &types.DispatchedTxResult{
		Success: true,
		Chain:   d.chain,
		TxHash:  signature,
	}
}
