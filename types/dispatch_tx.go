package types

type DispatchedTxRequest struct {
	Chain string
	// Canonical binary encoding of a signed transaction.
	Tx []byte
}

type DispatchedTxResult struct {
	Success bool
	Err     error
	Chain   string
	TxHash  string

	// True when the signature was served from the dispatcher's record of recent sends.
	Cached bool
}

func NewDispatchTxError(chain string, err error) *DispatchedTxResult {
	return &DispatchedTxResult{
		Success: false,
		Chain:   chain,
		Err:     err,
	}
}
