package solana

import (
	"errors"
	"fmt"

	"github.com/sisu-network/solrpc/types"
)

// RpcError is returned by every failing RPC call.
type RpcError struct {
	Kind types.RpcErrorKind
	// HTTP status for ErrHttpStatus.
	Status int
	// JSON-RPC error code for ErrServer.
	Code int
	Msg  string
	Err  error
}

func newRpcError(kind types.RpcErrorKind, msg string, err error) *RpcError {
	return &RpcError{Kind: kind, Msg: msg, Err: err}
}

func (e *RpcError) Error() string {
	switch e.Kind {
	case types.ErrHttpStatus:
		return fmt.Sprintf("HTTP error: status code %d", e.Status)
	case types.ErrServer:
		return fmt.Sprintf("RPC error %d: %s", e.Code, e.Msg)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}

	return e.Msg
}

func (e *RpcError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an RpcError of the given kind.
func IsKind(err error, kind types.RpcErrorKind) bool {
	var rpcErr *RpcError
	if errors.As(err, &rpcErr) {
		return rpcErr.Kind == kind
	}

	return false
}
