package types

import (
	"encoding/json"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/ybbus/jsonrpc/v3"
)

const (
	JsonRpcVersion = "2.0"
	// Calls are never pipelined so a constant id is enough.
	RequestId = 1

	SendMaxRetries = 3
)

type RpcMethodKind int

const (
	GetLatestBlockhash RpcMethodKind = iota
	GetBalance
	GetTransaction
	GetAccountInfo
	GetProgramAccounts
	GetRecentBlockhash
	GetSlot
	GetVersion
	SendTransaction
)

// AllRpcMethodKinds lists every supported kind in declaration order.
var AllRpcMethodKinds = []RpcMethodKind{
	GetLatestBlockhash,
	GetBalance,
	GetTransaction,
	GetAccountInfo,
	GetProgramAccounts,
	GetRecentBlockhash,
	GetSlot,
	GetVersion,
	SendTransaction,
}

// RpcMethod describes one chain query. Target holds the account address, transaction signature or
// base64 encoded transaction for the kinds that take one.
type RpcMethod struct {
	Kind   RpcMethodKind
	Target string
}

func NewGetLatestBlockhash() RpcMethod { return RpcMethod{Kind: GetLatestBlockhash} }

func NewGetBalance(wallet string) RpcMethod { return RpcMethod{Kind: GetBalance, Target: wallet} }

func NewGetTransaction(signature string) RpcMethod {
	return RpcMethod{Kind: GetTransaction, Target: signature}
}

func NewGetAccountInfo(account string) RpcMethod {
	return RpcMethod{Kind: GetAccountInfo, Target: account}
}

func NewGetProgramAccounts(program string) RpcMethod {
	return RpcMethod{Kind: GetProgramAccounts, Target: program}
}

func NewGetRecentBlockhash() RpcMethod { return RpcMethod{Kind: GetRecentBlockhash} }

func NewGetSlot() RpcMethod { return RpcMethod{Kind: GetSlot} }

func NewGetVersion() RpcMethod { return RpcMethod{Kind: GetVersion} }

func NewSendTransaction(base64Tx string) RpcMethod {
	return RpcMethod{Kind: SendTransaction, Target: base64Tx}
}

type CommitmentOpts struct {
	Commitment rpc.CommitmentType `json:"commitment"`
}

type EncodingOpts struct {
	Encoding solanago.EncodingType `json:"encoding"`
}

type SendTransactionOpts struct {
	Encoding            solanago.EncodingType `json:"encoding"`
	SkipPreflight       bool                  `json:"skipPreflight"`
	PreflightCommitment rpc.CommitmentType    `json:"preflightCommitment"`
	MaxRetries          int                   `json:"maxRetries"`
}

// MethodName returns the wire name of the method, or an empty string for an unknown kind.
func (m RpcMethod) MethodName() string {
	switch m.Kind {
	case GetLatestBlockhash:
		return "getLatestBlockhash"
	case GetBalance:
		return "getBalance"
	case GetTransaction:
		return "getTransaction"
	case GetAccountInfo:
		return "getAccountInfo"
	case GetProgramAccounts:
		return "getProgramAccounts"
	case GetRecentBlockhash:
		return "getRecentBlockhash"
	case GetSlot:
		return "getSlot"
	case GetVersion:
		return "getVersion"
	case SendTransaction:
		return "sendTransaction"
	}

	return ""
}

// Params returns the positional parameters of the method, or nil for an unknown kind.
func (m RpcMethod) Params() []interface{} {
	switch m.Kind {
	case GetLatestBlockhash:
		return []interface{}{CommitmentOpts{Commitment: rpc.CommitmentConfirmed}}
	case GetBalance:
		return []interface{}{m.Target}
	case GetTransaction:
		return []interface{}{m.Target, EncodingOpts{Encoding: solanago.EncodingJSONParsed}}
	case GetAccountInfo, GetProgramAccounts:
		return []interface{}{m.Target, EncodingOpts{Encoding: solanago.EncodingBase64}}
	case GetRecentBlockhash, GetSlot, GetVersion:
		return []interface{}{}
	case SendTransaction:
		return []interface{}{m.Target, SendTransactionOpts{
			Encoding:            solanago.EncodingBase64,
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentConfirmed,
			MaxRetries:          SendMaxRetries,
		}}
	}

	return nil
}

func (m RpcMethod) Valid() bool {
	return m.MethodName() != "" && m.Params() != nil
}

type RpcRequest struct {
	JsonRpc string        `json:"jsonrpc"`
	Id      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

func NewRpcRequest(m RpcMethod) *RpcRequest {
	return &RpcRequest{
		JsonRpc: JsonRpcVersion,
		Id:      RequestId,
		Method:  m.MethodName(),
		Params:  m.Params(),
	}
}

// RpcResponse keeps result raw so that an absent result can be told apart from a null one.
type RpcResponse struct {
	JsonRpc string            `json:"jsonrpc"`
	Id      interface{}       `json:"id"`
	Result  json.RawMessage   `json:"result"`
	Error   *jsonrpc.RPCError `json:"error,omitempty"`
}
