package solana

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	solanatypes "github.com/sisu-network/solrpc/chains/solana/types"
	"github.com/sisu-network/solrpc/network"
	"github.com/sisu-network/solrpc/types"
	"github.com/stretchr/testify/require"
)

const testUrl = "https://api.devnet.solana.com"

func newMockTransport(status int, body string) *network.MockTransport {
	return &network.MockTransport{Status: status, Body: []byte(body)}
}

func TestCallRequest(t *testing.T) {
	transport := newMockTransport(200, `{"jsonrpc":"2.0","id":1,"result":1234}`)
	client := NewRpcClient(transport, testUrl)

	result, err := client.Call(solanatypes.NewGetSlot())
	require.Nil(t, err)
	require.Equal(t, json.Number("1234"), result)

	require.Equal(t, "POST", transport.Method)
	require.Equal(t, testUrl, transport.Url)
	require.Equal(t, []network.Header{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "Content-Length", Value: strconv.Itoa(len(transport.Written))},
	}, transport.Headers)
	require.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"getSlot","params":[]}`, string(transport.Written))

	require.Equal(t, 1, transport.Opened())
	require.Equal(t, 1, transport.Released())
}

func TestCallHttpStatus(t *testing.T) {
	for _, status := range []int{199, 300, 404, 500} {
		transport := newMockTransport(status, `{"result":"ignored"}`)
		_, err := NewRpcClient(transport, testUrl).Call(solanatypes.NewGetVersion())

		require.NotNil(t, err)
		require.True(t, IsKind(err, types.ErrHttpStatus))
		require.Contains(t, err.Error(), strconv.Itoa(status))
		require.Equal(t, 1, transport.Released())
	}

	transport := newMockTransport(299, `{"result":"ok"}`)
	result, err := NewRpcClient(transport, testUrl).Call(solanatypes.NewGetVersion())
	require.Nil(t, err)
	require.Equal(t, "ok", result)
}

func TestCallFailureKinds(t *testing.T) {
	boom := errors.New("boom")

	testCases := []struct {
		name      string
		transport *network.MockTransport
		kind      types.RpcErrorKind
	}{
		{"open", &network.MockTransport{OpenErr: boom}, types.ErrTransport},
		{"request", &network.MockTransport{RequestErr: boom}, types.ErrTransport},
		{"write", &network.MockTransport{WriteErr: boom}, types.ErrWrite},
		{"submit", &network.MockTransport{SubmitErr: boom}, types.ErrWrite},
		{"read", &network.MockTransport{Status: 200, Body: []byte(`{"result":1}`), ReadErr: boom, ReadErrAfter: 4}, types.ErrRead},
		{"utf8", &network.MockTransport{Status: 200, Body: []byte{'{', 0xff, '}'}}, types.ErrDecode},
		{"json", newMockTransport(200, `{"result":`), types.ErrDecode},
		{"not object", newMockTransport(200, `[1,2,3]`), types.ErrShape},
		{"no result", newMockTransport(200, `{"jsonrpc":"2.0","id":1}`), types.ErrShape},
		{"server error", newMockTransport(200, `{"jsonrpc":"2.0","id":1,"error":{"code":-32002,"message":"Transaction simulation failed"}}`), types.ErrServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRpcClient(tc.transport, testUrl).Call(solanatypes.NewGetSlot())
			require.NotNil(t, err)
			require.True(t, IsKind(err, tc.kind), "got %v", err)
			require.NotEmpty(t, err.Error())

			// A session that was opened is always released.
			require.Equal(t, tc.transport.Opened(), tc.transport.Released())
		})
	}
}

func TestCallServerError(t *testing.T) {
	transport := newMockTransport(200, `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid params"}}`)
	_, err := NewRpcClient(transport, testUrl).Call(solanatypes.NewGetBalance("x"))

	var rpcErr *RpcError
	require.True(t, errors.As(err, &rpcErr))
	require.Equal(t, types.ErrServer, rpcErr.Kind)
	require.Equal(t, -32602, rpcErr.Code)
	require.Equal(t, "Invalid params", rpcErr.Msg)
	require.Contains(t, err.Error(), "-32602")
}

func TestCallUnknownMethod(t *testing.T) {
	transport := newMockTransport(200, `{"result":1}`)
	_, err := NewRpcClient(transport, testUrl).Call(solanatypes.RpcMethod{Kind: -1})

	require.True(t, IsKind(err, types.ErrSerialize))
	require.Nil(t, transport.Written)
	require.Equal(t, 1, transport.Released())
}

func TestCallNullResult(t *testing.T) {
	transport := newMockTransport(200, `{"jsonrpc":"2.0","id":1,"result":null}`)
	result, err := NewRpcClient(transport, testUrl).Call(solanatypes.NewGetAccountInfo("acc"))

	require.Nil(t, err)
	require.Nil(t, result)
}

func TestCallChunkedRead(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"result":{"context":{"slot":99},"value":{"blockhash":"` +
		testBlockhash + `","lastValidBlockHeight":1200}}}`

	whole := newMockTransport(200, body)
	expected, err := NewRpcClient(whole, testUrl).Call(solanatypes.NewGetLatestBlockhash())
	require.Nil(t, err)

	for _, chunk := range []int{1, 2, 7, 255, 256, 257} {
		transport := newMockTransport(200, body)
		transport.ChunkSize = chunk
		result, err := NewRpcClient(transport, testUrl).Call(solanatypes.NewGetLatestBlockhash())
		require.Nil(t, err)
		require.Equal(t, expected, result)
	}
}

func TestCallContentLengthHint(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"result":"abcdef"}`

	for _, hint := range []uint64{0, 3, uint64(len(body)), 10_000} {
		h := hint
		transport := newMockTransport(200, body)
		transport.ChunkSize = 5
		transport.ContentLength = &h

		result, err := NewRpcClient(transport, testUrl).Call(solanatypes.NewGetVersion())
		require.Nil(t, err)
		require.Equal(t, "abcdef", result)
	}
}
