package solana

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"unicode/utf8"

	solanatypes "github.com/sisu-network/solrpc/chains/solana/types"
	"github.com/sisu-network/solrpc/network"
	"github.com/sisu-network/solrpc/types"
)

const readChunkSize = 256

// RpcClient sends one JSON-RPC request per call and returns the decoded result field.
type RpcClient interface {
	Call(method solanatypes.RpcMethod) (interface{}, error)
}

type defaultRpcClient struct {
	transport network.Transport
	url       string
}

func NewRpcClient(transport network.Transport, url string) RpcClient {
	return &defaultRpcClient{
		transport: transport,
		url:       url,
	}
}

func (c *defaultRpcClient) Call(method solanatypes.RpcMethod) (interface{}, error) {
	session, err := c.transport.Open()
	if err != nil {
		return nil, newRpcError(types.ErrTransport, "HTTP init", err)
	}
	defer session.Close()

	payload, err := encodeRequest(method)
	if err != nil {
		return nil, err
	}

	headers := []network.Header{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "Content-Length", Value: strconv.Itoa(len(payload))},
	}
	request, err := session.Request("POST", c.url, headers)
	if err != nil {
		return nil, newRpcError(types.ErrTransport, "Request", err)
	}

	if err := writeFull(request, payload); err != nil {
		return nil, newRpcError(types.ErrWrite, "Write", err)
	}

	response, err := request.Submit()
	if err != nil {
		return nil, newRpcError(types.ErrWrite, "Submit", err)
	}

	status := response.Status()
	if status < 200 || status > 299 {
		return nil, &RpcError{Kind: types.ErrHttpStatus, Status: status}
	}

	body, err := readBody(response)
	if err != nil {
		return nil, newRpcError(types.ErrRead, "Read", err)
	}

	return parseResult(body)
}

func encodeRequest(method solanatypes.RpcMethod) ([]byte, error) {
	if !method.Valid() {
		return nil, newRpcError(types.ErrSerialize, "JSON serialize: unknown method kind "+strconv.Itoa(int(method.Kind)), nil)
	}

	payload, err := json.Marshal(solanatypes.NewRpcRequest(method))
	if err != nil {
		return nil, newRpcError(types.ErrSerialize, "JSON serialize", err)
	}

	return payload, nil
}

func writeFull(w io.Writer, payload []byte) error {
	for len(payload) > 0 {
		n, err := w.Write(payload)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		payload = payload[n:]
	}

	return nil
}

// readBody drains the response until end of data. The announced length only sizes the buffer.
func readBody(response network.Response) ([]byte, error) {
	hint, _ := response.ContentLen()
	if hint > 1<<20 {
		hint = 1 << 20
	}

	body := bytes.NewBuffer(make([]byte, 0, hint))
	buf := make([]byte, readChunkSize)
	for {
		n, err := response.Read(buf)
		body.Write(buf[:n])
		if errors.Is(err, io.EOF) {
			return body.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func parseResult(body []byte) (interface{}, error) {
	if !utf8.Valid(body) {
		return nil, newRpcError(types.ErrDecode, "UTF-8", errors.New("response body is not valid UTF-8"))
	}

	response := &solanatypes.RpcResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, newRpcError(types.ErrShape, "JSON response is not an object", err)
		}
		return nil, newRpcError(types.ErrDecode, "JSON parse", err)
	}

	if response.Error != nil {
		return nil, &RpcError{
			Kind: types.ErrServer,
			Code: response.Error.Code,
			Msg:  response.Error.Message,
			Err:  response.Error,
		}
	}

	if len(response.Result) == 0 {
		return nil, newRpcError(types.ErrShape, "No result in response", nil)
	}

	var result interface{}
	decoder := json.NewDecoder(bytes.NewReader(response.Result))
	decoder.UseNumber()
	if err := decoder.Decode(&result); err != nil {
		return nil, newRpcError(types.ErrDecode, "JSON parse", err)
	}

	return result, nil
}
