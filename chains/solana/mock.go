package solana

import (
	solanatypes "github.com/sisu-network/solrpc/chains/solana/types"
)

type MockRpcClient struct {
	CallFunc func(method solanatypes.RpcMethod) (interface{}, error)
}

func (c *MockRpcClient) Call(method solanatypes.RpcMethod) (interface{}, error) {
	if c.CallFunc != nil {
		return c.CallFunc(method)
	}

	return nil, nil
}
