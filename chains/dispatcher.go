package chains

import (
	"github.com/sisu-network/solrpc/types"
)

type Dispatcher interface {
	Start()
	Dispatch(request *types.DispatchedTxRequest) *types.DispatchedTxResult
}
