package types

// RpcErrorKind classifies the step of an RPC call that failed.
type RpcErrorKind int

const (
	ErrNil        RpcErrorKind = iota // no error
	ErrTransport                      // session could not be opened or the request not issued
	ErrSerialize                      // outgoing envelope or transaction could not be encoded
	ErrWrite                          // body write or submit rejected by the transport
	ErrHttpStatus                     // status outside 200-299
	ErrRead                           // transport failed while draining the body
	ErrDecode                         // body is not UTF-8 text or not JSON
	ErrShape                          // a required field is missing or has the wrong type
	ErrServer                         // server returned a JSON-RPC error object
)

func (k RpcErrorKind) String() string {
	switch k {
	case ErrNil:
		return "nil"
	case ErrTransport:
		return "transport"
	case ErrSerialize:
		return "serialize"
	case ErrWrite:
		return "write"
	case ErrHttpStatus:
		return "http status"
	case ErrRead:
		return "read"
	case ErrDecode:
		return "decode"
	case ErrShape:
		return "shape"
	case ErrServer:
		return "server"
	}

	return "unknown"
}
