package resolver

import (
	"errors"
	"fmt"

	"github.com/lnp-bp/rgbcore/seal"
)

// ErrWrongChainNet is returned by CheckChainNet when the backing
// service's genesis hash doesn't match the network this engine expects.
// A failed Electrum verbose-transaction probe is reported as a
// ResolverIssueError instead.
var ErrWrongChainNet = errors.New("resolver: backing service is on the wrong chain/network")

// ErrInvalidResolverData is returned when a backend answers with data
// this engine cannot interpret (malformed hex, an out-of-range
// confirmation count, a missing expected field).
var ErrInvalidResolverData = errors.New("resolver: backend returned data this engine could not interpret")

// ResolverIssueError wraps a transport or protocol-level failure talking
// to a backend, optionally scoped to a specific witness id. Grounded on
// channeldb/error.go's flat sentinel-error idiom, upgraded to a struct
// since the Rust original's ResolverIssue carries an Option<Txid> plus a
// message.
type ResolverIssueError struct {
	Txid    *seal.Txid
	Message string
}

func (e ResolverIssueError) Error() string {
	if e.Txid != nil {
		return fmt.Sprintf("resolver: issue resolving %s: %s", *e.Txid, e.Message)
	}
	return fmt.Sprintf("resolver: issue: %s", e.Message)
}
