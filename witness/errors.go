package witness

import "github.com/go-errors/errors"

// Merge-reveal errors, the Go analogues of anchors.rs's SealWitnessMergeError
// and PubWitness merge_reveal error path.
var (
	// ErrTxidMismatch is returned when merging two PubWitness values
	// whose txids differ; they cannot be the same logical witness.
	ErrTxidMismatch = errors.New("witness: txid mismatch in merge-reveal")

	// ErrDbcMismatch is returned when merging two SealWitness values
	// whose dbc_proof fields are not exactly equal.
	ErrDbcMismatch = errors.New("witness: dbc proof mismatch in merge-reveal")
)
