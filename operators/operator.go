// Package operators implements the two operators this module specifies:
// GetTable, a trivial named source, and TableScan, a type-dispatched
// predicate scan with three encoding-specific strategies. Both produce a
// *storage.Table or fail; there are no partial results.
package operators

import "columnstore/storage"

// Operator is satisfied by every node in an operator pipeline: it
// executes fully on the calling goroutine and returns its complete
// output or an error, never a partial result.
type Operator interface {
	Execute() (*storage.Table, error)
}
