package models

import "errors"

// Engine error taxonomy. Store and service layers wrap these with context;
// handlers map them to HTTP status codes with errors.Is.
var (
	// ErrUnsupportedFormat means the uploaded file's header set was not
	// recognized for the declared platform. Fatal to that parse; the
	// operator must re-select platform or file.
	ErrUnsupportedFormat = errors.New("unsupported export file format")

	// ErrReferenceFetch means the price table or reservation window fetch
	// failed or timed out. Fatal to the batch and retryable as-is; matching
	// never runs against partial reference data.
	ErrReferenceFetch = errors.New("reference data fetch failed")

	// ErrBatchNotFound means no settlement batch exists for the given id.
	ErrBatchNotFound = errors.New("settlement batch not found")

	// ErrBatchAlreadyConfirmed guards confirmation idempotence: confirming
	// a confirmed batch is an error, never a mutation.
	ErrBatchAlreadyConfirmed = errors.New("settlement batch already confirmed")

	// ErrAmbiguousRows blocks confirmation while any row is still AMBIGUOUS.
	ErrAmbiguousRows = errors.New("batch contains ambiguous rows")

	// ErrSettlementConflict means a target reservation was settled by
	// another batch between matching and confirmation. The whole
	// confirmation aborts; the batch must be re-matched.
	ErrSettlementConflict = errors.New("reservation already settled by another batch")
)
