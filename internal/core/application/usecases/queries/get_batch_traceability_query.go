package queries

import (
	"errors"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// DefaultGenealogyDepth bounds how many generations the genealogy walk follows in each direction.
const (
	DefaultGenealogyDepth = 10
	MaxGenealogyDepth     = 50
)

var ErrGetBatchTraceabilityQueryIsNotConstructed = errors.New(
	"GetBatchTraceabilityQuery must be created via NewGetBatchTraceabilityQuery constructor",
)

// GetBatchTraceabilityQuery returns the trace record of a batch together with
// its genealogy: ancestors reached through parent batches and descendants
// that list it as a parent.
//
// Example:
//
//	query, err := NewGetBatchTraceabilityQuery(tenantID, batchID, 0)
//	if err != nil {
//	    return err
//	}
//	trace, err := handler.Handle(ctx, query)
//	for _, ancestor := range trace.Ancestors {
//	    fmt.Println(ancestor.Depth, ancestor.Record.BatchNumber)
//	}
type GetBatchTraceabilityQuery struct {
	tenantID kernel.UUID
	batchID  kernel.UUID
	maxDepth int

	guard guard.ConstructorGuard
}

// NewGetBatchTraceabilityQuery creates the query. A zero maxDepth means DefaultGenealogyDepth.
func NewGetBatchTraceabilityQuery(tenantID, batchID kernel.UUID, maxDepth int) (GetBatchTraceabilityQuery, error) {
	var errList []error
	errList = append(errList, tenantID.Validate(), batchID.Validate())
	if maxDepth < 0 || maxDepth > MaxGenealogyDepth {
		errList = append(errList, errs.NewValueIsOutOfRangeError("maxDepth", maxDepth, 0, MaxGenealogyDepth))
	}
	if err := errors.Join(errList...); err != nil {
		return GetBatchTraceabilityQuery{}, err
	}
	if maxDepth == 0 {
		maxDepth = DefaultGenealogyDepth
	}
	return GetBatchTraceabilityQuery{
		tenantID: tenantID,
		batchID:  batchID,
		maxDepth: maxDepth,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetBatchTraceabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchTraceabilityQueryIsNotConstructed)
}

func (q GetBatchTraceabilityQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetBatchTraceabilityQuery) BatchID() kernel.UUID {
	return q.batchID
}

func (q GetBatchTraceabilityQuery) MaxDepth() int {
	return q.maxDepth
}

// RelatedBatch is a batch reached from the traced batch, Depth generations away.
type RelatedBatch struct {
	Depth  int                    `json:"depth"`
	Record batch.TraceabilityData `json:"record"`
}

// BatchTraceability is the read model returned by GetBatchTraceabilityQueryHandler.
type BatchTraceability struct {
	Batch       batch.TraceabilityData `json:"batch"`
	Ancestors   []RelatedBatch         `json:"ancestors"`
	Descendants []RelatedBatch         `json:"descendants"`
	// MissingParents lists parent references that no longer resolve to a stored batch.
	MissingParents []string `json:"missingParents,omitempty"`
	Truncated      bool     `json:"truncated"`
}
