package queries

import (
	"context"
	"errors"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

type GetBatchTraceabilityQueryHandler struct {
	reader BatchReader
}

func NewGetBatchTraceabilityQueryHandler(reader BatchReader) GetBatchTraceabilityQueryHandler {
	return GetBatchTraceabilityQueryHandler{reader: reader}
}

// Handle walks the genealogy breadth-first in both directions. Every batch is
// reported once at its shortest distance, so cycles in the parent graph terminate.
func (h GetBatchTraceabilityQueryHandler) Handle(
	ctx context.Context,
	query GetBatchTraceabilityQuery,
) (BatchTraceability, error) {
	if err := query.Validate(); err != nil {
		return BatchTraceability{}, err
	}

	tenantID := query.TenantID()
	root, err := h.reader.Get(ctx, tenantID, query.BatchID())
	if err != nil {
		return BatchTraceability{}, err
	}

	result := BatchTraceability{
		Batch:       root.TraceabilityData(),
		Ancestors:   make([]RelatedBatch, 0),
		Descendants: make([]RelatedBatch, 0),
	}

	ancestors, missing, truncated, err := h.walk(ctx, root, query.MaxDepth(), func(b batch.Batch) ([]batch.Batch, []kernel.UUID, error) {
		return h.parents(ctx, tenantID, b)
	})
	if err != nil {
		return BatchTraceability{}, err
	}
	result.Ancestors = ancestors
	result.Truncated = truncated
	for _, id := range missing {
		result.MissingParents = append(result.MissingParents, id.String())
	}

	descendants, _, truncated, err := h.walk(ctx, root, query.MaxDepth(), func(b batch.Batch) ([]batch.Batch, []kernel.UUID, error) {
		children, err := h.reader.ListChildren(ctx, tenantID, b.ID())
		return children, nil, err
	})
	if err != nil {
		return BatchTraceability{}, err
	}
	result.Descendants = descendants
	result.Truncated = result.Truncated || truncated

	return result, nil
}

type expandFunc func(batch.Batch) (related []batch.Batch, missing []kernel.UUID, err error)

func (h GetBatchTraceabilityQueryHandler) walk(
	ctx context.Context,
	root batch.Batch,
	maxDepth int,
	expand expandFunc,
) ([]RelatedBatch, []kernel.UUID, bool, error) {
	seen := map[kernel.UUID]struct{}{root.ID(): {}}
	related := make([]RelatedBatch, 0)
	var missing []kernel.UUID

	frontier := []batch.Batch{root}
	for depth := 1; len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, false, err
		}

		var next []batch.Batch
		for _, b := range frontier {
			found, gone, err := expand(b)
			if err != nil {
				return nil, nil, false, err
			}
			for _, id := range gone {
				if _, ok := seen[id]; !ok {
					seen[id] = struct{}{}
					missing = append(missing, id)
				}
			}
			for _, r := range found {
				if _, ok := seen[r.ID()]; ok {
					continue
				}
				seen[r.ID()] = struct{}{}
				next = append(next, r)
			}
		}
		if len(next) == 0 {
			break
		}
		if depth > maxDepth {
			return related, missing, true, nil
		}
		for _, r := range next {
			related = append(related, RelatedBatch{Depth: depth, Record: r.TraceabilityData()})
		}
		frontier = next
	}
	return related, missing, false, nil
}

func (h GetBatchTraceabilityQueryHandler) parents(
	ctx context.Context,
	tenantID kernel.UUID,
	b batch.Batch,
) ([]batch.Batch, []kernel.UUID, error) {
	var found []batch.Batch
	var missing []kernel.UUID
	for _, id := range b.ParentBatches() {
		parent, err := h.reader.Get(ctx, tenantID, id)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			missing = append(missing, id)
		case err != nil:
			return nil, nil, err
		default:
			found = append(found, parent)
		}
	}
	return found, missing, nil
}
