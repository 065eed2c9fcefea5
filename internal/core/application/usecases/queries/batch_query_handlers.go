package queries

import (
	"context"

	"production/internal/core/domain/model/batch"
)

type GetBatchQueryHandler struct {
	reader BatchReader
}

func NewGetBatchQueryHandler(reader BatchReader) GetBatchQueryHandler {
	return GetBatchQueryHandler{reader: reader}
}

func (h GetBatchQueryHandler) Handle(ctx context.Context, query GetBatchQuery) (batch.Document, error) {
	if err := query.Validate(); err != nil {
		return batch.Document{}, err
	}

	b, err := h.reader.Get(ctx, query.TenantID(), query.BatchID())
	if err != nil {
		return batch.Document{}, err
	}
	return b.ToDocument(), nil
}

type ListBatchesQueryHandler struct {
	reader BatchReader
}

func NewListBatchesQueryHandler(reader BatchReader) ListBatchesQueryHandler {
	return ListBatchesQueryHandler{reader: reader}
}

func (h ListBatchesQueryHandler) Handle(ctx context.Context, query ListBatchesQuery) ([]batch.Document, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	batches, err := h.reader.List(ctx, query.TenantID(), query.Filter())
	if err != nil {
		return nil, err
	}

	docs := make([]batch.Document, 0, len(batches))
	for _, b := range batches {
		docs = append(docs, b.ToDocument())
	}
	return docs, nil
}
