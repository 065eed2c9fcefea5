package queries

import (
	"context"

	"production/internal/core/domain/model/mixorder"
)

type ListMixOrdersQueryHandler struct {
	reader MixOrderReader
}

func NewListMixOrdersQueryHandler(reader MixOrderReader) ListMixOrdersQueryHandler {
	return ListMixOrdersQueryHandler{reader: reader}
}

func (h ListMixOrdersQueryHandler) Handle(ctx context.Context, query ListMixOrdersQuery) ([]mixorder.Document, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.List(ctx, query.TenantID(), query.Filter())
	if err != nil {
		return nil, err
	}

	docs := make([]mixorder.Document, 0, len(orders))
	for _, o := range orders {
		docs = append(docs, o.ToDocument())
	}
	return docs, nil
}
