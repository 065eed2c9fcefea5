package queries

import (
	"context"

	"production/internal/core/domain/model/mixorder"
)

type GetMixOrderQueryHandler struct {
	reader MixOrderReader
}

func NewGetMixOrderQueryHandler(reader MixOrderReader) GetMixOrderQueryHandler {
	return GetMixOrderQueryHandler{reader: reader}
}

func (h GetMixOrderQueryHandler) Handle(ctx context.Context, query GetMixOrderQuery) (mixorder.Document, error) {
	if err := query.Validate(); err != nil {
		return mixorder.Document{}, err
	}

	order, err := h.reader.Get(ctx, query.TenantID(), query.MixOrderID())
	if err != nil {
		return mixorder.Document{}, err
	}
	return order.ToDocument(), nil
}
