package queries

import (
	"context"

	"production/internal/core/domain/model/mobilerun"
)

type GetMobileRunQueryHandler struct {
	reader MobileRunReader
}

func NewGetMobileRunQueryHandler(reader MobileRunReader) GetMobileRunQueryHandler {
	return GetMobileRunQueryHandler{reader: reader}
}

func (h GetMobileRunQueryHandler) Handle(ctx context.Context, query GetMobileRunQuery) (mobilerun.Document, error) {
	if err := query.Validate(); err != nil {
		return mobilerun.Document{}, err
	}

	run, err := h.reader.Get(ctx, query.TenantID(), query.MobileRunID())
	if err != nil {
		return mobilerun.Document{}, err
	}
	return run.ToDocument(), nil
}

type ListMobileRunsQueryHandler struct {
	reader MobileRunReader
}

func NewListMobileRunsQueryHandler(reader MobileRunReader) ListMobileRunsQueryHandler {
	return ListMobileRunsQueryHandler{reader: reader}
}

func (h ListMobileRunsQueryHandler) Handle(ctx context.Context, query ListMobileRunsQuery) ([]mobilerun.Document, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	runs, err := h.reader.List(ctx, query.TenantID(), query.Filter())
	if err != nil {
		return nil, err
	}

	docs := make([]mobilerun.Document, 0, len(runs))
	for _, r := range runs {
		docs = append(docs, r.ToDocument())
	}
	return docs, nil
}
