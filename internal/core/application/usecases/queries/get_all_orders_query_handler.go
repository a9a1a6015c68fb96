package queries

import (
	"context"
)

// GetAllOrdersQueryHandler returns orders in creation order with their items
// in insertion order. An empty store yields an empty, non-nil slice.
type GetAllOrdersQueryHandler struct {
	reader OrderReader
}

func NewGetAllOrdersQueryHandler(reader OrderReader) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{reader: reader}
}

func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, NewOrderResponse(o))
	}

	return responses, nil
}
