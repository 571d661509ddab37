package mapper

import (
	"time"

	"github.com/courseplatform/ms-go-orders/app/entity"
	"github.com/courseplatform/ms-go-orders/app/service"
	"github.com/courseplatform/ms-go-orders/app/types"
)

func OrderToResponse(item *entity.Order) *types.Order {
	if item == nil {
		return nil
	}

	return &types.Order{
		ID:              item.ID,
		UserID:          item.UserID,
		CourseID:        item.CourseID,
		Amount:          types.MajorUnits(item.AmountCents),
		Currency:        item.Currency,
		ExternalOrderID: item.ExternalOrderID,
		Status:          item.Status,
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func OrdersToResponse(items []*entity.Order) []*types.Order {
	result := make([]*types.Order, 0, len(items))
	for _, item := range items {
		result = append(result, OrderToResponse(item))
	}
	return result
}

func CheckoutToResponse(item *service.CheckoutOrder) *types.CreateOrderResponse {
	if item == nil || item.Order == nil {
		return nil
	}

	return &types.CreateOrderResponse{
		ExternalOrderID: item.Order.ExternalOrderID,
		KeyID:           item.KeyID,
		Amount:          types.MajorUnits(item.Order.AmountCents),
		Currency:        item.Order.Currency,
		OrderID:         item.Order.ID,
	}
}
