package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/courseplatform/ms-go-orders/app/factory"
	"github.com/courseplatform/ms-go-orders/app/mapper"
	"github.com/courseplatform/ms-go-orders/app/service"
	"github.com/courseplatform/ms-go-orders/app/types"
)

const (
	errCodeValidation        = "validation_error"
	errCodeGateway           = "gateway_error"
	errCodeSignatureMismatch = "signature_mismatch"
	errCodeNotFound          = "not_found"
	errCodeInvalidStatus     = "invalid_status"
	errCodeInternal          = "internal_error"
)

type OrderController struct {
	orderService *service.OrderService
	logger       logrus.FieldLogger
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
		logger:       factory.NewModuleLogger("orders-controller"),
	}
}

func (c *OrderController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	req, err := types.NewCreateOrderRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, err.Error())
	}

	item, err := c.orderService.CreateOrder(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, err.Error())
		case errors.Is(err, service.ErrGateway):
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Gateway order creation failed")
			return c.writeError(ctx, http.StatusInternalServerError, errCodeGateway, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create order failed")
			return c.writeError(ctx, http.StatusInternalServerError, errCodeInternal, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, mapper.CheckoutToResponse(item))
}

func (c *OrderController) VerifyPayment(ctx echo.Context) error {
	req, err := types.NewVerifyPaymentRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, err.Error())
	}

	_, err = c.orderService.VerifyPayment(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, err.Error())
		case errors.Is(err, service.ErrSignatureMismatch):
			return c.writeError(ctx, http.StatusBadRequest, errCodeSignatureMismatch, err.Error())
		case errors.Is(err, service.ErrOrderNotFound):
			return c.writeError(ctx, http.StatusBadRequest, errCodeNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidStatus):
			return c.writeError(ctx, http.StatusBadRequest, errCodeInvalidStatus, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Verify payment failed")
			return c.writeError(ctx, http.StatusInternalServerError, errCodeInternal, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Payment verified successfully"})
}

func (c *OrderController) GetOrdersByUser(ctx echo.Context) error {
	req, err := types.NewListOrdersRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, err.Error())
	}

	items, err := c.orderService.GetOrdersByUser(ctx.Request().Context(), req.UserID)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List orders failed")
		return c.writeError(ctx, http.StatusInternalServerError, errCodeInternal, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListOrdersResponse{Orders: mapper.OrdersToResponse(items)})
}

func (c *OrderController) GetOrder(ctx echo.Context) error {
	req, err := types.NewGetOrderRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, err.Error())
	}

	item, err := c.orderService.GetOrderByID(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.writeError(ctx, http.StatusNotFound, errCodeNotFound, "order not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get order failed")
		return c.writeError(ctx, http.StatusInternalServerError, errCodeInternal, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.OrderEnvelopeResponse{Order: mapper.OrderToResponse(item)})
}

func (c *OrderController) RefundOrder(ctx echo.Context) error {
	req, err := types.NewRefundOrderRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, errCodeValidation, err.Error())
	}

	item, err := c.orderService.RefundOrder(ctx.Request().Context(), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return c.writeError(ctx, http.StatusBadRequest, errCodeNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidStatus):
			return c.writeError(ctx, http.StatusBadRequest, errCodeInvalidStatus, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Refund order failed")
			return c.writeError(ctx, http.StatusInternalServerError, errCodeInternal, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.OrderEnvelopeResponse{Order: mapper.OrderToResponse(item)})
}

func (c *OrderController) writeError(ctx echo.Context, statusCode int, code, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Code: code, Error: message})
}
