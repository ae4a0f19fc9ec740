package handlers

import (
	"errors"
	"net/http"

	request "servihub/internal/adapter/http/dto/request"
	response "servihub/internal/adapter/http/dto/response"
	"servihub/internal/adapter/http/middleware"
	"servihub/internal/domain/entities"
	"servihub/internal/usecase"
	"servihub/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidSettlementPayload = pkg.NewDomainErrorSimple("INVALID_SETTLEMENT_INPUT", "Invalid settlement payload", http.StatusBadRequest)

// SettlementHandler exposes payment settlement: the client pays an accepted
// quote, and may later get a completed payment refunded.
type SettlementHandler struct {
	usecase usecase.ISettlementUseCase
}

func NewSettlementHandler(uc usecase.ISettlementUseCase) *SettlementHandler {
	return &SettlementHandler{usecase: uc}
}

func (h *SettlementHandler) SettleQuote(c *gin.Context) {
	var payload request.SettleQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSettlementPayload.HTTPStatus, errInvalidSettlementPayload.ToHTTPError())
		return
	}

	payment, err := h.usecase.Settle(
		c.Request.Context(),
		c.Param("id"),
		middleware.ActorID(c),
		entities.PaymentMethod(payload.Method),
		payload.ExternalReference,
	)
	if err != nil {
		// A timed-out charge is not a failure: the payment is created and
		// stays pending until the provider outcome is known.
		if errors.Is(err, usecase.ErrGatewayTimeout) {
			c.JSON(http.StatusAccepted, response.FromPayment(payment))
			return
		}
		appErr := mapSettlementError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromPayment(payment))
}

func (h *SettlementHandler) RefundPayment(c *gin.Context) {
	payment, err := h.usecase.Refund(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		appErr := mapSettlementError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

func (h *SettlementHandler) GetPayment(c *gin.Context) {
	payment, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapSettlementError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

func (h *SettlementHandler) ListPaymentsByQuote(c *gin.Context) {
	payments, err := h.usecase.ListByQuoteID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapSettlementError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func mapSettlementError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrInvalidExternalRef):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotQuoteClient), errors.Is(err, usecase.ErrNotPaymentClient):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Actor is not the paying client", http.StatusForbidden)
	case errors.Is(err, usecase.ErrQuoteNotAccepted):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_ACCEPTED", "Quote is not accepted", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrQuoteAlreadyPaid):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_PAID", "Quote is already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotCompleted):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_COMPLETED", "Payment is not completed", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrChargeDeclined):
		return pkg.NewDomainErrorSimple("CHARGE_DECLINED", "Charge declined by payment provider", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrGatewayUnavailable):
		return pkg.NewDomainErrorSimple("GATEWAY_UNAVAILABLE", "Payment gateway is not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
