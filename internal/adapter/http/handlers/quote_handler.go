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

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler exposes the quote ledger: submission by professionals, the
// client's accept/reject decision, and listings for both sides.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Create(c.Request.Context(), c.Param("id"), middleware.ActorID(c), payload.ToInput())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) ListQuotesByService(c *gin.Context) {
	status := entities.QuoteStatus(c.Query("status"))

	quotes, err := h.usecase.ListByService(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// ListMyQuotes lists the authenticated actor's quotes: the professional's own
// offers, or every quote against the client's services.
func (h *QuoteHandler) ListMyQuotes(c *gin.Context) {
	status := entities.QuoteStatus(c.Query("status"))

	var (
		quotes []entities.Quote
		err    error
	)
	switch middleware.ActorRole(c) {
	case middleware.RoleProfessional:
		quotes, err = h.usecase.ListByProfessional(c.Request.Context(), middleware.ActorID(c), status)
	default:
		quotes, err = h.usecase.ListByClient(c.Request.Context(), middleware.ActorID(c), status)
	}
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	quote, err := h.usecase.Accept(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	quote, err := h.usecase.Reject(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, usecase.ErrInvalidServiceID),
		errors.Is(err, usecase.ErrInvalidProfessionalID),
		errors.Is(err, usecase.ErrInvalidMaterial),
		errors.Is(err, usecase.ErrInvalidLabor),
		errors.Is(err, usecase.ErrInvalidValidUntil):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotQuoteClient):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Actor is not the client of this quote", http.StatusForbidden)
	case errors.Is(err, usecase.ErrDuplicateQuote):
		return pkg.NewDomainErrorSimple("DUPLICATE_QUOTE", "An open quote already exists for this service", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteExpired):
		return pkg.NewDomainErrorSimple("QUOTE_EXPIRED", "Quote expired", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrQuoteNotPending):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_PENDING", "Quote is not pending", http.StatusConflict)
	case errors.Is(err, usecase.ErrServiceNotAcceptingQuotes):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_ACCEPTING_QUOTES", "Service is no longer accepting quotes", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
