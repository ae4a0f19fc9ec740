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

var errInvalidLifecyclePayload = pkg.NewDomainErrorSimple("INVALID_LIFECYCLE_INPUT", "Invalid payload", http.StatusBadRequest)

// LifecycleHandler drives the on-site route state machine of an in-progress
// service. Every route endpoint acts on behalf of the assigned professional
// except Sign, which both parties may call.
type LifecycleHandler struct {
	usecase usecase.ILifecycleUseCase
}

func NewLifecycleHandler(uc usecase.ILifecycleUseCase) *LifecycleHandler {
	return &LifecycleHandler{usecase: uc}
}

func (h *LifecycleHandler) StartRoute(c *gin.Context) {
	service, err := h.usecase.StartRoute(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	h.respond(c, service, err)
}

func (h *LifecycleHandler) ReportLocation(c *gin.Context) {
	var payload request.ReportLocationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidLifecyclePayload.HTTPStatus, errInvalidLifecyclePayload.ToHTTPError())
		return
	}

	service, err := h.usecase.ReportLocation(c.Request.Context(), c.Param("id"), middleware.ActorID(c), payload.ToLocation())
	h.respond(c, service, err)
}

func (h *LifecycleHandler) MarkArrived(c *gin.Context) {
	service, err := h.usecase.MarkArrived(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	h.respond(c, service, err)
}

func (h *LifecycleHandler) RegenerateCode(c *gin.Context) {
	service, err := h.usecase.RegenerateCode(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	h.respond(c, service, err)
}

func (h *LifecycleHandler) VerifyAndStart(c *gin.Context) {
	var payload request.VerifyCodeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidLifecyclePayload.HTTPStatus, errInvalidLifecyclePayload.ToHTTPError())
		return
	}

	service, err := h.usecase.VerifyAndStart(c.Request.Context(), c.Param("id"), middleware.ActorID(c), payload.Code)
	h.respond(c, service, err)
}

func (h *LifecycleHandler) Sign(c *gin.Context) {
	var payload request.SignServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidLifecyclePayload.HTTPStatus, errInvalidLifecyclePayload.ToHTTPError())
		return
	}

	service, err := h.usecase.Sign(c.Request.Context(), c.Param("id"), usecase.SignInput{
		ActorID:       middleware.ActorID(c),
		ActorRole:     middleware.ActorRole(c),
		SignatureBlob: payload.SignatureBlob,
	})
	h.respond(c, service, err)
}

func (h *LifecycleHandler) Complete(c *gin.Context) {
	service, err := h.usecase.Complete(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	h.respond(c, service, err)
}

func (h *LifecycleHandler) respond(c *gin.Context, service entities.Service, err error) {
	if err != nil {
		appErr := mapLifecycleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromService(service))
}

func mapLifecycleError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceID),
		errors.Is(err, usecase.ErrInvalidProfessionalID),
		errors.Is(err, usecase.ErrInvalidLocation),
		errors.Is(err, usecase.ErrInvalidCode),
		errors.Is(err, usecase.ErrInvalidSignature):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotAssignedProfessional), errors.Is(err, usecase.ErrNotSignParty):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Actor may not act on this service", http.StatusForbidden)
	case errors.Is(err, usecase.ErrServiceNotInProgress),
		errors.Is(err, usecase.ErrNoAcceptedQuote),
		errors.Is(err, usecase.ErrQuoteNotPaid),
		errors.Is(err, usecase.ErrNotSigned):
		return pkg.NewDomainErrorSimple("INVALID_STATE", err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidRouteTransition), errors.Is(err, usecase.ErrAlreadySigned):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrCodeMismatch):
		return pkg.NewDomainErrorSimple("CODE_MISMATCH", "Verification code does not match", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrCodeExpired):
		return pkg.NewDomainErrorSimple("CODE_EXPIRED", "Verification code expired", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
