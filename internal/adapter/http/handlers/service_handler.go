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

var errInvalidServicePayload = pkg.NewDomainErrorSimple("INVALID_SERVICE_INPUT", "Invalid service payload", http.StatusBadRequest)

// ServiceHandler exposes the client-facing job posting operations.
type ServiceHandler struct {
	usecase usecase.IServiceUseCase
}

func NewServiceHandler(uc usecase.IServiceUseCase) *ServiceHandler {
	return &ServiceHandler{usecase: uc}
}

func (h *ServiceHandler) CreateService(c *gin.Context) {
	var payload request.CreateServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServicePayload.HTTPStatus, errInvalidServicePayload.ToHTTPError())
		return
	}

	service, err := h.usecase.Create(c.Request.Context(), middleware.ActorID(c), payload.ToInput())
	if err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromService(service))
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	service, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromService(service))
}

// ListMyServices returns the authenticated client's services, optionally
// filtered with ?status=.
func (h *ServiceHandler) ListMyServices(c *gin.Context) {
	status := entities.ServiceStatus(c.Query("status"))

	services, err := h.usecase.ListByClient(c.Request.Context(), middleware.ActorID(c), status)
	if err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServices(services))
}

func (h *ServiceHandler) CancelService(c *gin.Context) {
	service, err := h.usecase.Cancel(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromService(service))
}

func mapServiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceID),
		errors.Is(err, usecase.ErrInvalidClientID),
		errors.Is(err, usecase.ErrInvalidTitle),
		errors.Is(err, usecase.ErrInvalidCategory),
		errors.Is(err, usecase.ErrInvalidBudgetRange),
		errors.Is(err, usecase.ErrInvalidDeadline),
		errors.Is(err, usecase.ErrInvalidPriority):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotServiceOwner):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Actor does not own this service", http.StatusForbidden)
	case errors.Is(err, usecase.ErrServiceNotPending):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_PENDING", "Service is not pending", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
