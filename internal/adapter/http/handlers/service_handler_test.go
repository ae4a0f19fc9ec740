package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servihub/internal/adapter/http/handlers/mocks"
	"servihub/internal/adapter/http/middleware"
	"servihub/internal/domain/entities"
	"servihub/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

// actAs injects the authenticated actor the way the auth middleware does.
func actAs(id, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxActorID, id)
		c.Set(middleware.CtxActorRole, role)
	}
}

func TestServiceHandler_CreateService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := gin.New()
		r.POST("/v1/services", actAs("cli-1", middleware.RoleClient), h.CreateService)

		req := httptest.NewRequest(http.MethodPost, "/v1/services", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase rejects the budget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := gin.New()
		r.POST("/v1/services", actAs("cli-1", middleware.RoleClient), h.CreateService)

		uc.EXPECT().Create(gomock.Any(), "cli-1", gomock.Any()).Return(entities.Service{}, usecase.ErrInvalidBudgetRange)

		body := `{"title":"Paint","category":"painting","budget_min":500,"budget_max":100,"deadline":"2026-10-01T00:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/services", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := gin.New()
		r.POST("/v1/services", actAs("cli-1", middleware.RoleClient), h.CreateService)

		now := time.Now().UTC()
		uc.EXPECT().Create(gomock.Any(), "cli-1", gomock.Any()).DoAndReturn(
			func(_ any, _ string, in usecase.CreateServiceInput) (entities.Service, error) {
				if in.Title != "Paint" || in.Priority != entities.ServicePriorityHigh {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Service{
					ID: "svc-1", ClientID: "cli-1", Title: in.Title,
					Status: entities.ServiceStatusPending, RouteStatus: entities.RouteStatusNotStarted,
					CreatedAt: now, UpdatedAt: now,
				}, nil
			})

		body := `{"title":"Paint","category":"painting","budget_min":100,"budget_max":500,"priority":"high","deadline":"2026-10-01T00:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/services", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp["id"] != "svc-1" || resp["status"] != "pending" {
			t.Fatalf("unexpected response: %v", resp)
		}
	})
}

func TestServiceHandler_GetService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := gin.New()
		r.GET("/v1/services/:id", h.GetService)

		uc.EXPECT().GetByID(gomock.Any(), "svc-404").Return(entities.Service{}, usecase.ErrServiceNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/services/svc-404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("verification code never leaks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := gin.New()
		r.GET("/v1/services/:id", h.GetService)

		expires := time.Now().UTC().Add(10 * time.Minute)
		uc.EXPECT().GetByID(gomock.Any(), "svc-1").Return(entities.Service{
			ID: "svc-1", ClientID: "cli-1",
			Status: entities.ServiceStatusInProgress, RouteStatus: entities.RouteStatusArrived,
			VerificationCode: "12345", VerificationCodeExpiresAt: &expires,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/services/svc-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if bytes.Contains(w.Body.Bytes(), []byte("12345")) {
			t.Fatal("verification code must not appear in the response")
		}
	})
}

func TestServiceHandler_CancelService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("forbidden for another client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := gin.New()
		r.PATCH("/v1/services/:id/cancel", actAs("cli-2", middleware.RoleClient), h.CancelService)

		uc.EXPECT().Cancel(gomock.Any(), "svc-1", "cli-2").Return(entities.Service{}, usecase.ErrNotServiceOwner)

		req := httptest.NewRequest(http.MethodPatch, "/v1/services/svc-1/cancel", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("conflict when already accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		h := NewServiceHandler(uc)

		r := gin.New()
		r.PATCH("/v1/services/:id/cancel", actAs("cli-1", middleware.RoleClient), h.CancelService)

		uc.EXPECT().Cancel(gomock.Any(), "svc-1", "cli-1").Return(entities.Service{}, usecase.ErrServiceNotPending)

		req := httptest.NewRequest(http.MethodPatch, "/v1/services/svc-1/cancel", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}
