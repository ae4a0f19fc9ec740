package routes

import (
	"servihub/internal/adapter/http/handlers"
	"servihub/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathServices = "/services"
	PathQuotes   = "/quotes"
	PathPayments = "/payments"
)

func addMarketplaceRoutes(
	rg *gin.RouterGroup,
	serviceHandler *handlers.ServiceHandler,
	quoteHandler *handlers.QuoteHandler,
	lifecycleHandler *handlers.LifecycleHandler,
	settlementHandler *handlers.SettlementHandler,
) {
	services := rg.Group(PathServices)
	{
		services.POST("", middleware.RequireRole(middleware.RoleClient), serviceHandler.CreateService)
		services.GET("", serviceHandler.ListMyServices)
		services.GET("/:id", serviceHandler.GetService)
		services.PATCH("/:id/cancel", middleware.RequireRole(middleware.RoleClient), serviceHandler.CancelService)

		services.POST("/:id/quotes", middleware.RequireRole(middleware.RoleProfessional), quoteHandler.CreateQuote)
		services.GET("/:id/quotes", quoteHandler.ListQuotesByService)

		// On-site execution; professionals only, except the shared sign-off.
		pro := middleware.RequireRole(middleware.RoleProfessional)
		services.PATCH("/:id/route/start", pro, lifecycleHandler.StartRoute)
		services.PATCH("/:id/route/location", pro, lifecycleHandler.ReportLocation)
		services.PATCH("/:id/route/arrived", pro, lifecycleHandler.MarkArrived)
		services.PATCH("/:id/route/code", pro, lifecycleHandler.RegenerateCode)
		services.PATCH("/:id/route/verify", pro, lifecycleHandler.VerifyAndStart)
		services.PATCH("/:id/sign", lifecycleHandler.Sign)
		services.PATCH("/:id/complete", pro, lifecycleHandler.Complete)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("", quoteHandler.ListMyQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PATCH("/:id/accept", middleware.RequireRole(middleware.RoleClient), quoteHandler.AcceptQuote)
		quotes.PATCH("/:id/reject", middleware.RequireRole(middleware.RoleClient), quoteHandler.RejectQuote)

		quotes.POST("/:id/payments", middleware.RequireRole(middleware.RoleClient), settlementHandler.SettleQuote)
		quotes.GET("/:id/payments", settlementHandler.ListPaymentsByQuote)
	}

	payments := rg.Group(PathPayments)
	{
		payments.GET("/:id", settlementHandler.GetPayment)
		payments.PATCH("/:id/refund", middleware.RequireRole(middleware.RoleClient), settlementHandler.RefundPayment)
	}
}
