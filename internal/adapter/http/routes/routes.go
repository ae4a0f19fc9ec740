package routes

import (
	"log"
	"os"
	"strconv"
	"time"

	_ "servihub/docs" // This will be auto-generated
	"servihub/internal/adapter/http/handlers"
	"servihub/internal/adapter/http/middleware"
	repository2 "servihub/internal/adapter/persistence/repository"
	"servihub/internal/infrastructure/database"
	"servihub/internal/infrastructure/events"
	"servihub/internal/infrastructure/payments"
	"servihub/internal/usecase"
	"servihub/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	serviceRepo := repository2.NewServiceDynamoRepository(ddb)
	quoteRepo := repository2.NewQuoteDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)

	var notifier interfaces.IEventNotifier
	mq, err := events.ConnectRabbitMQ()
	if err != nil {
		log.Printf("RabbitMQ notifier not configured: %v", err)
	} else {
		notifier = mq
	}

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	serviceUseCase := usecase.NewServiceUseCase(serviceRepo)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, serviceRepo, notifier)
	lifecycleUseCase := usecase.NewLifecycleUseCase(serviceRepo, quoteRepo, notifier)
	settlementUseCase := usecase.NewSettlementUseCase(paymentRepo, quoteRepo, paymentGateway, notifier)

	serviceHandler := handlers.NewServiceHandler(serviceUseCase)
	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	lifecycleHandler := handlers.NewLifecycleHandler(lifecycleUseCase)
	settlementHandler := handlers.NewSettlementHandler(settlementUseCase)

	auth := middleware.NewManager(getenvDefault("JWT_SECRET", "local-dev-secret"), 2*time.Hour)

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	authed := v1.Group("", auth.Auth())
	addMarketplaceRoutes(authed, serviceHandler, quoteHandler, lifecycleHandler, settlementHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
