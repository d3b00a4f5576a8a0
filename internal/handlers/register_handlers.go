package handlers

import (
	"net/http"

	"github.com/SscSPs/accounting_backoffice/cmd/docs"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/SscSPs/accounting_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes on r.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	RegisterAPIRoutes(v1, services)

	setupSwaggerRoutes(r, cfg)
}

// RegisterAPIRoutes attaches every resource group to rg. Authentication is the caller's concern.
func RegisterAPIRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	registerAccountRoutes(rg, services.Account)
	registerJournalEntryRoutes(rg, services.JournalEntry)
	registerBankTransferRoutes(rg, services.BankTransfer)
	registerVoucherRoutes(rg, services.Voucher)
	registerBudgetRoutes(rg, services.Budget)
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
