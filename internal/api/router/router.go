package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsio/esignpro-backend/internal/api/handler"
	"github.com/opsio/esignpro-backend/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	documentHandler *handler.DocumentHandler,
	templateHandler *handler.TemplateHandler,
	signatureHandler *handler.SignatureHandler,
	signatureAdminHandler *handler.SignatureAdminHandler,
	mode string,
) *gin.Engine {
	gin.SetMode(mode)
	r := gin.New()

	r.Use(middleware.RecoveryMiddleware())
	r.Use(gin.Logger())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	// operational endpoints
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		documents := api.Group("/documents")
		{
			documents.POST("/generate", documentHandler.GenerateDocument)
			documents.GET("/:id", documentHandler.GetDocument)
		}

		cases := api.Group("/cases")
		{
			cases.GET("/:caseId/documents", documentHandler.ListCaseDocuments)
		}

		templates := api.Group("/templates")
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.GET("/:id", templateHandler.GetTemplate)
		}

		signatures := api.Group("/signatures")
		{
			signatures.POST("/case/:caseId", signatureHandler.CreateCaseSignature)
		}

		clients := api.Group("/clients")
		{
			clients.GET("/:clientId/signatures", signatureHandler.ListClientSignatures)
		}

		// administrative repair operations
		admin := api.Group("/admin")
		{
			admin.POST("/signatures/reconcile", signatureAdminHandler.ReconcileSignatures)
			admin.POST("/clients/:clientId/signatures/reactivate", signatureAdminHandler.ReactivateSignatures)
			admin.POST("/clients/:clientId/signatures/:signatureId/default", signatureAdminHandler.SetDefaultSignature)
		}
	}

	return r
}
