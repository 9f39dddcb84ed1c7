package handler

import (
	"net/http"
	"strings"

	"github.com/dperales2022/atmirasalesproposals/middleware"
	"github.com/dperales2022/atmirasalesproposals/schema"
	"github.com/dperales2022/atmirasalesproposals/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the HTTP surface: the extract endpoint (also under
// /api/v1), the variant listing and a health check. A known path asked for
// with a method it does not serve gets 405 with an Allow header.
func NewRouter(svc ExtractionService, registry *schema.Registry, log *zap.SugaredLogger) *gin.Engine {
	corsHandler := NewCorsHandler()
	extractHandler := NewExtractHandler(svc, registry, log)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		middleware.RequestID,
		middleware.AccessLog(log),
		middleware.Recovery(log),
		corsHandler.CorsMiddleware,
	)
	router.NoRoute(HandleNotFound)

	router.POST("/extract", extractHandler.HandleExtract)
	router.GET("/variants", extractHandler.HandleVariants)
	router.GET("/healthz", HandleHealth)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/extract", extractHandler.HandleExtract)
		apiV1.GET("/variants", extractHandler.HandleVariants)
	}

	router.NoMethod(HandleMethodNotAllowed(allowedMethods(router.Routes())))
	return router
}

// allowedMethods maps each registered path to its Allow header value.
func allowedMethods(routes gin.RoutesInfo) map[string]string {
	byPath := make(map[string][]string)
	for _, r := range routes {
		byPath[r.Path] = append(byPath[r.Path], r.Method)
	}
	allow := make(map[string]string, len(byPath))
	for path, methods := range byPath {
		allow[path] = strings.Join(methods, ", ")
	}
	return allow
}

func HandleMethodNotAllowed(allow map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if methods, ok := allow[c.Request.URL.Path]; ok {
			c.Header("Allow", methods)
		}
		c.JSON(http.StatusMethodNotAllowed, types.MessageResponse{Message: msgMethodNotAllowed})
	}
}
