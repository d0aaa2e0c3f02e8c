package restapi

import (
	"net/http/pprof"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterOptions toggles the auxiliary endpoints.
type RouterOptions struct {
	SwaggerEnabled  bool
	SwaggerSpecFile string
	EnablePprof     bool
}

// SetupRouter configures and returns the gin engine.
func SetupRouter(
	sessionHandler *SessionHandler,
	portfolioHandler *PortfolioHandler,
	paymentHandler *PaymentHandler,
	opts RouterOptions,
	zapLogger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization",
		HeaderWebkitHandler, HeaderContext, HeaderContextGetter,
	}
	router.Use(cors.New(corsConfig))
	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/session", sessionHandler.GetSessionHandler)
		v1.POST("/session", sessionHandler.AuthenticateHandler)
		v1.DELETE("/session", sessionHandler.DisconnectHandler)

		v1.GET("/portfolio", portfolioHandler.GetPortfolioHandler)
		v1.POST("/portfolio/refresh", portfolioHandler.RefreshPortfolioHandler)
		v1.GET("/assets/cache", portfolioHandler.GetPriceCacheHandler)
		v1.GET("/assets/:assetID", portfolioHandler.GetAssetHandler)

		v1.POST("/pay/spot", paymentHandler.SpotPayHandler)
		v1.POST("/pay", paymentHandler.PayHandler)
		v1.POST("/share", paymentHandler.ShareHandler)
		v1.GET("/memo/:memo", paymentHandler.DecodeMemoHandler)
		v1.GET("/bridge", paymentHandler.BridgeHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.SwaggerEnabled {
		router.StaticFile("/docs/swagger.yaml", opts.SwaggerSpecFile)
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	}

	if opts.EnablePprof {
		pprofRouter := router.Group("/debug/pprof")
		{
			pprofRouter.GET("/", gin.WrapF(pprof.Index))
			pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
			pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
			pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
			pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
			pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
			pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
			pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
			pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		}
	}

	return router
}
