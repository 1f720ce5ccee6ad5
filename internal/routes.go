package internal

import (
	"net/http"

	"ddp/internal/controllers"
	"ddp/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/extract", http.HandlerFunc(apiController.Extract))
	routers.Post("/classify", http.HandlerFunc(apiController.Classify))
	routers.Get("/platforms", http.HandlerFunc(apiController.GetPlatforms))
	return routers
}
