package internal

import (
	"net/http"
	"pad/internal/controllers"
	"pad/internal/providers"
	"pad/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/event/login", http.HandlerFunc(apiController.Login))
	routers.Post("/event/quit", http.HandlerFunc(apiController.Quit))
	routers.Post("/event/switch", http.HandlerFunc(apiController.Switch))
	routers.Post("/event/online", http.HandlerFunc(apiController.Online))
	routers.Get("/player", http.HandlerFunc(apiController.GetPlayer))
	routers.Get("/summary", http.HandlerFunc(apiController.GetSummary))
	routers.Post("/report/generate", http.HandlerFunc(apiController.GenerateReport))
	return routers
}
