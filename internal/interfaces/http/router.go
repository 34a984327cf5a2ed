package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthHandler       *AuthHandler
	MasterDataHandler *MasterDataHandler
	JWTSecret         string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	api.Post("/auth/login", deps.AuthHandler.Login)

	// Datos maestros: solo administradores
	masterData := api.Group("/master-data", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	masterData.Post("/import", deps.MasterDataHandler.Import)
	masterData.Get("/template", deps.MasterDataHandler.Template)
}
