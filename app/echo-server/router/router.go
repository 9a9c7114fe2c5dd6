package router

import (
	"myStarCompanion/internal/middleware"
	"myStarCompanion/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/refresh", handler.RefreshToken)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.Me, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, middleware.SelfOrAdmin())
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupCharacterRoutes(api *echo.Group, handler *rest.CharacterHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	characters := api.Group("/characters", authRequired)

	characters.GET("", handler.GetAllCharacters)
	characters.GET("/:id", handler.GetCharacterByID)
	characters.POST("", handler.CreateCharacter, adminOnly)
	characters.PUT("/:id", handler.UpdateCharacter, adminOnly)
	characters.DELETE("/:id", handler.DeleteCharacter, adminOnly)
}

func SetupLightConeRoutes(api *echo.Group, handler *rest.LightConeHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	lightCones := api.Group("/light-cones", authRequired)

	lightCones.GET("", handler.GetAllLightCones)
	lightCones.GET("/:id", handler.GetLightConeByID)
	lightCones.POST("", handler.CreateLightCone, adminOnly)
	lightCones.PUT("/:id", handler.UpdateLightCone, adminOnly)
	lightCones.DELETE("/:id", handler.DeleteLightCone, adminOnly)
}

func SetupRelicRoutes(api *echo.Group, handler *rest.RelicHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	relics := api.Group("/relics", authRequired)

	relics.GET("", handler.GetAllRelics)
	relics.GET("/:id", handler.GetRelicByID)
	relics.POST("", handler.CreateRelic, adminOnly)
	relics.PUT("/:id", handler.UpdateRelic, adminOnly)
	relics.DELETE("/:id", handler.DeleteRelic, adminOnly)
}

func SetupCurrencyRoutes(api *echo.Group, handler *rest.CurrencyHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	currencies := api.Group("/currencies", authRequired)

	currencies.GET("", handler.GetAllCurrencies)
	currencies.GET("/:id", handler.GetCurrencyByID)
	currencies.POST("", handler.CreateCurrency, adminOnly)
	currencies.PUT("/:id", handler.UpdateCurrency, adminOnly)
	currencies.DELETE("/:id", handler.DeleteCurrency, adminOnly)
}

func SetupMaterialRoutes(api *echo.Group, handler *rest.MaterialHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	materials := api.Group("/materials", authRequired)

	materials.GET("", handler.GetAllMaterials)
	materials.GET("/:id", handler.GetMaterialByID)
	materials.POST("", handler.CreateMaterial, adminOnly)
	materials.PUT("/:id", handler.UpdateMaterial, adminOnly)
	materials.DELETE("/:id", handler.DeleteMaterial, adminOnly)
}

// SetupCollectionRoutes registers the per-user routes under /me.
func SetupCollectionRoutes(api *echo.Group, handler *rest.CollectionHandler, authRequired echo.MiddlewareFunc) {
	me := api.Group("/me", authRequired)

	me.GET("/relics", handler.ListRelics)
	me.POST("/relics", handler.AddRelic)
	me.GET("/relics/:id", handler.GetRelic)
	me.PUT("/relics/:id", handler.UpdateRelic)
	me.DELETE("/relics/:id", handler.DeleteRelic)
	me.PUT("/relics/:id/favorite", handler.SetRelicFavorite)

	me.GET("/characters", handler.ListCharacters)
	me.POST("/characters", handler.AddCharacter)
	me.PUT("/characters/:id/favorite", handler.SetCharacterFavorite)
	me.DELETE("/characters/:id", handler.DeleteCharacter)

	me.GET("/light-cones", handler.ListLightCones)
	me.POST("/light-cones", handler.AddLightCone)
	me.PUT("/light-cones/:id/favorite", handler.SetLightConeFavorite)
	me.DELETE("/light-cones/:id", handler.DeleteLightCone)

	me.GET("/inventory/:type", handler.ListInventory)
	me.PUT("/inventory/:type/:item_id", handler.SetItemQuantity)
}

func SetupOptimizerRoutes(api *echo.Group, handler *rest.OptimizerHandler, authRequired echo.MiddlewareFunc) {
	api.GET("/me/optimize", handler.Optimize, authRequired)
	api.GET("/optimizer/stats", handler.Stats, authRequired)
}
