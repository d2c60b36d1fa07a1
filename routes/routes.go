package routes

import (
	"safeplate/auth"
	"safeplate/middleware"
	"safeplate/ratelim"
	"safeplate/recipes"
	"safeplate/suggestions"

	"github.com/julienschmidt/httprouter"
)

// Deps carries the constructed services into route registration.
type Deps struct {
	Recipes     *recipes.Service
	Suggestions *suggestions.Service
	Auth        *auth.Service
	Guard       *middleware.Auth
	Limiter     *ratelim.RateLimiter
}

func AddRecipeRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/recipes", d.Guard.Flag(d.Recipes.HandleSearch))
	router.GET("/api/recipes/:id", d.Guard.Flag(d.Recipes.HandleGet))
	router.GET("/api/recipes/:id/print", d.Guard.Flag(d.Recipes.HandlePrint))
	router.PUT("/api/recipes", d.Limiter.Limit(d.Guard.Flag(d.Recipes.HandleIndex)))
	router.DELETE("/api/recipes/:id", d.Guard.Require(d.Recipes.HandleDelete))
}

func AddSuggestionRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/suggest/tags", d.Suggestions.HandleSuggestTags)
	router.GET("/api/suggest/options", d.Suggestions.HandleSuggestOptions)
	router.GET("/api/suggest/allergens", d.Suggestions.HandleSuggestAllergens)
	router.GET("/api/suggest/option-allergens", d.Suggestions.HandleOptionAllergens)
}

func AddAuthRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/auth/login", d.Limiter.Limit(d.Auth.HandleLogin))
}
