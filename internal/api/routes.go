package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan/nutrition-app/internal/foodref"
	"nutriplan/nutrition-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
	foods *foodref.Table,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService)
	foodHandler := NewFoodHandler(foods)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Anonymous what-if calculation and food lookups need no account.
		apiV1.POST("/calculate", profileHandler.PreviewCalculation)
		foodGroup := apiV1.Group("/foods")
		{
			foodGroup.GET("", foodHandler.ListFoods)
			foodGroup.GET("/lookup", foodHandler.LookupFood)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		profileGroup := protected.Group("/profile")
		{
			profileGroup.PUT("", profileHandler.SaveProfile)
			profileGroup.GET("", profileHandler.GetProfile)
		}

		planGroup := protected.Group("/plan")
		{
			planGroup.GET("", planHandler.GetPlan)
			planGroup.POST("/insight", planHandler.GenerateInsight)
			planGroup.POST("/meals", planHandler.GenerateMealPlan)
			planGroup.POST("/guidance", planHandler.GenerateGuidance)
			planGroup.POST("/full", planHandler.GenerateFullPlan)
			planGroup.POST("/meals/regenerate", planHandler.RegenerateMealPlan)
			planGroup.POST("/meals/:mealId/regenerate", planHandler.RegenerateMeal)
			planGroup.POST("/meals/:mealId/adjust", planHandler.AdjustMeal)
			planGroup.POST("/modify", planHandler.ModifyPlan)
			planGroup.POST("/export", planHandler.ExportPlan)
		}
	}
}
