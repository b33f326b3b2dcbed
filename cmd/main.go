package main

import (
	"os"

	"bloomtrack/config"
	"bloomtrack/controllers"
	"bloomtrack/routes"
	"bloomtrack/services"
)

func main() {
	config.InitDB()

	hub := services.NewPushHub()

	userSvc := services.NewUserService(config.DB)
	foodSvc := services.NewFoodService(config.DB)
	mealSvc := services.NewMealService(config.DB)
	logSvc := services.NewDailyLogService(config.DB)
	sessionSvc := services.NewSessionService(config.DB)
	chatSvc := services.NewChatService(config.DB)
	agentSvc := services.NewAgentService(userSvc, mealSvc, logSvc, chatSvc)
	analysisSvc := services.NewAnalysisService(config.DB, hub)

	r := routes.SetupRouter(routes.Controllers{
		Auth:      controllers.NewAuthController(userSvc),
		Users:     controllers.NewUserController(userSvc, mealSvc),
		Foods:     controllers.NewFoodController(foodSvc),
		Meals:     controllers.NewMealController(mealSvc, foodSvc),
		DailyLogs: controllers.NewDailyLogController(logSvc),
		Sessions:  controllers.NewSessionController(sessionSvc),
		Agent:     controllers.NewAgentController(agentSvc, chatSvc),
		Push:      controllers.NewPushController(hub, agentSvc, analysisSvc),
		Dev:       controllers.NewDevController(hub),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
