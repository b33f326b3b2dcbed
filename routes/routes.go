package routes

import (
	"net/http"

	"bloomtrack/controllers"
	"bloomtrack/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Foods     *controllers.FoodController
	Meals     *controllers.MealController
	DailyLogs *controllers.DailyLogController
	Sessions  *controllers.SessionController
	Agent     *controllers.AgentController
	Push      *controllers.PushController
	Dev       *controllers.DevController
}

// SetupRouter wires every endpoint group. Everything except login, the
// health probe, and static assets sits behind the session middleware.
func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static("/static", "./static")

	auth := r.Group("/auth")
	{
		auth.POST("/login", ctl.Auth.Login)
		auth.POST("/logout", ctl.Auth.Logout)
	}

	api := r.Group("/api")
	api.Use(middlewares.SessionAuth())
	{
		users := api.Group("/users")
		{
			users.GET("/:id", ctl.Users.GetProfile)
			users.PUT("/:id", ctl.Users.UpdatePreferences)
			users.GET("/:id/milestone", ctl.Users.CurrentMilestone)
		}

		meals := api.Group("/meals")
		{
			meals.GET("/foods", ctl.Foods.ListFoods)
			meals.GET("/foods/:id", ctl.Foods.GetFood)
			meals.POST("/foods", ctl.Foods.CreateFood)

			meals.GET("/week", ctl.Meals.GetWeek)
			meals.GET("/range", ctl.Meals.GetRange)
			meals.POST("/upsert", ctl.Meals.UpsertMeal)
			meals.POST("/add-item", ctl.Meals.AddItem)
			// DeleteMeal also serves DELETE /item (remove one food from a
			// meal); same static/param limitation as the sessions group
			meals.DELETE("/:id", ctl.Meals.DeleteMeal)

			meals.GET("/milestones", ctl.Meals.ListMilestones)
			meals.GET("/milestones/:week", ctl.Meals.GetMilestone)
			meals.GET("/suggestions", ctl.Meals.Suggestions)
		}

		logs := api.Group("/daily-logs")
		{
			logs.POST("", ctl.DailyLogs.CreateLog)
			logs.POST("/upsert", ctl.DailyLogs.UpsertLog)
			logs.GET("/:user_id", ctl.DailyLogs.GetLogs)
			logs.GET("/:user_id/:date", ctl.DailyLogs.GetLog)
			logs.PUT("/:user_id/:date", ctl.DailyLogs.UpdateLog)
			logs.DELETE("/:user_id/:date", ctl.DailyLogs.DeleteLog)
		}

		sessions := api.Group("/sessions")
		{
			sessions.POST("", ctl.Sessions.CreateSession)
			// GetSession also serves /:user_id/weekly-summary; the router
			// cannot hold a static and a param segment side by side
			sessions.GET("/:user_id/:date", ctl.Sessions.GetSession)
		}

		agent := api.Group("/agent")
		{
			agent.POST("/chat", ctl.Agent.PostChat)
			agent.GET("/messages/:user_id", ctl.Agent.GetMessages)
			agent.GET("/greeting/:user_id", ctl.Agent.GetGreeting)
			agent.GET("/health", ctl.Agent.Health)
		}

		api.POST("/dev/push/:user_id", ctl.Dev.PushTest)
	}

	// websocket clients authenticate with the same session token passed as a
	// query parameter, validated inside the handler rather than the
	// middleware chain
	r.GET("/ws/:user_id", ctl.Push.Connect)

	return r
}
