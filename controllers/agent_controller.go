package controllers

import (
	"net/http"
	"strconv"

	"bloomtrack/services"

	"github.com/gin-gonic/gin"
)

type AgentController struct {
	Agent *services.AgentService
	Chat  *services.ChatService
}

func NewAgentController(agent *services.AgentService, chat *services.ChatService) *AgentController {
	return &AgentController{Agent: agent, Chat: chat}
}

type ChatInput struct {
	UserID    string `json:"user_id" binding:"required"`
	SessionID string `json:"session_id"`
	Text      string `json:"text" binding:"required"`
}

func (a *AgentController) PostChat(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := a.Agent.Chat(input.UserID, input.SessionID, input.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (a *AgentController) GetMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	msgs, err := a.Chat.GetRecentMessages(c.Param("user_id"), limit, c.Query("since_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// GetGreeting returns today's greeting, generating it on the first request
// of the day and reusing the stored row afterwards.
func (a *AgentController) GetGreeting(c *gin.Context) {
	msg, err := a.Agent.Greeting(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (a *AgentController) Health(c *gin.Context) {
	if !a.Agent.Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "reason": "LLM_API_KEY not set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
