package controllers

import (
	"net/http"

	"bloomtrack/services"

	"github.com/gin-gonic/gin"
)

type DevController struct {
	Hub *services.PushHub
}

func NewDevController(hub *services.PushHub) *DevController {
	return &DevController{Hub: hub}
}

type pushReq struct {
	Data string `json:"data"`
	Role string `json:"role"`
}

// PushTest broadcasts a test frame to a user's open connections so the push
// path can be exercised without running the analysis job.
func (d *DevController) PushTest(c *gin.Context) {
	var req pushReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Data == "" {
		req.Data = "This is only a test."
	}
	if req.Role == "" {
		req.Role = "model"
	}

	d.Hub.Broadcast(c.Param("user_id"), services.Envelope{MimeType: "text/plain", Data: req.Data, Role: req.Role})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
