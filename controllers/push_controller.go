package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"bloomtrack/services"
	"bloomtrack/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const schedulerRunPrefix = "[SCHEDULER] RUN: "

type PushController struct {
	Hub      *services.PushHub
	Agent    *services.AgentService
	Analysis *services.AnalysisService
}

func NewPushController(hub *services.PushHub, agent *services.AgentService, analysis *services.AnalysisService) *PushController {
	return &PushController{Hub: hub, Agent: agent, Analysis: analysis}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// Connect upgrades /ws/:user_id and serves the push channel: inbound chat
// text is answered by the agent, scheduling requests start the analysis job,
// unparseable frames are logged and dropped.
func (p *PushController) Connect(c *gin.Context) {
	userID := c.Param("user_id")

	// browsers cannot set headers on websocket dials, so the session token
	// arrives as a query parameter
	token := c.Query("token")
	if token == "" {
		token, _ = c.Cookie("session")
	}
	if _, err := utils.ParseSessionToken(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: userID, Conn: conn}
	p.Hub.Register(cl)
	sessionID := utils.GenerateSessionID(16)

	// keep connections alive through proxies; the ping must share the
	// client's write lock with hub broadcasts
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := cl.Ping(); err != nil {
				p.Hub.Unregister(cl)
				return
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			p.Hub.Unregister(cl)
			return
		}
		p.handleFrame(userID, sessionID, raw)
	}
}

func (p *PushController) handleFrame(userID, sessionID string, raw []byte) {
	var env services.Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Data == "" {
		log.Printf("ws: dropping unparseable frame from %s", userID)
		return
	}

	if date, ok := strings.CutPrefix(env.Data, schedulerRunPrefix); ok {
		if _, err := utils.ParseDate(date); err != nil {
			log.Printf("ws: scheduling request with bad date %q from %s", date, userID)
			return
		}
		go func() {
			if err := p.Analysis.RunSegmentation(userID, date); err != nil {
				log.Printf("ws: segmentation for %s/%s failed: %v", userID, date, err)
			}
		}()
		return
	}

	if env.MimeType == "text/plain" {
		go func() {
			reply, err := p.Agent.Chat(userID, sessionID, env.Data)
			if err != nil {
				log.Printf("ws: agent reply for %s failed: %v", userID, err)
				p.Hub.Broadcast(userID, services.Envelope{
					MimeType: "text/plain",
					Data:     "Sorry, I could not answer right now.",
					Role:     "model",
				})
				return
			}
			p.Hub.Broadcast(userID, services.Envelope{MimeType: "text/plain", Data: reply.Content, Role: "model"})
		}()
	}
}
