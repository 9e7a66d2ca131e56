package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/filemanager-agent/filemanager-go/internal/errdefs"
	"github.com/filemanager-agent/filemanager-go/internal/models"
	"github.com/filemanager-agent/filemanager-go/pkg/telemetry"
)

// handleIndex returns the API index.
func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Local File Manager Agent API",
		"version": Version,
		"endpoints": gin.H{
			"/api/chat":        "POST - Natural language chat interface",
			"/api/execute":     "POST - Execute file operations",
			"/api/health":      "GET - Health check",
			"/api/server_info": "GET - Uptime and resource usage",
		},
	})
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(c *gin.Context) {
	if s.executor == nil {
		c.JSON(http.StatusOK, gin.H{"status": "not initialized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   Version,
		"base_path": s.executor.Guard().Base(),
	})
}

// handleServerInfo reports uptime, idle time and resource usage.
func (s *Server) handleServerInfo(c *gin.Context) {
	now := time.Now()
	info := s.executor.GetServerInfo()

	response := models.ServerInfoResponse{
		Uptime:    now.Sub(info.StartTime).Seconds(),
		IdleTime:  now.Sub(info.LastExecTime).Seconds(),
		BasePath:  info.BasePath,
		Resources: s.executor.GetSystemStats(),
	}

	c.JSON(http.StatusOK, response)
}

// handleChat routes a natural-language message to an action. The selected
// action is returned to the UI, which feeds it to the execute endpoint;
// nothing is executed here.
func (s *Server) handleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message in request body"})
		return
	}

	ctx := c.Request.Context()
	if s.config.Telemetry.Enabled {
		telemetry.ReportJSON(ctx, s.logger, "chat_request", req)
	}

	decision := s.router.Route(ctx, req.Message, req.Context)

	var resp models.ChatResponse
	if decision.Action == models.ActionHelp {
		resp = models.ChatResponse{
			Response: decision.HelpText,
			Action:   models.ActionHelp,
		}
	} else {
		resp = models.ChatResponse{
			Response:   fmt.Sprintf("I'll execute: %s", decision.Action),
			Action:     decision.Action,
			ActionInfo: decision.ActionInfo(),
		}
	}

	if s.config.Telemetry.Enabled {
		telemetry.ReportJSON(ctx, s.logger, "chat_response", resp)
	}
	c.JSON(http.StatusOK, resp)
}

// handleExecute runs one file operation. Request-shape problems (unknown
// action, missing params) are 400s; failures of a well-formed request come
// back as a 200 with success=false so the UI always sees the same envelope.
func (s *Server) handleExecute(c *gin.Context) {
	var req models.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResult("Missing action in request body"))
		return
	}

	if !models.KnownAction(req.Action) {
		c.JSON(http.StatusBadRequest, models.NewErrorResult(fmt.Sprintf("unknown action: %s", req.Action)))
		return
	}

	ctx := c.Request.Context()
	if s.config.Telemetry.Enabled {
		telemetry.ReportJSON(ctx, s.logger, "execute_request", req)
	}

	result, err := s.executor.Execute(ctx, req.Action, req.Params)
	if err != nil {
		status := http.StatusInternalServerError
		if errdefs.IsRequestError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.NewErrorResult(err.Error()))
		return
	}

	if s.config.Telemetry.Enabled {
		telemetry.ReportJSON(ctx, s.logger, "execute_response", result)
	}
	c.JSON(http.StatusOK, result)
}
