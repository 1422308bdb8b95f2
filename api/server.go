// Package api exposes the haptics runtime over REST: pattern upload,
// player control and one-shot feedback triggers.
package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wippyai/haptics-runtime/bridge"
	"github.com/wippyai/haptics-runtime/errors"
	"github.com/wippyai/haptics-runtime/feedback"
	"github.com/wippyai/haptics-runtime/handle"
)

// Server carries one engine and hands out pattern and player ids over
// HTTP. Ids are bridge handles; a released id turns into 404.
type Server struct {
	bridge *bridge.Bridge
	engine handle.Handle
}

// NewServer builds a server on the given bridge and starts its engine.
func NewServer(b *bridge.Bridge) (*Server, error) {
	engH, st := b.EngineCreate(nil)
	if !st.OK() {
		return nil, errors.EngineFailure(st.Message, nil)
	}
	if st := b.EngineStart(engH); !st.OK() {
		b.EngineRelease(engH)
		return nil, errors.EngineFailure(st.Message, nil)
	}
	return &Server{bridge: b, engine: engH}, nil
}

// Close stops the engine and releases every id the server handed out.
func (s *Server) Close() {
	s.bridge.Close()
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/capabilities", s.capabilities)
		v1.POST("/feedback", s.feedback)
		v1.POST("/patterns", s.createPattern)
		v1.DELETE("/patterns/:id", s.deletePattern)
		v1.POST("/players", s.createPlayer)
		v1.POST("/players/:id/play", s.playPlayer)
		v1.POST("/players/:id/stop", s.stopPlayer)
		v1.POST("/players/:id/loop", s.loopPlayer)
		v1.POST("/players/:id/parameter", s.parameterPlayer)
		v1.DELETE("/players/:id", s.deletePlayer)
	}

	return r
}

// Run serves on the given port until the listener fails.
func (s *Server) Run(port int) error {
	return s.Router().Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "haptics-runtime",
	})
}

func (s *Server) capabilities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"supports_haptics": s.bridge.SupportsHaptics(),
	})
}

type feedbackRequest struct {
	Type  string `json:"type" binding:"required"`
	Style string `json:"style"`
	Kind  string `json:"kind"`
}

var impactStyles = map[string]feedback.ImpactStyle{
	"light":  feedback.ImpactLight,
	"medium": feedback.ImpactMedium,
	"heavy":  feedback.ImpactHeavy,
	"soft":   feedback.ImpactSoft,
	"rigid":  feedback.ImpactRigid,
}

var notificationKinds = map[string]feedback.NotificationKind{
	"success": feedback.NotificationSuccess,
	"warning": feedback.NotificationWarning,
	"error":   feedback.NotificationError,
}

func (s *Server) feedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid feedback request: "+err.Error())
		return
	}

	switch req.Type {
	case "impact":
		style, known := impactStyles[req.Style]
		if !known {
			badRequest(c, "unknown impact style: "+req.Style)
			return
		}
		feedback.Impact(style)
	case "notification":
		kind, known := notificationKinds[req.Kind]
		if !known {
			badRequest(c, "unknown notification kind: "+req.Kind)
			return
		}
		feedback.Notification(kind)
	case "selection":
		feedback.Selection()
	default:
		badRequest(c, "unknown feedback type: "+req.Type)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "triggered"})
}

func (s *Server) createPattern(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, "failed to read request body")
		return
	}

	h, st := s.bridge.PatternFromData(data)
	if !st.OK() {
		statusError(c, st)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pattern": h})
}

func (s *Server) deletePattern(c *gin.Context) {
	h, okID := handleParam(c)
	if !okID {
		return
	}
	if st := s.bridge.PatternRelease(h); !st.OK() {
		statusError(c, st)
		return
	}
	c.Status(http.StatusNoContent)
}

type createPlayerRequest struct {
	Pattern handle.Handle `json:"pattern" binding:"required"`
}

func (s *Server) createPlayer(c *gin.Context) {
	var req createPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid player request: "+err.Error())
		return
	}

	h, st := s.bridge.PlayerCreate(s.engine, req.Pattern)
	if !st.OK() {
		statusError(c, st)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"player": h})
}

type timedRequest struct {
	At float64 `json:"at"`
}

func (s *Server) playPlayer(c *gin.Context) {
	s.playerAction(c, s.bridge.PlayerPlay)
}

func (s *Server) stopPlayer(c *gin.Context) {
	s.playerAction(c, s.bridge.PlayerStop)
}

func (s *Server) playerAction(c *gin.Context, action func(handle.Handle, float64) bridge.Status) {
	h, okID := handleParam(c)
	if !okID {
		return
	}
	var req timedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request: "+err.Error())
			return
		}
	}
	if st := action(h, req.At); !st.OK() {
		statusError(c, st)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type loopRequest struct {
	Enabled bool    `json:"enabled"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

func (s *Server) loopPlayer(c *gin.Context) {
	h, okID := handleParam(c)
	if !okID {
		return
	}
	var req loopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid loop request: "+err.Error())
		return
	}
	if st := s.bridge.PlayerSetLoop(h, req.Enabled, req.Start, req.End); !st.OK() {
		statusError(c, st)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type parameterRequest struct {
	ID    int32   `json:"id"`
	Value float64 `json:"value"`
	At    float64 `json:"at"`
}

func (s *Server) parameterPlayer(c *gin.Context) {
	h, okID := handleParam(c)
	if !okID {
		return
	}
	var req parameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid parameter request: "+err.Error())
		return
	}
	if st := s.bridge.PlayerSendParameter(h, req.ID, req.Value, req.At); !st.OK() {
		statusError(c, st)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) deletePlayer(c *gin.Context) {
	h, okID := handleParam(c)
	if !okID {
		return
	}
	if st := s.bridge.PlayerRelease(h); !st.OK() {
		statusError(c, st)
		return
	}
	c.Status(http.StatusNoContent)
}

func handleParam(c *gin.Context) (handle.Handle, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "invalid id: "+c.Param("id"))
		return 0, false
	}
	return handle.Handle(id), true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":  errors.CodeInvalidArgument,
		"error": msg,
	})
}

// statusError maps runtime status codes onto HTTP statuses. The numeric
// code rides along in the body so clients keep the fine-grained cause.
func statusError(c *gin.Context, st bridge.Status) {
	httpStatus := http.StatusInternalServerError
	switch st.Code {
	case errors.CodeInvalidHandle:
		httpStatus = http.StatusNotFound
	case errors.CodeInvalidArgument, errors.CodeDecode:
		httpStatus = http.StatusBadRequest
	case errors.CodeNotSupported:
		httpStatus = http.StatusNotImplemented
	}
	c.JSON(httpStatus, gin.H{
		"code":  st.Code,
		"error": st.Message,
	})
}
