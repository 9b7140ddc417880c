package stream

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davfen/pendsim/internal/engine"
)

// Server exposes the engine boundary over HTTP: a websocket snapshot
// stream plus the three mutation operations.
type Server struct {
	world *engine.World
	hub   *Hub
	log   *slog.Logger
}

func NewServer(world *engine.World, hub *Hub, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{world: world, hub: hub, log: log}
}

// AddBobRequest is the body of POST /bobs. Rod length and mass must be
// positive; the transport rejects what the engine would blindly accept.
type AddBobRequest struct {
	RodLength float64 `json:"rod_length" binding:"required,gt=0"`
	Mass      float64 `json:"mass" binding:"required,gt=0"`
	Theta     float64 `json:"theta"`
	Omega     float64 `json:"omega"`
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	r.GET("/ws", s.handleWS)
	r.GET("/state", s.handleState)
	r.POST("/bobs", s.handleAddBob)
	r.DELETE("/bobs/:index", s.handleRemoveBob)
	r.PATCH("/bobs/:index", s.handleModifyBob)

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "subscribers": s.hub.NumClients()})
}

func (s *Server) handleWS(c *gin.Context) {
	s.hub.ServeWS(c.Writer, c.Request)
}

func (s *Server) handleState(c *gin.Context) {
	snap, err := s.world.Snapshot()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleAddBob(c *gin.Context) {
	var req AddBobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.world.AddBob(req.RodLength, req.Mass, req.Theta, req.Omega); err != nil {
		s.renderError(c, err)
		return
	}
	s.log.Info("bob added", "rod_length", req.RodLength, "mass", req.Mass)
	c.JSON(http.StatusCreated, gin.H{"bobs": s.world.NumBobs()})
}

func (s *Server) handleRemoveBob(c *gin.Context) {
	index, ok := s.bobIndex(c)
	if !ok {
		return
	}
	if err := s.world.RemoveBob(index); err != nil {
		s.renderError(c, err)
		return
	}
	s.log.Info("bob removed", "index", index)
	c.JSON(http.StatusOK, gin.H{"bobs": s.world.NumBobs()})
}

func (s *Server) handleModifyBob(c *gin.Context) {
	index, ok := s.bobIndex(c)
	if !ok {
		return
	}
	var patch engine.BobPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.world.ModifyBob(index, patch); err != nil {
		s.renderError(c, err)
		return
	}
	s.log.Info("bob modified", "index", index)
	c.JSON(http.StatusOK, gin.H{"bobs": s.world.NumBobs()})
}

func (s *Server) bobIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return 0, false
	}
	return index, true
}

func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrIndexOutOfRange):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrWorldClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
