// Package debugserver implements the HTTP introspection service
// wrapped by cmd/xswire-serve: health, Prometheus metrics, and an
// interactive packet decoder.
package debugserver

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/xenwire/xenwire/internal/config"
	"github.com/xenwire/xenwire/internal/metrics"
	"github.com/xenwire/xenwire/internal/wire/packet"
	"github.com/xenwire/xenwire/internal/wire/request"
	"github.com/xenwire/xenwire/internal/wire/response"
)

// Server is the debug HTTP service.
type Server struct {
	cfg       config.ServeConfig
	logger    zerolog.Logger
	router    *gin.Engine
	startedAt time.Time
}

// New builds a Server wired to cfg and logging through logger.
func New(cfg config.ServeConfig, logger zerolog.Logger) *Server {
	metrics.Register()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.RequestLogger(logger))
	r.Use(metrics.RequestMetrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{cfg: cfg, logger: logger, router: r, startedAt: time.Now()}
	s.registerRoutes()
	return s
}

// Router exposes the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts listening on cfg.Addr; blocks until the server stops.
func (s *Server) Run() error {
	return s.router.Run(s.cfg.Addr)
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(s.startedAt).String(),
		})
	})

	metricsPath := s.cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	s.router.GET(metricsPath, gin.WrapH(promhttp.Handler()))

	s.router.POST("/decode", s.handleDecode)
}

type decodeRequest struct {
	Frame string `json:"frame" binding:"required"`
}

type decodeResponse struct {
	Op      string      `json:"op"`
	Tid     uint32      `json:"tid"`
	Rid     uint32      `json:"rid"`
	Len     uint32      `json:"len"`
	Request interface{} `json:"request,omitempty"`
	Reply   interface{} `json:"reply,omitempty"`
}

// handleDecode parses a base64-encoded framed packet and echoes back
// its header, its typed request payload when the packet parses as a
// request, and its NUL-trimmed payload as a response.Read reply; the
// reply is not decoded into the other typed response variants.
func (s *Server) handleDecode(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Frame)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "frame is not valid base64"})
		return
	}

	p := packet.NewParser()
	p.Input(raw)
	pkt, perr, ok := p.State().Result()
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "frame is incomplete"})
		return
	}
	if perr != nil {
		metrics.RecordParseFailure("decode_endpoint")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": perr.Error()})
		return
	}

	resp := decodeResponse{Op: pkt.Ty.String(), Tid: pkt.Tid, Rid: pkt.Rid, Len: pkt.Len()}
	if reqPayload, err := request.ParseRequest(pkt); err == nil {
		resp.Request = reqPayload
	}
	if replyPayload, ok := decodeAsResponse(pkt); ok {
		resp.Reply = replyPayload
	}

	metrics.RecordReceived(pkt.Ty.String(), int(pkt.Len()))
	c.JSON(http.StatusOK, resp)
}

func decodeAsResponse(pkt packet.Packet) (interface{}, bool) {
	if s, ok := response.Unmarshal.String(pkt); ok {
		return response.Read{Value: s}, true
	}
	return nil, false
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
