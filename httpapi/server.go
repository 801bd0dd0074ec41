// Package httpapi exposes the tool registry over HTTP: tool discovery plus a
// dispatch endpoint that wraps results in a parts envelope.
package httpapi

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cpbridge/cpbridge"
)

const requestIDHeader = "X-Request-Id"

// Server serves the tool API. Construct with New, start with Run, stop with
// Shutdown.
type Server struct {
	reg   *cpbridge.Registry
	log   *slog.Logger
	token string
	srv   *http.Server
}

// New builds a Server over the registry. token guards every endpoint except
// /health; an empty token disables auth (tests, local runs).
func New(reg *cpbridge.Registry, token string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{reg: reg, log: log, token: token}
}

// Handler builds the gin engine. Exposed separately from Run for httptest.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID, s.logRequests)

	r.GET("/health", s.health)

	v1 := r.Group("/v1", s.auth)
	v1.GET("/tools", s.listTools)
	v1.POST("/tools/call", s.callTool)
	return r
}

// Run serves on addr until Shutdown or a listener error.
func (s *Server) Run(addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(requestIDHeader, id)
	c.Set("request_id", id)
	c.Next()
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Info("http request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
		"request_id", c.GetString("request_id"),
	)
}

func (s *Server) auth(c *gin.Context) {
	if s.token == "" {
		c.Next()
		return
	}
	header := c.GetHeader("Authorization")
	got, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || got != s.token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type toolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

func (s *Server) listTools(c *gin.Context) {
	tools := s.reg.Tools()
	out := make([]toolInfo, 0, len(tools))
	for _, t := range tools {
		d := t.Descriptor()
		out = append(out, toolInfo{Name: d.Name, Description: d.Description, InputSchema: t.Schema()})
	}
	c.JSON(http.StatusOK, gin.H{"tools": out})
}

type callRequest struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type partJSON struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
	Data     string `json:"data,omitempty"`
}

func (s *Server) callTool(c *gin.Context) {
	var req callRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing tool name"})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	res, err := s.reg.Dispatch(c.Request.Context(), cpbridge.Call{
		ID:        req.ID,
		Name:      req.Name,
		Arguments: req.Arguments,
	})
	if err != nil {
		status := errStatus(err)
		if status == http.StatusInternalServerError {
			s.log.Error("tool call failed", "tool", req.Name, "request_id", c.GetString("request_id"), "error", err)
		}
		c.JSON(status, gin.H{"id": req.ID, "error": displayError(err)})
		return
	}

	parts := make([]partJSON, 0, len(res.Parts))
	for _, p := range res.Parts {
		switch p := p.(type) {
		case cpbridge.TextPart:
			parts = append(parts, partJSON{Type: "text", Text: p.Text})
		case cpbridge.ImagePart:
			parts = append(parts, partJSON{
				Type:     "image",
				MIMEType: p.MIME,
				Data:     base64.StdEncoding.EncodeToString(p.Data),
			})
		}
	}
	c.JSON(http.StatusOK, gin.H{"id": req.ID, "parts": parts})
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, cpbridge.ErrToolNotFound):
		return http.StatusNotFound
	case cpbridge.IsArgumentError(err), errors.Is(err, cpbridge.ErrInvalidArguments):
		return http.StatusBadRequest
	case errors.Is(err, cpbridge.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, cpbridge.ErrShutdown):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// displayError returns the caller-facing message. ArgumentError and
// HandlerError already carry display-safe text; everything else collapses to
// their Error strings, which never include wrapped internals.
func displayError(err error) string {
	var ae *cpbridge.ArgumentError
	if errors.As(err, &ae) {
		return ae.Error()
	}
	var he *cpbridge.HandlerError
	if errors.As(err, &he) {
		return he.Error()
	}
	switch {
	case errors.Is(err, cpbridge.ErrToolNotFound):
		return cpbridge.ErrToolNotFound.Error()
	case errors.Is(err, cpbridge.ErrTimeout):
		return cpbridge.ErrTimeout.Error()
	case errors.Is(err, cpbridge.ErrShutdown):
		return cpbridge.ErrShutdown.Error()
	default:
		return "internal error"
	}
}
