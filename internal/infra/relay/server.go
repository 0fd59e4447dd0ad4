// Package relay authenticates inbound work-item webhooks and forwards
// normalized events to the downstream repository-dispatch endpoint.
package relay

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"planforge/internal/domain"
)

// Environment variables carrying the relay secrets.
const (
	UserEnv          = "PLANFORGE_RELAY_USER"
	PassEnv          = "PLANFORGE_RELAY_PASS"
	DispatchTokenEnv = "PLANFORGE_DISPATCH_TOKEN"
)

// Credentials are the Basic auth secrets inbound requests are checked
// against.
type Credentials struct {
	User string
	Pass string
}

// Server is the webhook relay HTTP server.
type Server struct {
	dispatcher domain.Dispatcher
	logger     domain.Logger
	creds      Credentials
}

// NewServer creates a relay server forwarding through dispatcher.
func NewServer(dispatcher domain.Dispatcher, logger domain.Logger, creds Credentials) *Server {
	return &Server{dispatcher: dispatcher, logger: logger, creds: creds}
}

// Router builds the gin engine with the relay routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)
	r.POST("/events", s.basicAuth(), s.handleEvent)
	return r
}

// Run serves the relay on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// basicAuth verifies HTTP Basic credentials. Both comparisons run in
// constant time over digests so neither the match nor the secret length
// leaks through timing.
func (s *Server) basicAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !constantTimeEqual(user, s.creds.User) || !constantTimeEqual(pass, s.creds.Pass) {
			c.Header("WWW-Authenticate", `Basic realm="planforge-relay"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// constantTimeEqual compares two strings in constant time.
func constantTimeEqual(a, b string) bool {
	ah := sha256.Sum256([]byte(a))
	bh := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ah[:], bh[:]) == 1
}

// workItemPayload is the inbound webhook document. Only the fields the
// relay forwards are modeled; everything else in the payload is ignored.
type workItemPayload struct {
	EventType string `json:"eventType" binding:"required"`
	Resource  struct {
		ID     int            `json:"id"`
		Fields map[string]any `json:"fields"`
	} `json:"resource"`
}

func (s *Server) handleEvent(c *gin.Context) {
	var payload workItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := normalize(&payload)
	s.logger.Info("", "relay", "event "+event.Action+" for work item "+strconv.Itoa(event.WorkItemID)+" delivery "+event.Delivery)

	status, err := s.dispatcher.Dispatch(c.Request.Context(), event)
	if err != nil {
		s.logger.Error("", "relay", "dispatch failed: "+err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"delivery": event.Delivery, "error": err.Error()})
		return
	}
	if status < 200 || status > 299 {
		s.logger.Warn("", "relay", "downstream returned "+strconv.Itoa(status))
		c.JSON(http.StatusBadGateway, gin.H{"delivery": event.Delivery, "downstreamStatus": status})
		return
	}

	c.JSON(http.StatusOK, gin.H{"delivery": event.Delivery, "status": "forwarded"})
}

// normalize extracts the forwarded fields from the nested payload.
func normalize(p *workItemPayload) *domain.WorkItemEvent {
	return &domain.WorkItemEvent{
		WorkItemID: p.Resource.ID,
		Action:     p.EventType,
		Project:    stringField(p.Resource.Fields, "System.TeamProject"),
		State:      stringField(p.Resource.Fields, "System.State"),
		Tags:       splitTags(stringField(p.Resource.Fields, "System.Tags")),
		Delivery:   uuid.NewString(),
	}
}

// stringField returns the field as a string, or "" when absent or not a
// string.
func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// splitTags splits the semicolon-separated tag field into trimmed tags.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ";") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
