// Package httpapi mounts one CRUD route group per parsed specification
// object. Handlers are schema-driven: payloads are validated against the
// parsed object definitions, so the server carries the same semantics as the
// emitted route source without compiling generated code into this module.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
	"github.com/pv-udpv/opendirect21-adcom/internal/store"
)

const (
	serviceName    = "specgen"
	serviceVersion = "0.1.0"
)

// SpecSet is one specification mounted under its own path prefix. The
// OpenDirect and AdCom documents are parsed independently and never
// cross-linked, even where they share concept names.
type SpecSet struct {
	Name   string
	Prefix string
	Doc    *spec.Document
}

// Server wraps the gin engine, the entity store and the mounted spec sets.
type Server struct {
	store  *store.Store
	log    *logrus.Logger
	engine *gin.Engine
	sets   []SpecSet
}

// New builds a server over an explicit store handle. Tests construct an
// isolated store per instance; nothing here is ambient global state.
func New(st *store.Store, log *logrus.Logger, sets ...SpecSet) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	if log != nil {
		engine.Use(requestLogger(log))
	}

	s := &Server{store: st, log: log, engine: engine, sets: sets}
	engine.GET("/healthz", s.health)

	for _, set := range sets {
		group := engine.Group(set.Prefix)
		resolver := objectIndex(set.Doc)
		for i := range set.Doc.Objects {
			s.registerObject(group, &set.Doc.Objects[i], resolver)
		}
	}
	return s
}

// Engine exposes the router for tests and embedding.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run serves until the listener fails.
func (s *Server) Run(addr string) error { return s.engine.Run(addr) }

func (s *Server) health(c *gin.Context) {
	counts := make(map[string]int)
	for _, col := range s.store.Collections() {
		counts[col] = s.store.Count(col)
	}
	specs := make([]string, 0, len(s.sets))
	for _, set := range s.sets {
		specs = append(specs, set.Name)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"service":     serviceName,
		"version":     serviceVersion,
		"specs":       specs,
		"collections": counts,
	})
}

func objectIndex(doc *spec.Document) map[string]*spec.ObjectDef {
	idx := make(map[string]*spec.ObjectDef, len(doc.Objects))
	for i := range doc.Objects {
		idx[doc.Objects[i].Name] = &doc.Objects[i]
	}
	return idx
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Info("request")
	}
}
