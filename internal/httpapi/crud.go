package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
	"github.com/pv-udpv/opendirect21-adcom/internal/store"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// registerObject mounts the five CRUD operations for one object on its
// collection path.
func (s *Server) registerObject(group *gin.RouterGroup, obj *spec.ObjectDef, resolver map[string]*spec.ObjectDef) {
	col := spec.CollectionName(obj.Name)

	group.GET("/"+col, s.list(col, obj))
	group.POST("/"+col, s.create(col, obj, resolver))
	group.GET("/"+col+"/:id", s.read(col))
	group.PUT("/"+col+"/:id", s.update(col, obj, resolver))
	group.DELETE("/"+col+"/:id", s.remove(col))
}

// list supports skip/limit pagination and equality filtering on any declared
// field name passed as a query parameter (the flat-route substitute for
// nested resource paths).
func (s *Server) list(col string, obj *spec.ObjectDef) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
		if err != nil || skip < 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "skip must be a non-negative integer"})
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
		if err != nil || limit < 1 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if limit > maxLimit {
			limit = maxLimit
		}

		var items []map[string]any
		var total int
		if field, value, ok := filterParam(c, obj); ok {
			items, total, err = s.store.ListWhere(col, "$."+field, value, skip, limit)
		} else {
			items, total, err = s.store.List(col, skip, limit)
		}
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
	}
}

func (s *Server) create(col string, obj *spec.ObjectDef, resolver map[string]*spec.ObjectDef) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if errs := ValidatePayload(resolver, obj, body); len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": errs})
			return
		}
		created, err := s.store.Create(col, body)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func (s *Server) read(col string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entity, err := s.store.Get(col, c.Param("id"))
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, entity)
	}
}

// update is a full replace of all mutable fields; id and creation time are
// preserved by the store.
func (s *Server) update(col string, obj *spec.ObjectDef, resolver map[string]*spec.ObjectDef) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if errs := ValidatePayload(resolver, obj, body); len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": errs})
			return
		}
		updated, err := s.store.Update(col, c.Param("id"), body)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func (s *Server) remove(col string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.store.Delete(col, c.Param("id")); err != nil {
			respondStoreError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// filterParam returns the first query parameter whose name matches a
// declared field of the object.
func filterParam(c *gin.Context, obj *spec.ObjectDef) (field, value string, ok bool) {
	for _, f := range obj.Fields {
		if v, present := c.GetQuery(f.Name); present {
			return f.Name, v, true
		}
	}
	return "", "", false
}

func respondStoreError(c *gin.Context, err error) {
	switch {
	case store.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case store.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case store.IsInvalidInput(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
