package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pv-udpv/opendirect21-adcom/internal/emit"
	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
)

func TestRoutes_FiveOperationsPerObject(t *testing.T) {
	doc := spec.Parse(modelsDoc)
	src, err := emit.Routes(doc, "opendirect")
	require.NoError(t, err)

	text := string(src)
	assert.Contains(t, text, "func RegisterOrganizationRoutes(r *gin.RouterGroup, s *store.Store)")
	assert.Contains(t, text, "func RegisterAddressRoutes(r *gin.RouterGroup, s *store.Store)")
	assert.Contains(t, text, "func RegisterContactRoutes(r *gin.RouterGroup, s *store.Store)")
	assert.Contains(t, text, "func RegisterRoutes(r *gin.RouterGroup, s *store.Store)")

	assert.Contains(t, text, `r.GET("/organizations"`)
	assert.Contains(t, text, `r.POST("/organizations"`)
	assert.Contains(t, text, `r.GET("/organizations/:id"`)
	assert.Contains(t, text, `r.PUT("/organizations/:id"`)
	assert.Contains(t, text, `r.DELETE("/organizations/:id"`)
}

func TestRoutes_CollisionAndNotFoundMapping(t *testing.T) {
	doc := spec.Parse(modelsDoc)
	src, err := emit.Routes(doc, "opendirect")
	require.NoError(t, err)

	text := string(src)
	assert.Contains(t, text, "store.IsAlreadyExists(err)")
	assert.Contains(t, text, "http.StatusConflict")
	assert.Contains(t, text, "http.StatusNotFound")
	assert.Contains(t, text, "http.StatusNoContent")
}

func TestRoutes_ListLimitIsCapped(t *testing.T) {
	src, err := emit.Routes(spec.Parse(modelsDoc), "opendirect")
	require.NoError(t, err)

	text := string(src)
	assert.Contains(t, text, `c.DefaultQuery("limit", "100")`)
	assert.Contains(t, text, "if limit > 1000 {")
	assert.Contains(t, text, "limit = 1000")
}

func TestRoutes_Deterministic(t *testing.T) {
	first, err := emit.Routes(spec.Parse(modelsDoc), "opendirect")
	require.NoError(t, err)
	second, err := emit.Routes(spec.Parse(modelsDoc), "opendirect")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
