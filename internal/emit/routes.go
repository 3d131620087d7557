package emit

import (
	"fmt"
	"strings"

	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
)

const storeImport = "github.com/pv-udpv/opendirect21-adcom/internal/store"

// Routes renders one Go source file with a Register<Name>Routes function per
// object (five CRUD operations each, keyed on the id field) plus an
// aggregate RegisterRoutes. The emitted handlers target gin and the shared
// entity store.
func Routes(doc *spec.Document, pkg string) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("// Code generated by specgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&sb, "package %s\n\n", pkg)
	sb.WriteString("import (\n")
	sb.WriteString("\t\"net/http\"\n")
	sb.WriteString("\t\"strconv\"\n\n")
	sb.WriteString("\t\"github.com/gin-gonic/gin\"\n\n")
	fmt.Fprintf(&sb, "\t%q\n", storeImport)
	sb.WriteString(")\n\n")

	for _, obj := range doc.Objects {
		writeObjectRoutes(&sb, &obj)
	}

	sb.WriteString("// RegisterRoutes mounts every generated route group on r.\n")
	sb.WriteString("func RegisterRoutes(r *gin.RouterGroup, s *store.Store) {\n")
	for _, obj := range doc.Objects {
		fmt.Fprintf(&sb, "\tRegister%sRoutes(r, s)\n", ExportName(obj.Name))
	}
	sb.WriteString("}\n")

	return Format([]byte(sb.String()), pkg+"/routes.go")
}

func writeObjectRoutes(sb *strings.Builder, obj *spec.ObjectDef) {
	name := ExportName(obj.Name)
	col := spec.CollectionName(obj.Name)

	fmt.Fprintf(sb, "// Register%sRoutes mounts the CRUD operations for %s on the %q collection.\n", name, obj.Name, col)
	fmt.Fprintf(sb, "func Register%sRoutes(r *gin.RouterGroup, s *store.Store) {\n", name)

	// list
	fmt.Fprintf(sb, "\tr.GET(%q, func(c *gin.Context) {\n", "/"+col)
	sb.WriteString("\t\tskip, _ := strconv.Atoi(c.DefaultQuery(\"skip\", \"0\"))\n")
	sb.WriteString("\t\tlimit, _ := strconv.Atoi(c.DefaultQuery(\"limit\", \"100\"))\n")
	sb.WriteString("\t\tif limit > 1000 {\n")
	sb.WriteString("\t\t\tlimit = 1000\n")
	sb.WriteString("\t\t}\n")
	fmt.Fprintf(sb, "\t\titems, total, err := s.List(%q, skip, limit)\n", col)
	sb.WriteString("\t\tif err != nil {\n")
	sb.WriteString("\t\t\tc.JSON(http.StatusUnprocessableEntity, gin.H{\"error\": err.Error()})\n")
	sb.WriteString("\t\t\treturn\n")
	sb.WriteString("\t\t}\n")
	sb.WriteString("\t\tc.JSON(http.StatusOK, gin.H{\"items\": items, \"total\": total})\n")
	sb.WriteString("\t})\n")

	// create
	fmt.Fprintf(sb, "\tr.POST(%q, func(c *gin.Context) {\n", "/"+col)
	fmt.Fprintf(sb, "\t\tvar body %s\n", name)
	sb.WriteString("\t\tif err := c.ShouldBindJSON(&body); err != nil {\n")
	sb.WriteString("\t\t\tc.JSON(http.StatusUnprocessableEntity, gin.H{\"error\": err.Error()})\n")
	sb.WriteString("\t\t\treturn\n")
	sb.WriteString("\t\t}\n")
	sb.WriteString("\t\tdata, err := store.FromModel(body)\n")
	sb.WriteString("\t\tif err != nil {\n")
	sb.WriteString("\t\t\tc.JSON(http.StatusUnprocessableEntity, gin.H{\"error\": err.Error()})\n")
	sb.WriteString("\t\t\treturn\n")
	sb.WriteString("\t\t}\n")
	fmt.Fprintf(sb, "\t\tcreated, err := s.Create(%q, data)\n", col)
	sb.WriteString("\t\tif err != nil {\n")
	sb.WriteString("\t\t\tif store.IsAlreadyExists(err) {\n")
	sb.WriteString("\t\t\t\tc.JSON(http.StatusConflict, gin.H{\"error\": err.Error()})\n")
	sb.WriteString("\t\t\t\treturn\n")
	sb.WriteString("\t\t\t}\n")
	sb.WriteString("\t\t\tc.JSON(http.StatusUnprocessableEntity, gin.H{\"error\": err.Error()})\n")
	sb.WriteString("\t\t\treturn\n")
	sb.WriteString("\t\t}\n")
	sb.WriteString("\t\tc.JSON(http.StatusCreated, created)\n")
	sb.WriteString("\t})\n")

	// read
	fmt.Fprintf(sb, "\tr.GET(%q, func(c *gin.Context) {\n", "/"+col+"/:id")
	fmt.Fprintf(sb, "\t\tentity, err := s.Get(%q, c.Param(\"id\"))\n", col)
	sb.WriteString("\t\tif err != nil {\n")
	sb.WriteString("\t\t\tc.JSON(http.StatusNotFound, gin.H{\"error\": err.Error()})\n")
	sb.WriteString("\t\t\treturn\n")
	sb.WriteString("\t\t}\n")
	sb.WriteString("\t\tc.JSON(http.StatusOK, entity)\n")
	sb.WriteString("\t})\n")

	// replace
	fmt.Fprintf(sb, "\tr.PUT(%q, func(c *gin.Context) {\n", "/"+col+"/:id")
	fmt.Fprintf(sb, "\t\tvar body %s\n", name)
	sb.WriteString("\t\tif err := c.ShouldBindJSON(&body); err != nil {\n")
	sb.WriteString("\t\t\tc.JSON(http.StatusUnprocessableEntity, gin.H{\"error\": err.Error()})\n")
	sb.WriteString("\t\t\treturn\n")
	sb.WriteString("\t\t}\n")
	sb.WriteString("\t\tdata, err := store.FromModel(body)\n")
	sb.WriteString("\t\tif err != nil {\n")
	sb.WriteString("\t\t\tc.JSON(http.StatusUnprocessableEntity, gin.H{\"error\": err.Error()})\n")
	sb.WriteString("\t\t\treturn\n")
	sb.WriteString("\t\t}\n")
	fmt.Fprintf(sb, "\t\tupdated, err := s.Update(%q, c.Param(\"id\"), data)\n", col)
	sb.WriteString("\t\tif err != nil {\n")
	sb.WriteString("\t\t\tc.JSON(http.StatusNotFound, gin.H{\"error\": err.Error()})\n")
	sb.WriteString("\t\t\treturn\n")
	sb.WriteString("\t\t}\n")
	sb.WriteString("\t\tc.JSON(http.StatusOK, updated)\n")
	sb.WriteString("\t})\n")

	// delete
	fmt.Fprintf(sb, "\tr.DELETE(%q, func(c *gin.Context) {\n", "/"+col+"/:id")
	fmt.Fprintf(sb, "\t\tif err := s.Delete(%q, c.Param(\"id\")); err != nil {\n", col)
	sb.WriteString("\t\t\tc.JSON(http.StatusNotFound, gin.H{\"error\": err.Error()})\n")
	sb.WriteString("\t\t\treturn\n")
	sb.WriteString("\t\t}\n")
	sb.WriteString("\t\tc.Status(http.StatusNoContent)\n")
	sb.WriteString("\t})\n")

	sb.WriteString("}\n\n")
}
