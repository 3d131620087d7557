package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportName(t *testing.T) {
	cases := map[string]string{
		"id":           "ID",
		"name":         "Name",
		"dateCreated":  "DateCreated",
		"parent_id":    "ParentID",
		"url":          "URL",
		"Audit Status": "AuditStatus",
		"line1":        "Line1",
		"postalcode":   "Postalcode",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExportName(in), in)
	}
}
