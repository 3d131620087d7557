package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_NormalizesSpacing(t *testing.T) {
	input := []byte("package x\n\nfunc A()  {\nreturn\n}\n")
	got, err := Format(input, "x/models.go")
	require.NoError(t, err)
	assert.Equal(t, "package x\n\nfunc A() {\n\treturn\n}\n", string(got))
}

func TestFormat_InvalidSourceIsEmissionError(t *testing.T) {
	_, err := Format([]byte("func broken {{{"), "x/models.go")
	require.Error(t, err)
	var eerr *EmissionError
	assert.ErrorAs(t, err, &eerr)
}
