package verify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pv-udpv/opendirect21-adcom/internal/emit"
	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
	"github.com/pv-udpv/opendirect21-adcom/internal/verify"
)

const verifyDoc = `## Object: Account

|Attribute|Description|Type|
|--|--|--|
|id*|Account ID|string (36)|
|name*|Account name|string (255)|

## Object: Contact

|Attribute|Description|Type|
|--|--|--|
|id*|Contact ID|string (36)|
|email*|Email address|string (255)|
`

func generate(t *testing.T, content string) (*spec.Document, *emit.Output) {
	t.Helper()
	doc := spec.Parse(content)
	out, err := emit.Run(doc, "opendirect")
	require.NoError(t, err)
	return doc, out
}

func TestVerify_CountsMatch(t *testing.T) {
	doc, out := generate(t, verifyDoc)
	res, err := verify.Verify(doc, out.Models, out.Routes)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ModelCount)
	assert.Equal(t, 2, res.RouteGroups)
	assert.Zero(t, res.EmptySections)
}

func TestVerify_DeletedSectionChangesCount(t *testing.T) {
	trimmed := verifyDoc[:strings.Index(verifyDoc, "## Object: Contact")]
	doc, out := generate(t, trimmed)
	res, err := verify.Verify(doc, out.Models, out.Routes)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ModelCount)
	assert.Equal(t, 1, res.RouteGroups)
}

func TestVerify_MissingModelIsMismatch(t *testing.T) {
	doc, _ := generate(t, verifyDoc)

	// Emit from a document with one fewer object, then verify against the
	// full document: a missing model and route group must be reported.
	trimmed := spec.Parse(verifyDoc[:strings.Index(verifyDoc, "## Object: Contact")])
	short, err := emit.Run(trimmed, "opendirect")
	require.NoError(t, err)

	_, err = verify.Verify(doc, short.Models, short.Routes)
	require.Error(t, err)
	var merr *verify.MismatchError
	require.ErrorAs(t, err, &merr)
	assert.NotEmpty(t, merr.Problems)
}

func TestVerify_SyntaxErrorIsFatal(t *testing.T) {
	doc, out := generate(t, verifyDoc)
	broken := append([]byte{}, out.Models...)
	broken = append(broken, []byte("\nfunc broken( {\n")...)
	_, err := verify.Verify(doc, broken, out.Routes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestVerify_EmptySectionsSurface(t *testing.T) {
	doc, out := generate(t, verifyDoc+"\n## Object: Ghost\n\nNo table.\n")
	res, err := verify.Verify(doc, out.Models, out.Routes)
	require.NoError(t, err, "a tableless section is a warning, not a mismatch")
	assert.Equal(t, 1, res.EmptySections)
}
