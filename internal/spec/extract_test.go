package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoObjectDoc = `# OpenDirect Specification

## Object: Organization

An organization such as an advertiser, agency or publisher.

|Attribute|Description|Type|
|--|--|--|
|id*|Organization ID|string (36)|
|name*|Organization name|string (255)|

## Object: Account

|Attribute|Description|Type|
|--|--|--|
|id*|Account ID|string (36)|
`

func TestExtractSections_DocumentOrder(t *testing.T) {
	sections := ExtractSections(twoObjectDoc)
	require.Len(t, sections, 2)
	assert.Equal(t, "Organization", sections[0].Name)
	assert.Equal(t, "Account", sections[1].Name)
	assert.Equal(t, SectionObject, sections[0].Kind)
}

func TestExtractSections_DescriptionIsFirstParagraph(t *testing.T) {
	sections := ExtractSections(twoObjectDoc)
	require.Len(t, sections, 2)
	assert.Equal(t, "An organization such as an advertiser, agency or publisher.", sections[0].Description)
	assert.Empty(t, sections[1].Description)
}

func TestExtractSections_HeadingStyles(t *testing.T) {
	doc := "# Object: Alpha\n\n|Attribute|Description|Type|\n|--|--|--|\n|id|x|string|\n\n### Object: Beta\n\n|Attribute|Description|Type|\n|-----------|-------------|------|\n|id|x|string|\n"
	sections := ExtractSections(doc)
	require.Len(t, sections, 2)
	assert.Equal(t, "Alpha", sections[0].Name)
	assert.Equal(t, "Beta", sections[1].Name)
	assert.NotEmpty(t, sections[0].TableBlock)
	assert.NotEmpty(t, sections[1].TableBlock)
}

func TestExtractSections_MissingTableIsNonFatal(t *testing.T) {
	doc := "## Object: Ghost\n\nNo table here.\n\n## Object: Real\n\n|Attribute|Description|Type|\n|--|--|--|\n|id|x|string|\n"
	sections := ExtractSections(doc)
	require.Len(t, sections, 2)
	assert.Empty(t, sections[0].TableBlock)
	assert.NotEmpty(t, sections[1].TableBlock)
}

func TestExtractSections_ListSections(t *testing.T) {
	doc := "### List: Audit Status\n\n|Value|Description|\n|--|--|\n|1|Pending audit|\n|2|Approved|\n"
	sections := ExtractSections(doc)
	require.Len(t, sections, 1)
	assert.Equal(t, SectionList, sections[0].Kind)
	assert.Equal(t, "Audit Status", sections[0].Name)
	assert.NotEmpty(t, sections[0].TableBlock)
}

func TestParseTable_SkipsSeparatorAndReportsBadRows(t *testing.T) {
	block := "|Attribute|Description|Type|\n|--|--|--|\n|id|the id|string|\n|broken|only two|\n|name|the name|string|"
	header, body, errs := ParseTable(block)
	assert.Equal(t, []string{"Attribute", "Description", "Type"}, header.Cells)
	require.Len(t, body, 2)
	assert.Equal(t, "id", body[0].Cells[0])
	assert.Equal(t, "name", body[1].Cells[0])
	assert.Len(t, errs, 1)
}

func TestParseTable_WideSeparators(t *testing.T) {
	block := "| Attribute | Description | Type |\n|-----------|-------------|------|\n| id | the id | string |"
	_, body, errs := ParseTable(block)
	require.Empty(t, errs)
	require.Len(t, body, 1)
	assert.Equal(t, []string{"id", "the id", "string"}, body[0].Cells)
}
