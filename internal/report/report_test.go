// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/akudrin/bibliograph/pkg/types"
)

func sampleDocs() []types.Document {
	return []types.Document{
		{ScopusID: "85000000002", MainTitle: "Beta", PubYear: 2020, DocumentType: "Article"},
		{ScopusID: "85000000001", MainTitle: "Alpha", PubYear: 2020, DOI: "10.1/alpha"},
	}
}

func TestSortByID(t *testing.T) {
	docs := sampleDocs()
	SortByID(docs)
	assert.Equal(t, "85000000001", docs[0].ScopusID)
	assert.Equal(t, "85000000002", docs[1].ScopusID)
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(&buf, sampleDocs())

	out := buf.String()
	assert.Contains(t, out, "85000000001")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "10.1/alpha")
	assert.Contains(t, out, "2 documents")
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(&buf, nil)
	assert.Equal(t, "No documents found.\n", buf.String())
}

func TestFormatTable_TruncatesLongTitle(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(&buf, []types.Document{{
		ScopusID:  "D1",
		MainTitle: strings.Repeat("x", 80),
		PubYear:   2020,
	}})
	assert.Contains(t, buf.String(), strings.Repeat("x", 57)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 61))
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, sampleDocs()))

	var decoded []types.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "Beta", decoded[0].MainTitle)
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatYAML(&buf, sampleDocs()))

	var decoded []types.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, 2020, decoded[1].PubYear)
}
