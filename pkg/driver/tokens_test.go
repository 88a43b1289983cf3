package driver

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/vmihailenco/msgpack.v2"
	"gopkg.in/yaml.v3"

	"github.com/Roybie/tigr/pkg/lexer"
)

var sampleRecords = []TokenRecord{
	{Kind: "Identifier", Lit: "x", Line: 1, Offset: 0},
	{Kind: "=", Line: 1, Offset: 2},
	{Kind: "Float", Lit: "1.5", Line: 1, Offset: 4},
	{Kind: "String", Lit: "hi", Line: 2, Offset: 13},
}

func TestTokenize(t *testing.T) {
	records, err := Tokenize("x = 1.5 // c\n'hi'")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords, records)
}

func TestTokenizeLexicalError(t *testing.T) {
	records, err := Tokenize("a $")
	require.Error(t, err)

	var lerr *lexer.LexicalError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, '$', lerr.Char)
	assert.Equal(t, []TokenRecord{{Kind: "Identifier", Lit: "a", Line: 1, Offset: 0}}, records)
}

func TestEncodeTokensJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTokens(&buf, sampleRecords[:2], FormatJSON))
	assert.JSONEq(t, `[
		{"kind": "Identifier", "lit": "x", "line": 1, "offset": 0},
		{"kind": "=", "line": 1, "offset": 2}
	]`, buf.String())

	buf.Reset()
	require.NoError(t, EncodeTokens(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestEncodeTokensYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTokens(&buf, sampleRecords, FormatYAML))

	var decoded []TokenRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleRecords, decoded)
	assert.Contains(t, buf.String(), "- kind: Identifier\n  lit: x\n")
}

func TestEncodeTokensMsgpack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTokens(&buf, sampleRecords, FormatMsgpack))

	var decoded []TokenRecord
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleRecords, decoded)
}

func TestEncodeTokensUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, EncodeTokens(&buf, sampleRecords, Format("xml")))
}
