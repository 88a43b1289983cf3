package driver

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roybie/tigr/pkg/ast"
	"github.com/Roybie/tigr/pkg/interpreter"
	"github.com/Roybie/tigr/pkg/runtime"
)

func sampleTree() ast.Expression {
	return ast.Block(
		ast.Assign(ast.ID("big"), ast.Int(1<<40)),
		ast.Assign(ast.ID("f"), ast.Fn([]string{"x"}, ast.ScopeBlock(
			ast.Bin(ast.OpMul, ast.ID("x"), ast.Flt(2.5)),
		))),
		ast.Assign(ast.ID("o"), ast.Obj(ast.Field("k", ast.Str("v")))),
		ast.ForCollect(
			ast.Call("f", ast.ID("i")),
			ast.ID("i"), ast.RangeStep(ast.Int(0), ast.Int(6), ast.Int(2)),
		),
	)
}

func TestFormats(t *testing.T) {
	for _, name := range []string{"json", "JSON", "yaml", "yml", "msgpack", "mp"} {
		f, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Contains(t, Formats, f)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)

	assert.Equal(t, FormatYAML, FormatForPath("prog.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("dir/prog.yaml"))
	assert.Equal(t, FormatMsgpack, FormatForPath("prog.MP"))
	assert.Equal(t, FormatJSON, FormatForPath("prog.json"))
	assert.Equal(t, FormatJSON, FormatForPath("prog"))
}

func TestTreeRoundTrip(t *testing.T) {
	want, err := json.Marshal(sampleTree())
	require.NoError(t, err)

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeTree(&buf, sampleTree(), format))

			decoded, err := DecodeTree(buf.Bytes(), format)
			require.NoError(t, err)
			got, err := json.Marshal(decoded)
			require.NoError(t, err)
			assert.JSONEq(t, string(want), string(got))

			val, err := interpreter.New().Evaluate(decoded)
			require.NoError(t, err)
			assert.Equal(t, "Arr[0.0, 5.0, 10.0]", runtime.Format(val))
		})
	}
}

func TestDecodeTreeYAML(t *testing.T) {
	expr, err := DecodeTree([]byte(`
type: BinaryExpression
operator: "/"
left: {type: IntegerLiteral, value: 7}
right: {type: IntegerLiteral, value: 2}
`), FormatYAML)
	require.NoError(t, err)
	val, err := interpreter.New().Evaluate(expr)
	require.NoError(t, err)
	assert.Equal(t, runtime.FloatValue{Val: 3.5}, val)
}

func TestDecodeTreeErrors(t *testing.T) {
	_, err := DecodeTree([]byte(`{"type": "Identifier"`), FormatJSON)
	assert.Error(t, err)

	_, err = DecodeTree([]byte(`{"type": "GotoStatement"}`), FormatJSON)
	assert.Error(t, err)

	_, err = DecodeTree([]byte(`[1, 2]`), FormatJSON)
	assert.Error(t, err)

	_, err = DecodeTree([]byte(`{}`), Format("xml"))
	assert.Error(t, err)
}

func TestLoadTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTree(&buf, ast.Bin(ast.OpAdd, ast.Int(1), ast.Int(2)), FormatYAML))
	path := writeFile(t, "prog.yaml", buf.String())

	expr, err := LoadTree(path)
	require.NoError(t, err)
	val, err := interpreter.New().Evaluate(expr)
	require.NoError(t, err)
	assert.Equal(t, runtime.IntegerValue{Val: 3}, val)

	_, err = LoadTree(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
