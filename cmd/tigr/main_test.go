package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roybie/tigr/pkg/ast"
	"github.com/Roybie/tigr/pkg/driver"
	"github.com/Roybie/tigr/pkg/lexer"
)

func writeTree(t *testing.T, dir, name string, expr ast.Expression) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, driver.EncodeTree(&buf, expr, driver.FormatForPath(name)))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("TIGR_CONFIG", "")
	var stdout, stderr bytes.Buffer
	status := run(args, &stdout, &stderr)
	return status, stdout.String(), stderr.String()
}

func forCollect() ast.Expression {
	return ast.ForCollect(
		ast.Bin(ast.OpMul, ast.ID("i"), ast.ID("e")),
		ast.ID("e"), ast.ID("i"), ast.RangeStep(ast.Int(0), ast.Int(6), ast.Int(2)),
	)
}

func TestRunTree(t *testing.T) {
	path := writeTree(t, t.TempDir(), "prog.json", forCollect())

	status, stdout, stderr := runCLI(t, "run", path)
	assert.Equal(t, 0, status, stderr)
	assert.Equal(t, "Arr[0, 2, 8]\n", stdout)
}

func TestRunTreeDumpEnv(t *testing.T) {
	path := writeTree(t, t.TempDir(), "prog.yaml", ast.Block(
		ast.Assign(ast.ID("x"), ast.Int(2)),
		ast.Native("print", ast.Str("hi"), ast.ID("x")),
		ast.Bin(ast.OpPow, ast.ID("x"), ast.Int(3)),
	))

	status, stdout, stderr := runCLI(t, "run", "--dump-env", path)
	assert.Equal(t, 0, status, stderr)
	assert.Equal(t, "hi 2\n8\nEnv:\n  x = 2\n", stdout)
}

func TestRunTreeWithConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeTree(t, dir, "prog.msgpack", ast.Bin(ast.OpAdd, ast.ID("answer"), ast.Int(1)))
	cfgPath := filepath.Join(dir, "tigr.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("globals:\n  answer: 41\ndump_env: true\n"), 0o644))

	status, stdout, stderr := runCLI(t, "--config", cfgPath, "run", path)
	assert.Equal(t, 0, status, stderr)
	assert.Equal(t, "42\nEnv:\n  answer = 41\n", stdout)
}

func TestRunTreeErrors(t *testing.T) {
	dir := t.TempDir()

	status, _, stderr := runCLI(t, "run", filepath.Join(dir, "missing.json"))
	assert.Equal(t, 1, status)
	assert.Contains(t, stderr, "missing.json")

	path := writeTree(t, dir, "bad.json", ast.Range(ast.Flt(1), ast.Int(2)))
	status, stdout, stderr := runCLI(t, "run", path)
	assert.Equal(t, 1, status)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "runtime error: range bounds must be integers")

	cfgPath := filepath.Join(dir, "tigr.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_call_depth: -1\n"), 0o644))
	status, _, stderr = runCLI(t, "--config", cfgPath, "run", path)
	assert.Equal(t, 1, status)
	assert.Contains(t, stderr, "max_call_depth must not be negative")
}

func TestLex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.tg")
	require.NoError(t, os.WriteFile(path, []byte("x += 1"), 0o644))

	status, stdout, stderr := runCLI(t, "lex", path)
	assert.Equal(t, 0, status, stderr)

	var records []driver.TokenRecord
	require.NoError(t, json.Unmarshal([]byte(stdout), &records))
	assert.Equal(t, []driver.TokenRecord{
		{Kind: "Identifier", Lit: "x", Line: 1, Offset: 0},
		{Kind: "+=", Line: 1, Offset: 2},
		{Kind: "Integer", Lit: "1", Line: 1, Offset: 5},
	}, records)

	status, stdout, _ = runCLI(t, "lex", "--format", "yaml", path)
	assert.Equal(t, 0, status)
	assert.True(t, strings.HasPrefix(stdout, "- kind: Identifier\n"), stdout)
}

func TestLexUnexpectedCharacter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.tg")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\ny $ 2\n"), 0o644))

	status, stdout, stderr := runCLI(t, "lex", path)
	assert.Equal(t, 1, status)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error on line 2:\ny $ 2\n  └> Unexpected Character '$'\n", stderr)
}

func TestReportLexicalErrorColumn(t *testing.T) {
	var buf bytes.Buffer
	src := "é = @"
	reportLexicalError(&buf, src, &lexer.LexicalError{Line: 1, Offset: strings.IndexByte(src, '@'), Char: '@'})
	assert.Equal(t, "Error on line 1:\né = @\n    └> Unexpected Character '@'\n", buf.String())
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	path := writeTree(t, dir, "prog.json", forCollect())

	status, stdout, stderr := runCLI(t, "convert", "--to", "yaml", path)
	assert.Equal(t, 0, status, stderr)
	assert.Contains(t, stdout, "type: ForLoop")

	yamlPath := filepath.Join(dir, "prog.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(stdout), 0o644))
	status, stdout, stderr = runCLI(t, "run", yamlPath)
	assert.Equal(t, 0, status, stderr)
	assert.Equal(t, "Arr[0, 2, 8]\n", stdout)
}

func TestUsageErrors(t *testing.T) {
	status, _, stderr := runCLI(t, "frobnicate")
	assert.Equal(t, 2, status)
	assert.Contains(t, stderr, "frobnicate")

	status, _, _ = runCLI(t, "lex", "--format", "xml", "prog.tg")
	assert.Equal(t, 2, status)
}

func TestSession(t *testing.T) {
	dir := t.TempDir()
	define := writeTree(t, dir, "define.json", ast.Assign(ast.ID("n"), ast.Int(5)))
	use := writeTree(t, dir, "use.json", ast.Bin(ast.OpMul, ast.ID("n"), ast.Int(2)))

	var out bytes.Buffer
	s, err := newSession(driver.DefaultConfig(), &out)
	require.NoError(t, err)

	assert.False(t, s.handle(":load "+define))
	assert.False(t, s.handle(":load "+use))
	assert.Equal(t, "5\n10\n", out.String())

	out.Reset()
	assert.False(t, s.handle(":env"))
	assert.Equal(t, "Env:\n  n = 5\n", out.String())

	out.Reset()
	assert.False(t, s.handle(":reset"))
	assert.False(t, s.handle(":env"))
	assert.Equal(t, "interpreter reset.\nEnv:\n", out.String())

	out.Reset()
	assert.False(t, s.handle("for (i, 0..3) i"))
	assert.Equal(t, "1:0 for\n1:4 (\n1:5 Identifier(\"i\")\n1:6 ,\n1:8 Integer(\"0\")\n1:9 ..\n1:11 Integer(\"3\")\n1:12 )\n1:14 Identifier(\"i\")\n", out.String())

	out.Reset()
	assert.False(t, s.handle("a ~"))
	assert.Contains(t, out.String(), "1:0 Identifier(\"a\")\nError on line 1:\na ~\n  └> Unexpected Character '~'\n")

	out.Reset()
	assert.False(t, s.handle(":load"))
	assert.False(t, s.handle(":bogus"))
	assert.False(t, s.handle("   "))
	assert.Equal(t, "usage: :load <tree>\nunknown command. Type :help for help.\n", out.String())

	assert.True(t, s.handle(":quit"))
}
