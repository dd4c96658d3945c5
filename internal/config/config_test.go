package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/newrelic/go-easy-modifiers/modifier"
	"github.com/newrelic/go-easy-modifiers/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents string
	}{
		{
			name: "yaml",
			file: "modifiers.yaml",
			contents: `
separator: "\t"
debug: true
modifiers:
  - keyword: public
    category: access
  - keyword: static
    category: static
  - keyword: async
    category: Other
`,
		},
		{
			name: "toml",
			file: "modifiers.toml",
			contents: `
separator = "\t"
debug = true

[[modifiers]]
keyword = "public"
category = "access"

[[modifiers]]
keyword = "static"
category = "static"

[[modifiers]]
keyword = "async"
category = "other"
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.file, tt.contents))
			require.NoError(t, err)
			assert.True(t, cfg.Debug)
			assert.Len(t, cfg.Modifiers, 3)

			table, err := cfg.Table()
			require.NoError(t, err)
			assert.Equal(t, []syntax.Kind{syntax.PublicKeyword, syntax.StaticKeyword, syntax.AsyncKeyword}, table.Kinds())

			c, err := table.Category(syntax.AsyncKeyword)
			require.NoError(t, err)
			assert.Equal(t, modifier.Other, c)

			sep, err := cfg.SeparatorTrivia()
			require.NoError(t, err)
			assert.Equal(t, []syntax.Trivia{{Kind: syntax.Whitespace, Text: "\t"}}, sep)
		})
	}
}

func TestLoad_RejectsUnknownKeyword(t *testing.T) {
	_, err := Load(writeConfig(t, "bad.yaml", "modifiers:\n  - keyword: class\n    category: access\n"))
	assert.ErrorIs(t, err, modifier.ErrInvalidKind)

	_, err = Load(writeConfig(t, "bad.yaml", "modifiers:\n  - keyword: publik\n    category: access\n"))
	assert.ErrorIs(t, err, modifier.ErrInvalidKind)
}

func TestLoad_RejectsUnknownCategory(t *testing.T) {
	_, err := Load(writeConfig(t, "bad.toml", "[[modifiers]]\nkeyword = \"public\"\ncategory = \"visibility\"\n"))
	assert.ErrorIs(t, err, modifier.ErrInvalidCategory)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "broken.yaml", "modifiers: [\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "dup.yaml", "modifiers:\n  - {keyword: public, category: access}\n  - {keyword: public, category: other}\n"))
	assert.ErrorContains(t, err, "more than once")
}

func TestSeparatorTrivia(t *testing.T) {
	tests := []struct {
		name      string
		separator string
		want      []syntax.Trivia
		wantErr   bool
	}{
		{name: "default", want: []syntax.Trivia{syntax.Space()}},
		{name: "two spaces", separator: "  ", want: []syntax.Trivia{{Kind: syntax.Whitespace, Text: "  "}}},
		{name: "newline and indent", separator: "\n  ", want: []syntax.Trivia{syntax.EndOfLine(), {Kind: syntax.Whitespace, Text: "  "}}},
		{name: "not whitespace", separator: "/**/", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Separator: tt.separator}
			got, err := cfg.SeparatorTrivia()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSeparator)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEditor(t *testing.T) {
	e, err := Default().Editor()
	require.NoError(t, err)

	decl, _, err := e.MakePublic(syntax.NewField("int", "count", syntax.PrivateKeyword))
	require.NoError(t, err)
	assert.Equal(t, "public int count;\n", decl.String())
}
