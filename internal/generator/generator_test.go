package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hermann-web/resumodel/internal/model"
	"github.com/Hermann-web/resumodel/internal/resumeerr"
)

func TestLatexEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"reserved characters", "100% & $5_a", `100\% \& \$5\_a`},
		{"backslash handled first", `a\b`, `a\textbackslash{}b`},
		{"braces", "{x}", `\{x\}`},
		{"tilde and caret", "~x^y", `\textasciitilde{}x\^{}y`},
		{"hash", "#1", `\#1`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LatexEscape(tt.in))
		})
	}
}

// The backslash substitution must run before the others; otherwise the
// backslashes it inserts would themselves get escaped.
func TestLatexEscape_NoDoubleEscape(t *testing.T) {
	got := LatexEscape(`\%`)
	assert.Equal(t, `\textbackslash{}\%`, got)
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.tex.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sampleContext() model.TemplateContext {
	return model.TemplateContext{
		PersonalInfo: model.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Title:        "Engineer",
		Summary:      "builds things",
		Sections: model.Sections{
			Experiences: []model.Experience{
				{Title: "Dev 100%", Company: "ACME", Date: "2024"},
			},
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("missing template is a template error", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing.tmpl"), nil)
		var te *resumeerr.TemplateError
		require.ErrorAs(t, err, &te)
	})

	t.Run("unparseable template is a template error", func(t *testing.T) {
		path := writeTemplate(t, "{{ .Title")
		_, err := New(path, nil)
		var te *resumeerr.TemplateError
		require.ErrorAs(t, err, &te)
	})
}

func TestRender(t *testing.T) {
	t.Run("renders context fields", func(t *testing.T) {
		path := writeTemplate(t, "\\name{ {{- .PersonalInfo.Name -}} }\n{{ .Title }}\n")
		gen, err := New(path, nil)
		require.NoError(t, err)

		out, err := gen.Render(sampleContext())
		require.NoError(t, err)
		assert.Contains(t, out, `\name{Jane Doe}`)
		assert.Contains(t, out, "Engineer")
	})

	t.Run("latexEscape is available as a template func", func(t *testing.T) {
		path := writeTemplate(t, "{{ range .Sections.Experiences }}{{ latexEscape .Title }}{{ end }}")
		gen, err := New(path, nil)
		require.NoError(t, err)

		out, err := gen.Render(sampleContext())
		require.NoError(t, err)
		assert.Equal(t, `Dev 100\%`, out)
	})

	t.Run("undefined field fails as a template error", func(t *testing.T) {
		path := writeTemplate(t, "{{ .NoSuchField }}")
		gen, err := New(path, nil)
		require.NoError(t, err)

		_, err = gen.Render(sampleContext())
		var te *resumeerr.TemplateError
		require.ErrorAs(t, err, &te)
	})
}

func TestRenderToFile(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := writeTemplate(t, "Hello {{ .PersonalInfo.Name }}")
		gen, err := New(path, nil)
		require.NoError(t, err)

		out := filepath.Join(t.TempDir(), "nested", "dir", "resume.tex")
		require.NoError(t, gen.RenderToFile(sampleContext(), out))

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "Hello Jane Doe", string(content))
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		path := writeTemplate(t, "{{ .Title }}")
		gen, err := New(path, nil)
		require.NoError(t, err)

		out := filepath.Join(t.TempDir(), "resume.tex")
		require.NoError(t, os.WriteFile(out, []byte("stale"), 0644))
		require.NoError(t, gen.RenderToFile(sampleContext(), out))

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "Engineer", string(content))
	})
}
