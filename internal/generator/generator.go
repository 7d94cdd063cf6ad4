// Package generator renders a validated template context through a text
// template and writes the result. Escaping for LaTeX is exposed to the
// template author as the latexEscape function rather than applied to
// every field, so the template decides what gets escaped.
package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/Hermann-web/resumodel/internal/model"
	"github.com/Hermann-web/resumodel/internal/resumeerr"
)

// latexReplacements is the ordered substitution list. Backslash comes
// first so the backslashes inserted by later substitutions are not
// escaped again.
var latexReplacements = [][2]string{
	{`\`, `\textbackslash{}`},
	{`&`, `\&`},
	{`%`, `\%`},
	{`$`, `\$`},
	{`#`, `\#`},
	{`_`, `\_`},
	{`{`, `\{`},
	{`}`, `\}`},
	{`~`, `\textasciitilde{}`},
	{`^`, `\^{}`},
}

// LatexEscape escapes the LaTeX reserved characters in text.
func LatexEscape(text string) string {
	for _, r := range latexReplacements {
		text = strings.ReplaceAll(text, r[0], r[1])
	}
	return text
}

// Generator renders resumes from one parsed template.
type Generator struct {
	templatePath string
	tmpl         *template.Template
	log          *zap.Logger
}

// New parses the template at templatePath. The template sees the
// latexEscape function and fails the render on any missing map key.
func New(templatePath string, log *zap.Logger) (*Generator, error) {
	if log == nil {
		log = zap.NewNop()
	}

	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, &resumeerr.TemplateError{Path: templatePath, Err: err}
	}

	tmpl, err := template.New(filepath.Base(templatePath)).
		Funcs(template.FuncMap{"latexEscape": LatexEscape}).
		Option("missingkey=error").
		Parse(string(data))
	if err != nil {
		return nil, &resumeerr.TemplateError{Path: templatePath, Err: err}
	}

	log.Debug("parsed template", zap.String("template", templatePath))
	return &Generator{templatePath: templatePath, tmpl: tmpl, log: log}, nil
}

// Render fills the template with the resolved context.
func (g *Generator) Render(ctx model.TemplateContext) (string, error) {
	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, ctx); err != nil {
		return "", &resumeerr.TemplateError{Path: g.templatePath, Err: fmt.Errorf("render: %w", err)}
	}
	return buf.String(), nil
}

// RenderToFile renders the context and writes it to outPath, creating
// parent directories as needed and overwriting any existing file.
func (g *Generator) RenderToFile(ctx model.TemplateContext, outPath string) error {
	content, err := g.Render(ctx)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &resumeerr.ConfigError{Path: outPath, Err: fmt.Errorf("create output directory: %w", err)}
		}
	}
	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		return &resumeerr.ConfigError{Path: outPath, Err: fmt.Errorf("write output: %w", err)}
	}

	g.log.Info("generated resume", zap.String("output", outPath))
	return nil
}
