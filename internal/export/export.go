// Package export saves translation results as text, markdown or PDF.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/verbapilot/internal/assets"
	"github.com/at-ishikawa/verbapilot/internal/phrase"
)

// Target is the translation into one language.
type Target struct {
	Language string
	Name     string
	Text     string
}

// Report is everything shown for one translated input.
type Report struct {
	Text           string
	SourceLanguage string
	Targets        []Target
	Expressions    []phrase.Entry
	GeneratedAt    time.Time
}

var boldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// Writer saves reports, rendering markdown through a report template.
type Writer struct {
	template *template.Template
}

// NewWriter loads the markdown template at templatePath, or the embedded
// one when templatePath is empty.
func NewWriter(templatePath string) (*Writer, error) {
	tmpl, err := assets.ParseReportTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseReportTemplate(%s) > %w", templatePath, err)
	}
	return &Writer{template: tmpl}, nil
}

// Write saves report to path in the format implied by its extension and
// returns the absolute path written.
func (w *Writer) Write(path string, report Report) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", "":
		if err := writeFile(path, Plain(report)); err != nil {
			return "", err
		}
	case ".md", ".markdown":
		markdown, err := w.Markdown(report)
		if err != nil {
			return "", err
		}
		if err := writeFile(path, markdown); err != nil {
			return "", err
		}
	case ".pdf":
		markdown, err := w.Markdown(report)
		if err != nil {
			return "", err
		}
		if err := WritePDF(path, markdown); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported output format %q, use .txt, .md or .pdf", filepath.Ext(path))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

// Plain is the translated text alone. Multiple targets are separated by a
// blank line and prefixed with their language code.
func Plain(report Report) []byte {
	if len(report.Targets) == 1 {
		return []byte(report.Targets[0].Text + "\n")
	}
	var b strings.Builder
	for i, t := range report.Targets {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s\n", t.Language, t.Text)
	}
	return []byte(b.String())
}

func (w *Writer) Markdown(report Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.template.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("template.Execute > %w", err)
	}
	return buf.Bytes(), nil
}

// WritePDF renders markdown into a PDF at path.
func WritePDF(path string, markdown []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", path, "", nil, mdtopdf.LIGHT)
	renderer.UpdateBlockquoteStyler()
	if err := renderer.Process(plainBlockquotes(markdown)); err != nil {
		return fmt.Errorf("renderer.Process > %w", err)
	}
	return nil
}

// mdtopdf renders blockquotes in italics and cannot mix in bold.
func plainBlockquotes(content []byte) []byte {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "> ") {
			lines[i] = boldPattern.ReplaceAllString(line, "$1")
		}
	}
	return []byte(strings.Join(lines, "\n"))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}
