// Package export writes generated petitions to hand-off files: plain text,
// Markdown, and standalone HTML rendered from the Markdown.
package export

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/nuxxor/Mevzubase/models"
	"github.com/nuxxor/Mevzubase/petitions"
)

// Markdown builds a Markdown document from the generated sections, keeping
// the same section order the renderers use
func Markdown(in models.GenerationPayload, sections petitions.Sections) string {
	var sb strings.Builder

	sb.WriteString("# " + strings.ReplaceAll(in.Court, "\n", " ") + "\n\n")

	if len(in.Parties) > 0 {
		sb.WriteString("## Taraflar\n\n")
		for _, p := range in.Parties {
			label := strings.ToUpper(strings.ReplaceAll(string(p.Role), "_", " "))
			sb.WriteString("- **" + label + ":** " + p.Name + "\n")
		}
		sb.WriteString("\n")
	}

	if in.DecisionReference != "" {
		sb.WriteString("## Başvurusu Yapılan Karar\n\n" + in.DecisionReference + "\n\n")
	}

	subject := sections.Subject
	if subject == "" {
		subject = in.Subject
	}
	sb.WriteString("## Dava Konusu\n\n" + subject + "\n\n")

	if len(sections.Facts) > 0 {
		sb.WriteString("## Açıklamalar\n\n")
		for i, fact := range sections.Facts {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, fact))
		}
		sb.WriteString("\n")
	}

	basis := in.LegalBasis
	if len(basis) == 0 {
		basis = sections.LegalBasis
	}
	if len(basis) > 0 {
		sb.WriteString("## Hukuki Sebepler\n\n" + strings.Join(basis, ", ") + "\n\n")
	}

	if len(sections.Evidence) > 0 {
		sb.WriteString("## Deliller\n\n")
		for i, ev := range sections.Evidence {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, ev))
		}
		sb.WriteString("\n")
	}

	if len(sections.Requests) > 0 {
		sb.WriteString("## Sonuç ve İstem\n\n")
		for i, req := range sections.Requests {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, req))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// HTMLFromMarkdown converts Markdown to a standalone HTML document
func HTMLFromMarkdown(md string) (string, error) {
	converter := goldmark.New(
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)

	var buf bytes.Buffer
	if err := converter.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"tr\">\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<style>body{font-family:'Times New Roman',serif;font-size:14px;line-height:1.5;max-width:720px;margin:40px auto;} h1{text-align:center;font-size:18px;}</style>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.Write(buf.Bytes())
	sb.WriteString("</body>\n</html>\n")

	return sb.String(), nil
}

// WriteText writes the rendered plain text to path
func WriteText(path string, out *petitions.Output) error {
	if err := os.WriteFile(path, []byte(out.Text), 0644); err != nil {
		return fmt.Errorf("failed to write text export: %w", err)
	}
	return nil
}

// WriteMarkdown writes the Markdown rendition to path
func WriteMarkdown(path string, in models.GenerationPayload, out *petitions.Output) error {
	md := Markdown(in, out.Sections)
	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return fmt.Errorf("failed to write markdown export: %w", err)
	}
	return nil
}

// WriteHTML writes a standalone HTML document rendered from the Markdown
// rendition to path
func WriteHTML(path string, in models.GenerationPayload, out *petitions.Output) error {
	doc, err := HTMLFromMarkdown(Markdown(in, out.Sections))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write html export: %w", err)
	}
	return nil
}
