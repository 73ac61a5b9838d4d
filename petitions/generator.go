package petitions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nuxxor/Mevzubase/llm"
	"github.com/nuxxor/Mevzubase/models"
)

const systemPrompt = `Sen, Türk hukuku dilekçe üreticisisin.
Türkçe, resmi ve üçüncü tekil çoğul tonunu koru. Yeni olgu uydurma; yalnızca verilen verileri kullan.
Her iddiayı kanıtlarla eşleştir, boş alanları belirtme.
Kısaltmaları olduğu gibi koru (HMK, TBK vb.); asla açma, değiştirme veya yeniden adlandırma.
Hukuki sebepler alanını girdideki listeyle birebir aynı tut (sırayı koru, yeni ekleme/çıkarma yapma).
Faktları sadece yeniden ifade et; taraf/kişi/bedel ekleme, yeni detay üretme.
ÇIKTIYI SADECE JSON olarak döndür. Biçim:
{
  "subject": "...",
  "facts": ["...", "..."],
  "legal_basis": ["..."],
  "evidence": ["Ek-1: ...", "..."],
  "requests": ["..."],
  "tone_notes": "opsiyonel",
  "missing_fields": ["..."]
}
Başka açıklama ekleme.
`

// Sections is the structured draft content produced by the model
type Sections struct {
	Subject       string   `json:"subject"`
	Facts         []string `json:"facts"`
	LegalBasis    []string `json:"legal_basis"`
	Evidence      []string `json:"evidence"`
	Requests      []string `json:"requests"`
	ToneNotes     string   `json:"tone_notes,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// Output is the full generation result handed back over the wire
type Output struct {
	Text       string   `json:"text"`
	HTML       string   `json:"html"`
	QAWarnings []string `json:"qa_warnings"`
	Sections   Sections `json:"sections"`
}

// Generator produces petition documents from structured input
type Generator struct {
	llm llm.Client
}

// NewGenerator creates a new generator
func NewGenerator(client llm.Client) (*Generator, error) {
	if client == nil {
		return nil, errors.New("llm client is required")
	}
	return &Generator{llm: client}, nil
}

// GenerateSections asks the model to rewrite the input into formal section
// content. A response that does not parse as JSON falls back to the user's
// own input so generation always produces a document.
func (g *Generator) GenerateSections(ctx context.Context, in models.GenerationPayload) (Sections, error) {
	prompt := systemPrompt + "\n\n" + buildUserPrompt(in)

	raw, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return Sections{}, fmt.Errorf("section generation failed: %w", err)
	}

	return parseSections(raw, in), nil
}

// Generate runs the full pipeline: sections, text and HTML rendering, then
// QA over the result
func (g *Generator) Generate(ctx context.Context, in models.GenerationPayload) (*Output, error) {
	tpl := TemplateFor(in.PetitionType)

	sections, err := g.GenerateSections(ctx, in)
	if err != nil {
		return nil, err
	}

	text := RenderText(in, tpl, sections)
	htmlDoc := RenderHTML(in, tpl, sections)
	warnings := RunBasicQA(in, sections, tpl, text)

	return &Output{
		Text:       text,
		HTML:       htmlDoc,
		QAWarnings: warnings,
		Sections:   sections,
	}, nil
}

// buildUserPrompt serializes the input as an indented JSON block
func buildUserPrompt(in models.GenerationPayload) string {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "Girdi verileri (JSON):\n{}"
	}
	return "Girdi verileri (JSON):\n" + string(data)
}

// parseSections decodes the model response, falling back to input-derived
// sections when the response is not the requested JSON
func parseSections(raw string, in models.GenerationPayload) Sections {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var sections Sections
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		fallback := fallbackSections(in)
		fallback.ToneNotes = "LLM JSON parse edilemedi, kullanıcı girdisiyle oluşturuldu."
		return fallback
	}

	// Backfill anything the model left empty from the input
	fallback := fallbackSections(in)
	if sections.Subject == "" {
		sections.Subject = fallback.Subject
	}
	if len(sections.Facts) == 0 {
		sections.Facts = fallback.Facts
	}
	if len(sections.LegalBasis) == 0 {
		sections.LegalBasis = fallback.LegalBasis
	}
	if len(sections.Evidence) == 0 {
		sections.Evidence = fallback.Evidence
	}
	if len(sections.Requests) == 0 {
		sections.Requests = fallback.Requests
	}
	if sections.MissingFields == nil {
		sections.MissingFields = []string{}
	}

	return sections
}

// fallbackSections derives section content directly from the input
func fallbackSections(in models.GenerationPayload) Sections {
	facts := make([]string, 0, len(in.Facts))
	for _, f := range in.Facts {
		facts = append(facts, f.Summary)
	}

	evidence := make([]string, 0, len(in.Evidence))
	for _, ev := range in.Evidence {
		evidence = append(evidence, ev.Label)
	}

	return Sections{
		Subject:       in.Subject,
		Facts:         facts,
		LegalBasis:    in.LegalBasis,
		Evidence:      evidence,
		Requests:      in.Requests,
		MissingFields: []string{},
	}
}
