package petitions

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/nuxxor/Mevzubase/models"
)

const htmlStyle = "<style>body{font-family:'Times New Roman',serif;font-size:14px;line-height:1.5;} h1{text-align:center;font-size:18px;} h2{margin-top:12px;} ul,ol{padding-left:20px;} .section{margin-bottom:12px;}</style>"

// partyLines formats one display line per party in document order
func partyLines(parties []models.Party) []string {
	lines := make([]string, 0, len(parties))
	for _, party := range parties {
		label := strings.ToUpper(strings.ReplaceAll(string(party.Role), "_", " "))
		info := []string{party.Name}
		if party.TCID != "" {
			info = append(info, "TC: "+party.TCID)
		}
		if party.Address != "" {
			info = append(info, "Adres: "+party.Address)
		}
		if party.Representation != "" {
			info = append(info, party.Representation)
		}
		lines = append(lines, label+": "+strings.Join(info, " | "))
	}
	return lines
}

// numbered renders a titled, 1-indexed list; empty input renders nothing
func numbered(title string, items []string) []string {
	if len(items) == 0 {
		return nil
	}
	lines := []string{title}
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	return lines
}

// evidenceLabels falls back from generated evidence lines to the raw labels
func evidenceLabels(in models.GenerationPayload, sections Sections) []string {
	if len(sections.Evidence) > 0 {
		return sections.Evidence
	}
	labels := make([]string, 0, len(in.Evidence))
	for _, ev := range in.Evidence {
		labels = append(labels, ev.Label)
	}
	return labels
}

// RenderText renders the petition as plain text in the template's section
// order
func RenderText(in models.GenerationPayload, tpl Template, sections Sections) string {
	var out []string
	push := func(lines ...string) { out = append(out, lines...) }

	push(fmt.Sprintf(tpl.Heading, in.Court), "")

	if tpl.hasSection(SectionParties) {
		push(numbered("TARAFLAR:", partyLines(in.Parties))...)
		push("")
	}

	if tpl.hasSection(SectionDecisionReference) && in.DecisionReference != "" {
		push("BAŞVURUSU YAPILAN KARAR: "+in.DecisionReference, "")
	}

	if tpl.hasSection(SectionSubject) {
		subject := sections.Subject
		if subject == "" {
			subject = in.Subject
		}
		push("DAVA KONUSU: "+subject, "")
	}

	if tpl.hasSection(SectionFacts) {
		push(numbered("AÇIKLAMALAR:", sections.Facts)...)
		push("")
	}

	if tpl.hasSection(SectionLegalBasis) {
		basis := in.LegalBasis
		if len(basis) == 0 {
			basis = sections.LegalBasis
		}
		line := "Belirtilmedi"
		if len(basis) > 0 {
			line = strings.Join(basis, ", ")
		}
		push("HUKUKİ SEBEPLER: "+line, "")
	}

	if tpl.hasSection(SectionEvidence) {
		push(numbered("DELİLLER:", evidenceLabels(in, sections))...)
		push("")
	}

	if tpl.hasSection(SectionRequests) {
		push(numbered("SONUÇ ve İSTEM:", sections.Requests)...)
		push("")
	}

	if tpl.hasSection(SectionDateSignature) {
		push("Tarih: "+time.Now().Format("2006-01-02"), "İmza", "")
	}

	if tpl.hasSection(SectionAttachments) && len(in.Evidence) > 0 {
		push("EKLER:")
		for i, ev := range in.Evidence {
			label := ev.Label
			if label == "" {
				label = fmt.Sprintf("Ek-%d", i+1)
			}
			desc := label
			if ev.Description != "" {
				desc = label + " - " + ev.Description
			}
			push(fmt.Sprintf("Ek-%d: %s", i+1, desc))
		}
	}

	if tpl.Closing != "" {
		push("", tpl.Closing)
	}

	return strings.Join(out, "\n")
}

// RenderHTML renders the petition as self-contained HTML for the editing
// surface
func RenderHTML(in models.GenerationPayload, tpl Template, sections Sections) string {
	esc := html.EscapeString

	var parts []string
	parts = append(parts, htmlStyle)
	parts = append(parts, "<h1>"+esc(fmt.Sprintf(tpl.Heading, in.Court))+"</h1>")

	section := func(title, content string) {
		parts = append(parts, fmt.Sprintf(`<div class="section"><h2>%s</h2>%s</div>`, esc(title), content))
	}
	listItems := func(items []string) string {
		var sb strings.Builder
		for _, item := range items {
			sb.WriteString("<li>" + esc(item) + "</li>")
		}
		return sb.String()
	}

	if tpl.hasSection(SectionParties) {
		section("Taraflar", "<ul>"+listItems(partyLines(in.Parties))+"</ul>")
	}

	if tpl.hasSection(SectionDecisionReference) && in.DecisionReference != "" {
		section("Başvurusu Yapılan Karar", "<p>"+esc(in.DecisionReference)+"</p>")
	}

	if tpl.hasSection(SectionSubject) {
		subject := sections.Subject
		if subject == "" {
			subject = in.Subject
		}
		section("Dava Konusu", "<p>"+esc(subject)+"</p>")
	}

	if tpl.hasSection(SectionFacts) {
		section("Açıklamalar", "<ol>"+listItems(sections.Facts)+"</ol>")
	}

	if tpl.hasSection(SectionLegalBasis) {
		basis := in.LegalBasis
		if len(basis) == 0 {
			basis = sections.LegalBasis
		}
		content := "Belirtilmedi"
		if len(basis) > 0 {
			escaped := make([]string, len(basis))
			for i, b := range basis {
				escaped[i] = esc(b)
			}
			content = strings.Join(escaped, ", ")
		}
		section("Hukuki Sebepler", "<p>"+content+"</p>")
	}

	if tpl.hasSection(SectionEvidence) {
		section("Deliller", "<ol>"+listItems(evidenceLabels(in, sections))+"</ol>")
	}

	if tpl.hasSection(SectionRequests) {
		section("Sonuç ve İstem", "<ol>"+listItems(sections.Requests)+"</ol>")
	}

	if tpl.hasSection(SectionDateSignature) {
		section("Tarih ve İmza", "<p>"+time.Now().Format("2006-01-02")+"</p><p>İmza</p>")
	}

	if tpl.hasSection(SectionAttachments) && len(in.Evidence) > 0 {
		var items []string
		for i, ev := range in.Evidence {
			label := ev.Label
			if label == "" {
				label = fmt.Sprintf("Ek-%d", i+1)
			}
			desc := label
			if ev.Description != "" {
				desc = label + " - " + ev.Description
			}
			items = append(items, fmt.Sprintf("<li>Ek-%d: %s</li>", i+1, esc(desc)))
		}
		section("Ekler", "<ul>"+strings.Join(items, "")+"</ul>")
	}

	if tpl.Closing != "" {
		parts = append(parts, "<p>"+esc(tpl.Closing)+"</p>")
	}

	return strings.Join(parts, "\n")
}
