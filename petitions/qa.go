package petitions

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nuxxor/Mevzubase/models"
)

var firstPersonTokens = []string{" ben ", " biz ", " bana ", " beni ", " bizim ", " bize ", "bizler"}

// RunBasicQA checks the input and the generated sections for the usual
// drafting mistakes and returns human-readable warnings. Warnings never
// block generation; they ride along with the response for the user to act
// on.
func RunBasicQA(in models.GenerationPayload, sections Sections, tpl Template, renderedText string) []string {
	warnings := []string{}

	roles := map[models.PartyRole]bool{}
	for _, p := range in.Parties {
		roles[p.Role] = true
	}

	if strings.TrimSpace(in.Subject) == "" {
		warnings = append(warnings, "Dava konusu boş.")
	}

	upperCourt := strings.ToUpper(in.Court)
	if !strings.Contains(upperCourt, "MAHKEMES") && !strings.Contains(upperCourt, "BAŞSAVCILIĞI") {
		warnings = append(warnings, "Mahkeme/bulunduğu makam adı eksik veya hatalı görünüyor.")
	}

	if !roles[models.RoleDavaci] && !roles[models.RoleDavaciVekili] {
		warnings = append(warnings, "Davacı/vekili belirtilmemiş.")
	}

	if in.PetitionType != models.PetitionTypeSucDuyuru && !roles[models.RoleDavali] && !roles[models.RoleDavaliVekili] {
		warnings = append(warnings, "Davalı/vekili belirtilmemiş.")
	}

	isAppeal := in.PetitionType == models.PetitionTypeIstinaf || in.PetitionType == models.PetitionTypeTemyiz
	if isAppeal && in.DecisionReference == "" {
		warnings = append(warnings, "İstinaf/temyiz için karar numarası/tarihi eksik.")
	}
	if isAppeal && in.ServiceDate == "" {
		warnings = append(warnings, "Tebliğ tarihi belirtilmemiş (süre kontrolü yapın).")
	}

	if len(sections.Facts) == 0 {
		warnings = append(warnings, "Açıklamalar/fakt alanı boş.")
	}

	if len(sections.Requests) == 0 {
		warnings = append(warnings, "Sonuç ve istem bölümü boş.")
	}

	if in.ServiceDate != "" {
		if parsed, err := time.Parse("2006-01-02", in.ServiceDate); err == nil && parsed.After(time.Now()) {
			warnings = append(warnings, "Tebliğ tarihi gelecekte görünüyor, kontrol edin.")
		}
	}

	if len(in.LegalBasis) > 0 && len(sections.LegalBasis) == 0 {
		warnings = append(warnings, "Hukuki sebepler girdide vardı ancak taslakta görünmüyor.")
	}

	if len(in.Evidence) > 0 && len(sections.Evidence) == 0 {
		warnings = append(warnings, "Deliller girdide vardı ancak taslakta görünmüyor.")
	}

	if missing := unmatchedEvidenceRefs(in); len(missing) > 0 {
		warnings = append(warnings, fmt.Sprintf("Delil referansı eşleşmedi: %s", strings.Join(missing, ", ")))
	}

	if renderedText != "" {
		lower := strings.ToLower(renderedText)
		for _, token := range firstPersonTokens {
			if strings.Contains(lower, token) {
				warnings = append(warnings, "Metinde birinci tekil/çoğul dil tespit edildi (resmi tondan kaçının).")
				break
			}
		}
	}

	return warnings
}

// unmatchedEvidenceRefs returns sorted fact evidence references that point
// at no declared evidence label
func unmatchedEvidenceRefs(in models.GenerationPayload) []string {
	labels := map[string]bool{}
	for _, ev := range in.Evidence {
		labels[ev.Label] = true
	}

	seen := map[string]bool{}
	var missing []string
	for _, fact := range in.Facts {
		for _, ref := range fact.EvidenceRefs {
			if !labels[ref] && !seen[ref] {
				seen[ref] = true
				missing = append(missing, ref)
			}
		}
	}

	sort.Strings(missing)
	return missing
}
