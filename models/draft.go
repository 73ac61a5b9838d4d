package models

// PetitionType represents the kind of petition being drafted
type PetitionType string

const (
	PetitionTypeDava      PetitionType = "dava_dilekcesi"
	PetitionTypeCevap     PetitionType = "cevap_dilekcesi"
	PetitionTypeIstinaf   PetitionType = "istinaf"
	PetitionTypeTemyiz    PetitionType = "temyiz"
	PetitionTypeIdari     PetitionType = "idari"
	PetitionTypeSucDuyuru PetitionType = "suc_duyurusu"
)

// PartyRole represents the procedural role of a party
type PartyRole string

const (
	RoleDavaci       PartyRole = "davaci"
	RoleDavali       PartyRole = "davali"
	RoleDavaciVekili PartyRole = "davaci_vekili"
	RoleDavaliVekili PartyRole = "davali_vekili"
	RoleMukabil      PartyRole = "mukabil"
)

// Party represents one party to the petition
type Party struct {
	Role           PartyRole `json:"role"`
	Name           string    `json:"name"`
	TCID           string    `json:"tc_id"`
	Address        string    `json:"address"`
	Representation string    `json:"representation,omitempty"`
}

// Fact represents a single factual assertion and the evidence backing it
type Fact struct {
	Summary      string   `json:"summary"`
	EvidenceRefs []string `json:"evidence_refs"`
}

// Evidence represents an evidence item. Label is a display tag such as
// "Ek-1"; duplicates are allowed.
type Evidence struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	FileID      string `json:"file_id,omitempty"`
}

// PetitionDraft is the canonical form state for the one live draft of a
// session. LegalBasis is kept as free text while editing and split into
// tokens only when a generation payload is built.
type PetitionDraft struct {
	PetitionType      PetitionType `json:"petition_type"`
	Court             string       `json:"court"`
	Subject           string       `json:"subject"`
	LegalBasis        string       `json:"legal_basis"`
	Parties           []Party      `json:"parties"`
	Facts             []Fact       `json:"facts"`
	Requests          []string     `json:"requests"`
	Evidence          []Evidence   `json:"evidence"`
	DecisionReference string       `json:"decision_reference,omitempty"`
	ServiceDate       string       `json:"service_date,omitempty"`
	ExtraNotes        string       `json:"extra_notes,omitempty"`
}

// DefaultDraft returns the seed template used when no persisted draft exists
func DefaultDraft() PetitionDraft {
	return PetitionDraft{
		PetitionType: PetitionTypeDava,
		Court:        "ANKARA NÖBETÇİ ASLİYE HUKUK MAHKEMESİ",
		Subject:      "Fazlaya ilişkin haklarımız saklı kalmak kaydıyla...",
		LegalBasis:   "TBK, HMK ve ilgili mevzuat",
		Parties: []Party{
			{Role: RoleDavaci},
			{Role: RoleDavali},
		},
		Facts:    []Fact{{Summary: "", EvidenceRefs: []string{}}},
		Requests: []string{""},
		Evidence: []Evidence{{Label: "Ek-1"}},
	}
}

// Clone returns a deep copy of the draft
func (d PetitionDraft) Clone() PetitionDraft {
	out := d

	out.Parties = make([]Party, len(d.Parties))
	copy(out.Parties, d.Parties)

	out.Facts = make([]Fact, len(d.Facts))
	for i, f := range d.Facts {
		refs := make([]string, len(f.EvidenceRefs))
		copy(refs, f.EvidenceRefs)
		out.Facts[i] = Fact{Summary: f.Summary, EvidenceRefs: refs}
	}

	out.Requests = make([]string, len(d.Requests))
	copy(out.Requests, d.Requests)

	out.Evidence = make([]Evidence, len(d.Evidence))
	copy(out.Evidence, d.Evidence)

	return out
}

// Normalize replaces nil list fields with empty slices. A draft decoded from
// an older persisted copy may carry nulls; every list field is non-nil after
// this call.
func (d *PetitionDraft) Normalize() {
	if d.Parties == nil {
		d.Parties = []Party{}
	}
	if d.Facts == nil {
		d.Facts = []Fact{}
	}
	for i := range d.Facts {
		if d.Facts[i].EvidenceRefs == nil {
			d.Facts[i].EvidenceRefs = []string{}
		}
	}
	if d.Requests == nil {
		d.Requests = []string{}
	}
	if d.Evidence == nil {
		d.Evidence = []Evidence{}
	}
}
