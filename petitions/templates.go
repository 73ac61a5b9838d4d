// Package petitions renders structured petition drafts into formal Turkish
// petition documents and runs basic quality checks on the result.
package petitions

import "github.com/nuxxor/Mevzubase/models"

// Section identifiers used in template ordering
const (
	SectionParties           = "parties"
	SectionDecisionReference = "decision_reference"
	SectionSubject           = "subject"
	SectionFacts             = "facts"
	SectionLegalBasis        = "legal_basis"
	SectionEvidence          = "evidence"
	SectionRequests          = "requests"
	SectionDateSignature     = "date_signature"
	SectionAttachments       = "attachments"
)

// Template describes the document skeleton for one petition type
type Template struct {
	PetitionType  models.PetitionType
	Heading       string // contains a %s placeholder for the court
	SectionsOrder []string
	Closing       string
}

const defaultClosing = "Saygılarımızla arz ederiz."

var standardOrder = []string{
	SectionParties,
	SectionSubject,
	SectionFacts,
	SectionLegalBasis,
	SectionEvidence,
	SectionRequests,
	SectionDateSignature,
	SectionAttachments,
}

var appealOrder = []string{
	SectionParties,
	SectionDecisionReference,
	SectionSubject,
	SectionFacts,
	SectionLegalBasis,
	SectionEvidence,
	SectionRequests,
	SectionDateSignature,
	SectionAttachments,
}

// Templates maps each petition type to its built-in template
var Templates = map[models.PetitionType]Template{
	models.PetitionTypeDava: {
		PetitionType:  models.PetitionTypeDava,
		Heading:       "%s\n\nSAYIN MAHKEMESİ'NE",
		SectionsOrder: standardOrder,
		Closing:       defaultClosing,
	},
	models.PetitionTypeCevap: {
		PetitionType:  models.PetitionTypeCevap,
		Heading:       "%s\n\nSAYIN MAHKEMESİ'NE",
		SectionsOrder: standardOrder,
		Closing:       defaultClosing,
	},
	models.PetitionTypeIstinaf: {
		PetitionType:  models.PetitionTypeIstinaf,
		Heading:       "%s\n\nBÖLGE ADLİYE MAHKEMESİ'NE",
		SectionsOrder: appealOrder,
		Closing:       defaultClosing,
	},
	models.PetitionTypeTemyiz: {
		PetitionType:  models.PetitionTypeTemyiz,
		Heading:       "%s\n\nT.C. YARGITAY BAŞKANLIĞI'NA",
		SectionsOrder: appealOrder,
		Closing:       defaultClosing,
	},
	models.PetitionTypeIdari: {
		PetitionType:  models.PetitionTypeIdari,
		Heading:       "%s\n\nSAYIN İDARİ MAHKEMESİ'NE",
		SectionsOrder: standardOrder,
		Closing:       defaultClosing,
	},
	models.PetitionTypeSucDuyuru: {
		PetitionType:  models.PetitionTypeSucDuyuru,
		Heading:       "%s\n\nCUMHURİYET BAŞSAVCILIĞI'NA",
		SectionsOrder: standardOrder,
		Closing:       defaultClosing,
	},
}

// TemplateFor returns the template for a petition type, falling back to the
// standard lawsuit template for unknown types
func TemplateFor(pt models.PetitionType) Template {
	if tpl, ok := Templates[pt]; ok {
		return tpl
	}
	return Templates[models.PetitionTypeDava]
}

// hasSection reports whether the template includes a section
func (t Template) hasSection(name string) bool {
	for _, s := range t.SectionsOrder {
		if s == name {
			return true
		}
	}
	return false
}
