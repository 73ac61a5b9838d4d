package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerationPayload is the request body sent to the remote generation
// service. It mirrors PetitionDraft except that legal_basis is an ordered
// list of tokens rather than free text.
type GenerationPayload struct {
	PetitionType      PetitionType `json:"petition_type"`
	Court             string       `json:"court"`
	Subject           string       `json:"subject"`
	LegalBasis        []string     `json:"legal_basis"`
	Parties           []Party      `json:"parties"`
	Facts             []Fact       `json:"facts"`
	Requests          []string     `json:"requests"`
	Evidence          []Evidence   `json:"evidence"`
	DecisionReference string       `json:"decision_reference,omitempty"`
	ServiceDate       string       `json:"service_date,omitempty"`
	ExtraNotes        string       `json:"extra_notes,omitempty"`
}

// GenerationResponse is the remote service's success body
type GenerationResponse struct {
	HTML       string   `json:"html"`
	QAWarnings []string `json:"qa_warnings"`
}

// GenerationResult records one completed generation call. A new successful
// call supersedes the previous result entirely; warnings are never merged
// across calls.
type GenerationResult struct {
	ID          uuid.UUID `json:"id"`
	Content     string    `json:"content"`
	Warnings    []string  `json:"warnings"`
	CompletedAt time.Time `json:"completed_at"`
}

// SplitLegalBasis turns the free-text legal basis into ordered, trimmed,
// non-empty comma-separated tokens
func SplitLegalBasis(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// BuildGenerationPayload serializes a draft for the remote call
func BuildGenerationPayload(d PetitionDraft) GenerationPayload {
	d = d.Clone()
	return GenerationPayload{
		PetitionType:      d.PetitionType,
		Court:             d.Court,
		Subject:           d.Subject,
		LegalBasis:        SplitLegalBasis(d.LegalBasis),
		Parties:           d.Parties,
		Facts:             d.Facts,
		Requests:          d.Requests,
		Evidence:          d.Evidence,
		DecisionReference: d.DecisionReference,
		ServiceDate:       d.ServiceDate,
		ExtraNotes:        d.ExtraNotes,
	}
}
