package models

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// List names addressable by the list operations
const (
	ListParties  = "parties"
	ListFacts    = "facts"
	ListRequests = "requests"
	ListEvidence = "evidence"
)

var (
	ErrUnknownField = errors.New("unknown draft field")
	ErrUnknownList  = errors.New("unknown draft list")
)

// UpdateField sets a named scalar field and returns a new snapshot. The
// input draft is never mutated. No validation happens here; empty or
// malformed values are accepted as-is.
func UpdateField(d PetitionDraft, key, value string) (PetitionDraft, error) {
	out := d.Clone()
	switch key {
	case "petition_type":
		out.PetitionType = PetitionType(value)
	case "court":
		out.Court = value
	case "subject":
		out.Subject = value
	case "legal_basis":
		out.LegalBasis = value
	case "decision_reference":
		out.DecisionReference = value
	case "service_date":
		out.ServiceDate = value
	case "extra_notes":
		out.ExtraNotes = value
	default:
		return d, fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	return out, nil
}

// UpdateListItem applies an RFC 7386 merge patch to the list item at idx and
// returns a new snapshot. An out-of-range index is a no-op, matching remove
// semantics: list indices are the only addressing mechanism and a stale
// index must never fail loudly.
func UpdateListItem(d PetitionDraft, list string, idx int, patch json.RawMessage) (PetitionDraft, error) {
	out := d.Clone()
	switch list {
	case ListParties:
		if idx < 0 || idx >= len(out.Parties) {
			return out, nil
		}
		merged, err := mergeItem(out.Parties[idx], patch)
		if err != nil {
			return d, err
		}
		out.Parties[idx] = merged
	case ListFacts:
		if idx < 0 || idx >= len(out.Facts) {
			return out, nil
		}
		merged, err := mergeItem(out.Facts[idx], patch)
		if err != nil {
			return d, err
		}
		if merged.EvidenceRefs == nil {
			merged.EvidenceRefs = []string{}
		}
		out.Facts[idx] = merged
	case ListRequests:
		if idx < 0 || idx >= len(out.Requests) {
			return out, nil
		}
		var value string
		if err := json.Unmarshal(patch, &value); err != nil {
			return d, fmt.Errorf("invalid request value: %w", err)
		}
		out.Requests[idx] = value
	case ListEvidence:
		if idx < 0 || idx >= len(out.Evidence) {
			return out, nil
		}
		merged, err := mergeItem(out.Evidence[idx], patch)
		if err != nil {
			return d, err
		}
		out.Evidence[idx] = merged
	default:
		return d, fmt.Errorf("%w: %s", ErrUnknownList, list)
	}
	return out, nil
}

// AppendListItem appends a JSON-encoded item to the named list and returns a
// new snapshot
func AppendListItem(d PetitionDraft, list string, item json.RawMessage) (PetitionDraft, error) {
	out := d.Clone()
	switch list {
	case ListParties:
		var p Party
		if err := json.Unmarshal(item, &p); err != nil {
			return d, fmt.Errorf("invalid party: %w", err)
		}
		out.Parties = append(out.Parties, p)
	case ListFacts:
		var f Fact
		if err := json.Unmarshal(item, &f); err != nil {
			return d, fmt.Errorf("invalid fact: %w", err)
		}
		if f.EvidenceRefs == nil {
			f.EvidenceRefs = []string{}
		}
		out.Facts = append(out.Facts, f)
	case ListRequests:
		var r string
		if err := json.Unmarshal(item, &r); err != nil {
			return d, fmt.Errorf("invalid request: %w", err)
		}
		out.Requests = append(out.Requests, r)
	case ListEvidence:
		var e Evidence
		if err := json.Unmarshal(item, &e); err != nil {
			return d, fmt.Errorf("invalid evidence: %w", err)
		}
		out.Evidence = append(out.Evidence, e)
	default:
		return d, fmt.Errorf("%w: %s", ErrUnknownList, list)
	}
	return out, nil
}

// RemoveListItem drops the item at idx from the named list and returns a new
// snapshot. Subsequent items shift down by one. An out-of-range index is a
// no-op filter.
func RemoveListItem(d PetitionDraft, list string, idx int) (PetitionDraft, error) {
	out := d.Clone()
	switch list {
	case ListParties:
		if idx >= 0 && idx < len(out.Parties) {
			out.Parties = append(out.Parties[:idx], out.Parties[idx+1:]...)
		}
	case ListFacts:
		if idx >= 0 && idx < len(out.Facts) {
			out.Facts = append(out.Facts[:idx], out.Facts[idx+1:]...)
		}
	case ListRequests:
		if idx >= 0 && idx < len(out.Requests) {
			out.Requests = append(out.Requests[:idx], out.Requests[idx+1:]...)
		}
	case ListEvidence:
		if idx >= 0 && idx < len(out.Evidence) {
			out.Evidence = append(out.Evidence[:idx], out.Evidence[idx+1:]...)
		}
	default:
		return d, fmt.Errorf("%w: %s", ErrUnknownList, list)
	}
	return out, nil
}

// mergeItem round-trips a struct list item through an RFC 7386 merge patch
func mergeItem[T any](current T, patch json.RawMessage) (T, error) {
	var zero T

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal list item: %w", err)
	}

	mergedJSON, err := jsonpatch.MergePatch(currentJSON, patch)
	if err != nil {
		return zero, fmt.Errorf("failed to apply patch: %w", err)
	}

	var merged T
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return zero, fmt.Errorf("failed to decode patched item: %w", err)
	}
	return merged, nil
}
