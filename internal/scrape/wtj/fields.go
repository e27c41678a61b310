package wtj

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"wtj-scraper/internal/domain"
)

// ErrDecode is wrapped when an API body is not JSON at all.
var ErrDecode = errors.New("decode company payload")

// Metas is the page-level metadata of a company payload.
type Metas struct {
	Description *string
}

// ExtractFields builds a company record from a pages API body. Every
// content block is visited; a later match overwrites an earlier one.
// Only a body that is not JSON at all is an error; malformed parts of the
// section tree are skipped with a warning.
func ExtractFields(body []byte) (domain.Company, Metas, error) {
	if !json.Valid(body) {
		return domain.Company{}, Metas{}, fmt.Errorf("%w: body is not valid JSON", ErrDecode)
	}

	var rec domain.Company
	page := objectFields(body, "$")["page"]
	fields := objectFields(page, "page")

	for i, section := range arrayItems(fields["sections"], "page.sections") {
		sectionPath := fmt.Sprintf("page.sections[%d]", i)
		for j, container := range arrayItems(objectFields(section, sectionPath)["containers"], sectionPath+".containers") {
			containerPath := fmt.Sprintf("%s.containers[%d]", sectionPath, j)
			for k, block := range arrayItems(objectFields(container, containerPath)["blocks"], containerPath+".blocks") {
				blockPath := fmt.Sprintf("%s.blocks[%d]", containerPath, k)
				for l, raw := range arrayItems(objectFields(block, blockPath)["contents"], blockPath+".contents") {
					var c content
					if err := json.Unmarshal(raw, &c); err != nil {
						slog.Warn("skipping malformed content", "path", fmt.Sprintf("%s.contents[%d]", blockPath, l), "err", err)
						continue
					}
					applyContent(&rec, c)
				}
			}
		}
	}

	metas := objectFields(fields["metas"], "page.metas")
	return rec, Metas{Description: lenientString(metas["description"], "page.metas.description")}, nil
}

// objectFields decodes raw as a JSON object. Absent or null input yields
// nil quietly; any other non-object is logged and yields nil.
func objectFields(raw json.RawMessage, path string) map[string]json.RawMessage {
	if isNull(raw) {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		slog.Warn("skipping malformed object", "path", path, "err", err)
		return nil
	}
	return m
}

// arrayItems is objectFields for arrays.
func arrayItems(raw json.RawMessage, path string) []json.RawMessage {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("skipping malformed array", "path", path, "err", err)
		return nil
	}
	return items
}

// lenientString returns raw as a string, or nil when it is absent, null
// or of another type.
func lenientString(raw json.RawMessage, path string) *string {
	if isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.Warn("ignoring non-string value", "path", path, "err", err)
		return nil
	}
	return &s
}

func applyContent(rec *domain.Company, c content) {
	if len(c.Properties) == 0 {
		return
	}

	var org organizationProps
	if err := json.Unmarshal(c.Properties, &org); err == nil && len(org.Organization) > 0 {
		rec.Name = nil
		if raw, ok := org.Organization["name"]; ok {
			var name *string
			if json.Unmarshal(raw, &name) == nil {
				rec.Name = name
			}
		}
	}

	kind := ParseContentKind(c.kindName())
	switch kind {
	case KindMap:
		var p mapProps
		if !decodeProps(c, &p) {
			return
		}
		rec.Location = p.Headquarter.City

	case KindCompanyStats:
		var p map[string]any
		if !decodeProps(c, &p) {
			return
		}
		rec.CompanyStats = p

	case KindSocialNetworks:
		var p socialNetworksProps
		if !decodeProps(c, &p) {
			return
		}
		networks := make(map[string]*string, len(p.Networks))
		for name, raw := range p.Networks {
			if isNull(raw) {
				networks[name] = nil
				continue
			}
			var u string
			if err := json.Unmarshal(raw, &u); err != nil {
				slog.Warn("skipping non-string social network", "network", name, "err", err)
				continue
			}
			networks[name] = &u
		}
		rec.SocialNetworks = networks

	case KindText:
		var p textProps
		if !decodeProps(c, &p) {
			return
		}
		switch SectionForTitle(p.Title) {
		case SectionGoodToKnow:
			rec.GoodToKnow = p.Body
		case SectionLookingFor:
			rec.WhatTheyAreLookingFor = p.Body
		case SectionPresentation:
			rec.Presentation = p.Body
		}

	case KindUnknown:
		// blocks we do not map (videos, jobs, images...)
	}
}

func decodeProps(c content, v any) bool {
	if err := json.Unmarshal(c.Properties, v); err != nil {
		slog.Warn("skipping content block with unexpected properties", "kind", c.kindName(), "err", err)
		return false
	}
	return true
}
