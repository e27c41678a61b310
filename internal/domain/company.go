package domain

// Company is one row of the companies directory. Scalars are nil until the
// matching content block is found, so they serialize as null.
type Company struct {
	Slug string `json:"-"` // join key, not part of the exported record

	Name                  *string            `json:"name"`
	Location              *string            `json:"location"`
	URL                   *string            `json:"url"`
	Website               *string            `json:"website"`
	Sectors               []string           `json:"sectors"`
	SocialNetworks        map[string]*string `json:"social_networks"`
	Description           *string            `json:"description"`
	Presentation          *string            `json:"presentation"`
	WhatTheyAreLookingFor *string            `json:"what_they_are_looking_for"`
	GoodToKnow            *string            `json:"good_to_know"`

	// CompanyStats is the company-stats block as the API returned it.
	CompanyStats map[string]any `json:"company_stats,omitempty"`
}

// Network returns the profile URL for a social network. It is nil when
// the network is absent or was listed as null.
func (c Company) Network(name string) *string {
	return c.SocialNetworks[name]
}

// SlugSectorMap maps a company slug to the sectors declared on its search hit.
type SlugSectorMap map[string][]string

// Lookup returns the sectors for slug, or an empty (non-nil) slice.
func (m SlugSectorMap) Lookup(slug string) []string {
	if s, ok := m[slug]; ok && s != nil {
		return s
	}
	return []string{}
}

func StrPtr(s string) *string { return &s }

// Deref returns "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
