package wtj

import "encoding/json"

// ContentKind is the discriminator of a content block on a company page.
type ContentKind int

const (
	KindUnknown ContentKind = iota
	KindMap
	KindCompanyStats
	KindSocialNetworks
	KindText
)

var kindNames = map[string]ContentKind{
	"map":             KindMap,
	"company-stats":   KindCompanyStats,
	"social-networks": KindSocialNetworks,
	"text":            KindText,
}

func ParseContentKind(s string) ContentKind {
	return kindNames[s] // unknown strings map to KindUnknown
}

func (k ContentKind) String() string {
	for name, v := range kindNames {
		if v == k {
			return name
		}
	}
	return "unknown"
}

// content is one block of a company page. Kind stays raw so that a
// non-string tag degrades to KindUnknown instead of failing the page.
type content struct {
	Kind       json.RawMessage `json:"kind"`
	Properties json.RawMessage `json:"properties"`
}

// kindName returns the string tag of c, or "" when it is not a string.
func (c content) kindName() string {
	var s string
	if json.Unmarshal(c.Kind, &s) != nil {
		return ""
	}
	return s
}

// organizationProps is read from every block regardless of its kind.
type organizationProps struct {
	Organization map[string]json.RawMessage `json:"organization"`
}

type mapProps struct {
	Headquarter struct {
		City *string `json:"city"`
	} `json:"headquarter"`
}

type socialNetworksProps struct {
	Networks map[string]json.RawMessage `json:"networks"`
}

type textProps struct {
	Title string  `json:"title"`
	Body  *string `json:"body"`
}

// TextSection is the flat field a titled text block fills in.
type TextSection int

const (
	SectionNone TextSection = iota
	SectionGoodToKnow
	SectionLookingFor
	SectionPresentation
)

// Titles are matched exactly, in English and French.
var textTitles = map[string]TextSection{
	"Good to know":              SectionGoodToKnow,
	"Bon à savoir":              SectionGoodToKnow,
	"What they are looking for": SectionLookingFor,
	"Ce qu'ils recherchent":     SectionLookingFor,
	"Presentation":              SectionPresentation,
	"Présentation":              SectionPresentation,
}

func SectionForTitle(title string) TextSection {
	return textTitles[title]
}
