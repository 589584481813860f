package website

import (
	"encoding/json"
	"strings"
)

// Fixed provider identity for every Service block.
const (
	ProviderName = "Northbeam Digital"
	ProviderURL  = "https://northbeam.digital"
	ProviderLogo = "https://northbeam.digital/assets/logo.png"
)

// ServiceSchema describes one service offering for structured data.
type ServiceSchema struct {
	Name         string
	Description  string
	ProviderName string // optional; overrides only the displayed provider name
	URL          string
}

// Field order here is the output order.
type serviceLD struct {
	Context     string         `json:"@context"`
	Type        string         `json:"@type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Provider    organizationLD `json:"provider"`
	URL         string         `json:"url"`
}

type organizationLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Logo string `json:"logo"`
}

// JSONLD returns the schema.org Service document. The output depends only
// on s: equal inputs give byte-identical output.
func (s ServiceSchema) JSONLD() string {
	provider := s.ProviderName
	if provider == "" {
		provider = ProviderName
	}

	doc := serviceLD{
		Context:     "https://schema.org",
		Type:        "Service",
		Name:        s.Name,
		Description: s.Description,
		Provider: organizationLD{
			Type: "Organization",
			Name: provider,
			URL:  ProviderURL,
			Logo: ProviderLogo,
		},
		URL: s.URL,
	}

	// Marshal escapes <, > and &, so the result is safe inside <script>.
	b, err := json.Marshal(doc)
	if err != nil {
		// Only strings are marshalled.
		return "{}"
	}
	return string(b)
}

// RenderServiceSchema wraps the JSON-LD in a script element.
func RenderServiceSchema(s ServiceSchema) string {
	return `<script type="application/ld+json">` + s.JSONLD() + "</script>\n"
}

// RenderServiceSchemas renders each schema in order.
func RenderServiceSchemas(schemas []ServiceSchema) string {
	var sb strings.Builder
	for _, s := range schemas {
		sb.WriteString(RenderServiceSchema(s))
	}
	return sb.String()
}
