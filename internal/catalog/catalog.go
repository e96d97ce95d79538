// Package catalog holds the closed set of AI providers and models the
// backend supports. Extending the set means editing this file, never
// accepting arbitrary strings from the user.
package catalog

// Provider is one AI vendor with its ordered model list. The first model is
// the default selected when the provider is chosen.
type Provider struct {
	ID     string
	Name   string
	Models []string
}

var providers = []Provider{
	{ID: "openai", Name: "OpenAI", Models: []string{"gpt-5.2", "gpt-5", "gpt-4.1"}},
	{ID: "anthropic", Name: "Claude", Models: []string{"claude-sonnet-4-5-20250929", "claude-opus-4-5-20251101"}},
	{ID: "gemini", Name: "Gemini", Models: []string{"gemini-3-flash-preview", "gemini-3-pro-preview"}},
}

// Providers returns the catalog in its fixed display order.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	for i, p := range providers {
		out[i] = Provider{ID: p.ID, Name: p.Name, Models: append([]string(nil), p.Models...)}
	}
	return out
}

// Lookup returns the provider with the given ID.
func Lookup(id string) (Provider, bool) {
	for _, p := range providers {
		if p.ID == id {
			return Provider{ID: p.ID, Name: p.Name, Models: append([]string(nil), p.Models...)}, true
		}
	}
	return Provider{}, false
}

// DefaultModel returns the first catalog entry for the provider.
func DefaultModel(providerID string) (string, bool) {
	p, ok := Lookup(providerID)
	if !ok || len(p.Models) == 0 {
		return "", false
	}
	return p.Models[0], true
}

// ValidModel reports whether the model belongs to the provider's catalog.
func ValidModel(providerID, model string) bool {
	p, ok := Lookup(providerID)
	if !ok {
		return false
	}
	for _, m := range p.Models {
		if m == model {
			return true
		}
	}
	return false
}

// Default returns the catalog's first provider and its first model.
func Default() (string, string) {
	return providers[0].ID, providers[0].Models[0]
}
