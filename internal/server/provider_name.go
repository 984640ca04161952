package server

import (
	"strings"

	"github.com/preston-bernstein/ipl-stats-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from the instance when not explicitly configured.
func normalizeProviderName(raw string, provider providers.DatasetProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(providers.NameOf(provider, "provider"))
	}
	return "provider"
}
