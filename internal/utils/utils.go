package utils

import "strings"

// NormalizeIdentifier converts a name to a valid StableHLO identifier (function or input name): characters
// other than ASCII letters, digits and underscores become underscores, and a leading digit gets an
// underscore prefix.
func NormalizeIdentifier(name string) string {
	normalized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, name)
	if normalized != "" && normalized[0] >= '0' && normalized[0] <= '9' {
		normalized = "_" + normalized
	}
	return normalized
}
