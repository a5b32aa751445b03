package content

import (
	"cmp"
	"slices"
	"strings"

	"github.com/meur/harborline/internal/models"
)

// SortGameModes orders modes by name, byte-wise ascending. Unnamed modes sort first.
func SortGameModes(modes []models.GameMode) []models.GameMode {
	out := slices.Clone(modes)
	slices.SortStableFunc(out, func(a, b models.GameMode) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// ActiveRules keeps rules flagged active and orders them by rule number.
func ActiveRules(rules []models.ServerRule) []models.ServerRule {
	out := make([]models.ServerRule, 0, len(rules))
	for _, rule := range rules {
		if rule.IsActive {
			out = append(out, rule)
		}
	}
	slices.SortStableFunc(out, func(a, b models.ServerRule) int {
		return cmp.Compare(a.RuleNumber, b.RuleNumber)
	})
	return out
}

// SortSocialLinks orders links by display order.
func SortSocialLinks(links []models.SocialLink) []models.SocialLink {
	out := slices.Clone(links)
	slices.SortStableFunc(out, func(a, b models.SocialLink) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
	return out
}
