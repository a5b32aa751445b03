package content

import "github.com/meur/harborline/internal/models"

// Selector tracks the selected game mode and the rules that apply to it.
// It is not safe for concurrent use; Loader guards its own instance.
type Selector struct {
	selected string
	rules    []models.ServerRule
	filtered []models.ServerRule
}

// NewSelector creates a selector over an active, sorted rule list.
func NewSelector(rules []models.ServerRule, selected string) *Selector {
	s := &Selector{}
	s.rules = rules
	s.selected = selected
	s.recompute()
	return s
}

// Select changes the selected game mode. Selecting the current mode again
// yields the same filtered rules.
func (s *Selector) Select(gameModeID string) {
	s.selected = gameModeID
	s.recompute()
}

// SetRules replaces the rule list and recomputes the filtered subset.
func (s *Selector) SetRules(rules []models.ServerRule) {
	s.rules = rules
	s.recompute()
}

// Selected returns the selected game mode id, possibly empty.
func (s *Selector) Selected() string { return s.selected }

// Rules returns a copy of the full rule list.
func (s *Selector) Rules() []models.ServerRule { return cloneRules(s.rules) }

// FilteredRules returns a copy of the rules applying to the selected mode.
func (s *Selector) FilteredRules() []models.ServerRule { return cloneRules(s.filtered) }

func (s *Selector) recompute() {
	s.filtered = FilterRules(s.rules, s.selected)
}

// FilterRules returns the rules referencing gameModeID. When none do, or no
// mode is selected, the whole list is returned so modes without their own
// rules still show the general ruleset.
func FilterRules(rules []models.ServerRule, gameModeID string) []models.ServerRule {
	if gameModeID == "" {
		return cloneRules(rules)
	}
	var matched []models.ServerRule
	for _, rule := range rules {
		if rule.GameMode == gameModeID {
			matched = append(matched, rule)
		}
	}
	if len(matched) == 0 {
		return cloneRules(rules)
	}
	return matched
}

func cloneRules(rules []models.ServerRule) []models.ServerRule {
	if rules == nil {
		return []models.ServerRule{}
	}
	out := make([]models.ServerRule, len(rules))
	copy(out, rules)
	return out
}
