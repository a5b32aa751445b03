package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meur/harborline/internal/models"
)

func TestSortGameModes(t *testing.T) {
	modes := []models.GameMode{
		{ID: "z", Name: "Zulu"},
		{ID: "lower", Name: "alpha"},
		{ID: "none"},
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
	}

	sorted := SortGameModes(modes)

	ids := make([]string, 0, len(sorted))
	for i, m := range sorted {
		ids = append(ids, m.ID)
		if i > 0 {
			assert.LessOrEqual(t, sorted[i-1].Name, m.Name)
		}
	}
	// Byte order puts upper case before lower case
	assert.Equal(t, []string{"none", "a", "b", "z", "lower"}, ids)
	assert.Equal(t, "z", modes[0].ID, "input is not modified")
}

func TestActiveRules(t *testing.T) {
	rules := []models.ServerRule{
		{ID: "r5", RuleNumber: 5, IsActive: true},
		{ID: "off", RuleNumber: 1, IsActive: false},
		{ID: "r0", IsActive: true},
		{ID: "r2a", RuleNumber: 2, IsActive: true},
		{ID: "r2b", RuleNumber: 2, IsActive: true},
	}

	active := ActiveRules(rules)

	assert.Equal(t, []string{"r0", "r2a", "r2b", "r5"}, ruleIDs(active))
	for i := 1; i < len(active); i++ {
		assert.LessOrEqual(t, active[i-1].RuleNumber, active[i].RuleNumber)
	}
}

func TestSortSocialLinks(t *testing.T) {
	links := []models.SocialLink{
		{ID: "yt", DisplayOrder: 3},
		{ID: "discord", DisplayOrder: 1},
		{ID: "unordered"},
	}

	sorted := SortSocialLinks(links)

	got := make([]string, 0, len(sorted))
	for _, l := range sorted {
		got = append(got, l.ID)
	}
	assert.Equal(t, []string{"unordered", "discord", "yt"}, got)
}
