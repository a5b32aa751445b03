package models

// Game mode statuses with dedicated styling. Any other string is allowed.
const (
	StatusActive = "active"
	StatusBeta   = "beta"
)

// GameMode represents a playable mode advertised on the home page
type GameMode struct {
	ID                  string `json:"_id" yaml:"_id"`
	Name                string `json:"name,omitempty" yaml:"name,omitempty"`
	ShortDescription    string `json:"shortDescription,omitempty" yaml:"shortDescription,omitempty"`
	DetailedDescription string `json:"detailedDescription,omitempty" yaml:"detailedDescription,omitempty"`
	Status              string `json:"status,omitempty" yaml:"status,omitempty"`
	MaxPlayers          int    `json:"maxPlayers,omitempty" yaml:"maxPlayers,omitempty"`
	BannerImage         string `json:"bannerImage,omitempty" yaml:"bannerImage,omitempty"` // Opaque image URL
	Icon                string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// RecordID implements Record.
func (m GameMode) RecordID() string { return m.ID }
