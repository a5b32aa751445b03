package models

// SocialLink points at one of the community's social profiles
type SocialLink struct {
	ID           string `json:"_id" yaml:"_id"`
	DisplayOrder int    `json:"displayOrder,omitempty" yaml:"displayOrder,omitempty"`
	PlatformName string `json:"platformName,omitempty" yaml:"platformName,omitempty"`
	ProfileURL   string `json:"profileUrl,omitempty" yaml:"profileUrl,omitempty"`
	PlatformIcon string `json:"platformIcon,omitempty" yaml:"platformIcon,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
}

// RecordID implements Record.
func (l SocialLink) RecordID() string { return l.ID }
