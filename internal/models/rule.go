package models

// ServerRule is a numbered server rule, optionally scoped to one game mode
type ServerRule struct {
	ID          string    `json:"_id" yaml:"_id"`
	RuleNumber  int       `json:"ruleNumber,omitempty" yaml:"ruleNumber,omitempty"`
	IsActive    bool      `json:"isActive,omitempty" yaml:"isActive,omitempty"`
	RuleTitle   string    `json:"ruleTitle,omitempty" yaml:"ruleTitle,omitempty"`
	RuleContent string    `json:"ruleContent,omitempty" yaml:"ruleContent,omitempty"`
	Consequence string    `json:"consequence,omitempty" yaml:"consequence,omitempty"`
	GameMode    string    `json:"gameMode,omitempty" yaml:"gameMode,omitempty"` // GameMode.ID, not enforced
	LastUpdated Timestamp `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

// RecordID implements Record.
func (r ServerRule) RecordID() string { return r.ID }
