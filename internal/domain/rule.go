package domain

// StatusVariant is a pair of status and emoji templates.
type StatusVariant struct {
	Status string `yaml:"status"`
	Emoji  string `yaml:"emoji"`
}

// StatusTemplateRule maps trip names matching MatchPattern to a status.
// MatchPattern is a regular expression that may reference {{employer}}.
type StatusTemplateRule struct {
	MatchPattern string        `yaml:"status_regexp"`
	Flying       StatusVariant `yaml:"flying"`
	NotFlying    StatusVariant `yaml:"not_flying"`
}
