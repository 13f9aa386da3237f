package models

// CategoryRule is one user-defined categorization rule: a case-insensitive
// keyword matched against the raw description.
type CategoryRule struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// CategoryConfig is one category of the default categorizer together with
// the keywords that select it.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}
