package config

// RedactConfig toggles the sensitive-attribute redaction patterns
// applied to extracted text before it is sent to any LLM. Disabling a
// category is a deliberate operator choice, not a default.
type RedactConfig struct {
	Age              bool `yaml:"age"`
	MaritalStatus    bool `yaml:"marital_status"`
	Disability       bool `yaml:"disability"`
	ProtectedCategory bool `yaml:"protected_category"`
}

// DefaultRedactConfig enables every known redaction category.
func DefaultRedactConfig() RedactConfig {
	return RedactConfig{
		Age:               true,
		MaritalStatus:     true,
		Disability:        true,
		ProtectedCategory: true,
	}
}
