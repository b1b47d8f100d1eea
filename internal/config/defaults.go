package config

// Default returns the default configuration
func Default() *Config {
	enabled := true
	return &Config{
		Version: 1,
		Paths: &PathsConfig{
			Include: []string{"**/*.txt", "**/*.md"},
			Exclude: []string{".git/**", "node_modules/**", "vendor/**"},
		},
		Output: &OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Policy: &PolicyConfig{
			FailOn: "ERROR",
		},
		Annotations: &AnnotationsConfig{
			Enabled:         &enabled,
			RequireReason:   false,
			AllowValidators: []string{},
			DenyValidators:  []string{},
		},
		Server: &ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
		Validators: []*ValidatorConfig{},
	}
}

// DefaultConfigHCL returns the configuration written by "banlist init"
func DefaultConfigHCL() string {
	return `# banlist configuration
version = 1

paths {
  include = ["**/*.txt", "**/*.md"]
  exclude = [".git/**", "node_modules/**", "vendor/**"]
}

output {
  format = "text"  # text, json, compact, checkstyle, sarif, junit
  color  = "auto"  # auto, always, never
}

policy {
  fail_on = "ERROR"  # ERROR, WARNING, NOTICE
}

annotations {
  enabled        = true
  require_reason = false
}

server {
  addr = ":8080"
}

validator "ban_list" {
  enabled  = true
  severity = "ERROR"
  on_fail  = "noop"  # noop, fix, filter, refrain, exception

  banned_words = ["banana", "athena", "coconut trees"]
  max_l_dist   = 1

  # Words can also be read from a .txt, .json, .yaml or .toml file,
  # relative to this file:
  # banned_words_file = "banned-words.txt"
}
`
}
