package config

// DDoSGuardConfig holds the three fixed cookies used by older configurations
type DDoSGuardConfig struct {
	DDG1  string `json:"ddg1,omitempty" yaml:"ddg1,omitempty" toml:"ddg1,omitempty" env:"DBREEWATCH_DDG1"`
	DDG2  string `json:"ddg2,omitempty" yaml:"ddg2,omitempty" toml:"ddg2,omitempty" env:"DBREEWATCH_DDG2"`
	DDGID string `json:"ddgid,omitempty" yaml:"ddgid,omitempty" toml:"ddgid,omitempty" env:"DBREEWATCH_DDGID"`
}

// Cookies maps the legacy fields onto their cookie names, skipping empty values
func (d DDoSGuardConfig) Cookies() map[string]string {
	cookies := make(map[string]string, 3)
	for name, value := range map[string]string{
		CookieDDG1:  d.DDG1,
		CookieDDG2:  d.DDG2,
		CookieDDGID: d.DDGID,
	} {
		if value != "" {
			cookies[name] = value
		}
	}
	return cookies
}
