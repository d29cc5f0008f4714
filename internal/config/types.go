package config

// LogMode selects the logger encoder.
type LogMode string

const (
	LogDev  LogMode = "dev"
	LogProd LogMode = "prod"
)

// Config is the top-level tutorsite configuration, corresponding to .tutorsite.yml.
type Config struct {
	Port             int         `yaml:"port" koanf:"port"`
	ContentRoot      string      `yaml:"content_root" koanf:"content_root"`
	PDFRoot          string      `yaml:"pdf_root" koanf:"pdf_root"`
	MaxDocumentBytes int64       `yaml:"max_document_bytes" koanf:"max_document_bytes"`
	MaxBodyBytes     int64       `yaml:"max_body_bytes" koanf:"max_body_bytes"`
	RequestTimeout   int         `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`
	AllowAllOrigins  bool        `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogMode          LogMode     `yaml:"log_mode" koanf:"log_mode"`
	Trees            TreesConfig `yaml:"trees" koanf:"trees"`
}

// TreesConfig holds the base directory of each content tree, relative to
// ContentRoot.
type TreesConfig struct {
	OLevelP1     string `yaml:"olevel_p1" koanf:"olevel_p1"`
	OLevelP2     string `yaml:"olevel_p2" koanf:"olevel_p2"`
	Intermediate string `yaml:"intermediate" koanf:"intermediate"`
}
