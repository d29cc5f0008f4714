package config

// DefaultConfig returns a Config with sensible defaults. Content paths match
// the deployed layout under public/.
func DefaultConfig() *Config {
	return &Config{
		Port:             3000,
		ContentRoot:      ".",
		PDFRoot:          "public/pdf",
		MaxDocumentBytes: 20 << 20,
		MaxBodyBytes:     64 << 10,
		RequestTimeout:   60,
		AllowAllOrigins:  false,
		LogMode:          LogDev,
		Trees: TreesConfig{
			OLevelP1:     "public/OP1",
			OLevelP2:     "public/OP2",
			Intermediate: "public/intermediate",
		},
	}
}
