package config

import "testing"

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvImagesDir, "/captures")
	t.Setenv(EnvCamera1ID, "left")
	t.Setenv(EnvCamera2ID, "right")
	t.Setenv(EnvLabelsPartDelimiter, "")

	cfg := FromEnv()
	if cfg.ImagesDir != "/captures" {
		t.Errorf("Expected images dir /captures, got %s", cfg.ImagesDir)
	}
	if cfg.Camera1ID != "left" || cfg.Camera2ID != "right" {
		t.Errorf("Expected cameras left/right, got %s/%s", cfg.Camera1ID, cfg.Camera2ID)
	}
	if cfg.LabelsPartDelimiter != Default().LabelsPartDelimiter {
		t.Errorf("Empty env value should keep default, got %q", cfg.LabelsPartDelimiter)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty images dir", func(c *Config) { c.ImagesDir = "" }},
		{"header suffix without dot", func(c *Config) { c.HeaderFileSuffix = "hdr" }},
		{"image suffix with two parts", func(c *Config) { c.ImageFileSuffix = ".raw.img" }},
		{"same suffixes", func(c *Config) { c.ImageFileSuffix = c.HeaderFileSuffix }},
		{"missing camera", func(c *Config) { c.Camera2ID = "" }},
		{"same cameras", func(c *Config) { c.Camera2ID = c.Camera1ID }},
		{"empty delimiter", func(c *Config) { c.LabelsBetweenDelimiter = "" }},
		{"same delimiters", func(c *Config) { c.LabelsBetweenDelimiter = c.LabelsPartDelimiter }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}
