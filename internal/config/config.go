// Package config holds the naming conventions used to discover and label
// paired captures: where the images live, how header and raw files are told
// apart, which camera ids to partition on and how labels are delimited.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment keys read by FromEnv.
const (
	EnvImagesDir              = "SPECPAIR_IMAGES_DIR"
	EnvHeaderFileSuffix       = "SPECPAIR_HEADER_SUFFIX"
	EnvImageFileSuffix        = "SPECPAIR_IMAGE_SUFFIX"
	EnvCamera1ID              = "SPECPAIR_CAMERA1_ID"
	EnvCamera2ID              = "SPECPAIR_CAMERA2_ID"
	EnvLabelsPartDelimiter    = "SPECPAIR_LABELS_PART_DELIMITER"
	EnvLabelsBetweenDelimiter = "SPECPAIR_LABELS_BETWEEN_DELIMITER"
)

// Config is passed explicitly to every component that needs it. It is a
// value type; components keep their own copy.
type Config struct {
	// ImagesDir is scanned when no directory is given.
	ImagesDir string

	// First suffix component of header and raw image files, dot included.
	HeaderFileSuffix string
	ImageFileSuffix  string

	Camera1ID string
	Camera2ID string

	// LabelsPartDelimiter separates the label segment of a filename stem
	// from the rest; LabelsBetweenDelimiter separates tokens inside it.
	LabelsPartDelimiter    string
	LabelsBetweenDelimiter string
}

// Default returns the conventions used by the capture rig.
func Default() Config {
	return Config{
		ImagesDir:              "./data/images",
		HeaderFileSuffix:       ".hdr",
		ImageFileSuffix:        ".img",
		Camera1ID:              "vnir",
		Camera2ID:              "swir",
		LabelsPartDelimiter:    "__",
		LabelsBetweenDelimiter: "_",
	}
}

// FromEnv starts from Default and overrides every field whose environment
// variable is set and non-empty.
func FromEnv() Config {
	cfg := Default()
	cfg.ImagesDir = getEnv(EnvImagesDir, cfg.ImagesDir)
	cfg.HeaderFileSuffix = getEnv(EnvHeaderFileSuffix, cfg.HeaderFileSuffix)
	cfg.ImageFileSuffix = getEnv(EnvImageFileSuffix, cfg.ImageFileSuffix)
	cfg.Camera1ID = getEnv(EnvCamera1ID, cfg.Camera1ID)
	cfg.Camera2ID = getEnv(EnvCamera2ID, cfg.Camera2ID)
	cfg.LabelsPartDelimiter = getEnv(EnvLabelsPartDelimiter, cfg.LabelsPartDelimiter)
	cfg.LabelsBetweenDelimiter = getEnv(EnvLabelsBetweenDelimiter, cfg.LabelsBetweenDelimiter)
	return cfg
}

// Validate rejects configurations under which classification or labelling
// would be ambiguous.
func (c Config) Validate() error {
	if c.ImagesDir == "" {
		return errors.New("config: images directory not set")
	}
	if err := validateSuffix("header", c.HeaderFileSuffix); err != nil {
		return err
	}
	if err := validateSuffix("image", c.ImageFileSuffix); err != nil {
		return err
	}
	if c.HeaderFileSuffix == c.ImageFileSuffix {
		return fmt.Errorf("config: header and image suffix are both %q", c.HeaderFileSuffix)
	}
	if c.Camera1ID == "" || c.Camera2ID == "" {
		return errors.New("config: both camera ids must be set")
	}
	if c.Camera1ID == c.Camera2ID {
		return fmt.Errorf("config: camera ids must differ (both %q)", c.Camera1ID)
	}
	if c.LabelsPartDelimiter == "" || c.LabelsBetweenDelimiter == "" {
		return errors.New("config: label delimiters must not be empty")
	}
	if c.LabelsPartDelimiter == c.LabelsBetweenDelimiter {
		return fmt.Errorf("config: label delimiters must differ (both %q)", c.LabelsPartDelimiter)
	}
	return nil
}

func validateSuffix(kind, suffix string) error {
	if !strings.HasPrefix(suffix, ".") || len(suffix) < 2 {
		return fmt.Errorf("config: %s suffix %q must start with a dot", kind, suffix)
	}
	if strings.Contains(suffix[1:], ".") {
		return fmt.Errorf("config: %s suffix %q must be a single component", kind, suffix)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
