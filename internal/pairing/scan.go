package pairing

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/specpair/internal/config"
)

// Pairer runs the scan, validation and lookup steps under one Config.
type Pairer struct {
	cfg     config.Config
	builder ImageSetBuilder
	codec   LabelCodec
	logger  hclog.Logger
}

func NewPairer(cfg config.Config, builder ImageSetBuilder, logger hclog.Logger) *Pairer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Pairer{
		cfg:     cfg,
		builder: builder,
		codec: LabelCodec{
			PartDelimiter:    cfg.LabelsPartDelimiter,
			BetweenDelimiter: cfg.LabelsBetweenDelimiter,
		},
		logger: logger,
	}
}

func (p *Pairer) Config() config.Config {
	return p.cfg
}

// ReadSpectralImages lists the regular files directly under dir (the
// configured images directory when dir is empty), hands header and image
// files to the builder and splits its images by camera. Files are taken in
// lexicographic path order and the builder's order is kept within each
// camera. Filesystem and builder errors are returned as they are.
func (p *Pairer) ReadSpectralImages(dir string) ([]SpectralImage, []SpectralImage, error) {
	if dir == "" {
		dir = p.cfg.ImagesDir
	}

	paths, err := listFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	var headerPaths, imagePaths []string
	for _, path := range paths {
		switch firstSuffix(filepath.Base(path)) {
		case p.cfg.HeaderFileSuffix:
			headerPaths = append(headerPaths, path)
		case p.cfg.ImageFileSuffix:
			imagePaths = append(imagePaths, path)
		}
	}

	set, err := p.builder.FromPaths(headerPaths, imagePaths)
	if err != nil {
		return nil, nil, err
	}

	cam1 := set.ImagesByCameraID(p.cfg.Camera1ID)
	cam2 := set.ImagesByCameraID(p.cfg.Camera2ID)

	p.logger.Debug("scanned directory", "dir", dir,
		"headers", len(headerPaths), "images", len(imagePaths),
		"camera1", len(cam1), "camera2", len(cam2))
	return cam1, cam2, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		// Stat follows symlinks; dangling ones are skipped.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}

	sort.Strings(paths)
	return paths, nil
}
