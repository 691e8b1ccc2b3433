package pairing

import (
	"path/filepath"
)

// ScanResult holds both camera sequences of one scan together with their
// label lists. The sequences are validated and must not be reordered.
type ScanResult struct {
	Directory string
	Camera1   []SpectralImage
	Camera2   []SpectralImage
	Labels1   [][]string
	Labels2   [][]string
}

// Scan reads dir, validates the pairing order and extracts labels. The
// directory is made absolute first so stored paths stay meaningful.
func (p *Pairer) Scan(dir string) (*ScanResult, error) {
	if dir == "" {
		dir = p.cfg.ImagesDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	cam1, cam2, err := p.ReadSpectralImages(abs)
	if err != nil {
		return nil, err
	}

	if err := p.codec.ValidateOrder(cam1, cam2); err != nil {
		p.logger.Error("capture order check failed", "dir", abs, "error", err)
		return nil, err
	}

	labels1, labels2 := p.codec.ExtractLabelsFromImages(cam1, cam2)

	p.logger.Info("scan complete", "dir", abs, "camera1", len(cam1), "camera2", len(cam2))
	return &ScanResult{
		Directory: abs,
		Camera1:   cam1,
		Camera2:   cam2,
		Labels1:   labels1,
		Labels2:   labels2,
	}, nil
}
