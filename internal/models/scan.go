package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kdimtricp/specpair/internal/pairing"
)

// Scan is a validated scan of one capture directory as stored in the catalog.
type Scan struct {
	ID         string        `json:"id"`
	Directory  string        `json:"directory"`
	Camera1ID  string        `json:"camera1_id"`
	Camera2ID  string        `json:"camera2_id"`
	CreatedAt  time.Time     `json:"created_at"`
	ImageCount int           `json:"image_count"`
	Camera1    []ImageRecord `json:"camera1,omitempty"`
	Camera2    []ImageRecord `json:"camera2,omitempty"`
}

// ImageRecord is one image of a scan. It satisfies pairing.SpectralImage so
// stored scans can be searched without rescanning.
type ImageRecord struct {
	Position   int      `json:"position"`
	Path       string   `json:"filepath"`
	HeaderPath string   `json:"header_path,omitempty"`
	Camera     string   `json:"camera_id"`
	Labels     []string `json:"labels"`
}

// headerFile is implemented by images that know their header file.
type headerFile interface {
	HeaderPath() string
}

func (r ImageRecord) Filepath() string { return r.Path }
func (r ImageRecord) CameraID() string { return r.Camera }

func NewScan(directory, camera1ID, camera2ID string) *Scan {
	return &Scan{
		ID:        uuid.New().String(),
		Directory: directory,
		Camera1ID: camera1ID,
		Camera2ID: camera2ID,
		CreatedAt: time.Now().UTC(),
	}
}

// ScanFromResult copies a scan result into a new catalog entry.
func ScanFromResult(res *pairing.ScanResult, camera1ID, camera2ID string) *Scan {
	scan := NewScan(res.Directory, camera1ID, camera2ID)
	scan.Camera1 = records(res.Camera1, res.Labels1)
	scan.Camera2 = records(res.Camera2, res.Labels2)
	scan.ImageCount = len(scan.Camera1) + len(scan.Camera2)
	return scan
}

func records(images []pairing.SpectralImage, labels [][]string) []ImageRecord {
	out := make([]ImageRecord, 0, len(images))
	for i, img := range images {
		var tokens []string
		if i < len(labels) {
			tokens = labels[i]
		}
		rec := ImageRecord{
			Position: i,
			Path:     img.Filepath(),
			Camera:   img.CameraID(),
			Labels:   tokens,
		}
		if h, ok := img.(headerFile); ok {
			rec.HeaderPath = h.HeaderPath()
		}
		out = append(out, rec)
	}
	return out
}

// Images returns the stored sequence of camera 1 or 2 in scan order.
func (s *Scan) Images(camera int) []pairing.SpectralImage {
	recs := s.records(camera)
	out := make([]pairing.SpectralImage, 0, len(recs))
	for _, r := range recs {
		out = append(out, r)
	}
	return out
}

// Labels returns the stored label lists of camera 1 or 2, aligned with Images.
func (s *Scan) Labels(camera int) [][]string {
	recs := s.records(camera)
	out := make([][]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Labels)
	}
	return out
}

// Record returns the image at index of camera 1 or 2.
func (s *Scan) Record(camera, index int) (ImageRecord, bool) {
	recs := s.records(camera)
	if index < 0 || index >= len(recs) {
		return ImageRecord{}, false
	}
	return recs[index], true
}

func (s *Scan) records(camera int) []ImageRecord {
	switch camera {
	case 1:
		return s.Camera1
	case 2:
		return s.Camera2
	}
	return nil
}
