package envi

import (
	"errors"
	"fmt"

	"github.com/kdimtricp/specpair/internal/pairing"
)

var (
	ErrPathCountMismatch = errors.New("number of header and image paths differs")
	ErrNoCameraID        = errors.New("header has no camera id")
)

// cameraIDKeys are tried in order.
var cameraIDKeys = []string{"id", "camera id", "camera_id"}

// Image is one capture: its header, its raw data file and the camera id read
// from the header.
type Image struct {
	headerPath string
	imagePath  string
	cameraID   string
}

// Open reads the header of a capture.
func Open(headerPath, imagePath string) (*Image, error) {
	header, err := ReadHeader(headerPath)
	if err != nil {
		return nil, err
	}
	cameraID, ok := header.Get(cameraIDKeys...)
	if !ok || cameraID == "" {
		return nil, fmt.Errorf("%s: %w", headerPath, ErrNoCameraID)
	}
	return &Image{
		headerPath: headerPath,
		imagePath:  imagePath,
		cameraID:   cameraID,
	}, nil
}

// Filepath is the raw image file.
func (i *Image) Filepath() string   { return i.imagePath }
func (i *Image) HeaderPath() string { return i.headerPath }
func (i *Image) CameraID() string   { return i.cameraID }

func (i *Image) String() string {
	return fmt.Sprintf("%s [%s]", i.imagePath, i.cameraID)
}

// ImageSet is an ordered collection of captures.
type ImageSet struct {
	images []*Image
}

func (s *ImageSet) Images() []*Image {
	return s.images
}

// CameraIDs lists the distinct camera ids in order of first appearance.
func (s *ImageSet) CameraIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, img := range s.images {
		if !seen[img.cameraID] {
			seen[img.cameraID] = true
			ids = append(ids, img.cameraID)
		}
	}
	return ids
}

func (s *ImageSet) ImagesByCameraID(id string) []pairing.SpectralImage {
	var out []pairing.SpectralImage
	for _, img := range s.images {
		if img.cameraID == id {
			out = append(out, img)
		}
	}
	return out
}

// Builder pairs the i-th header with the i-th image file. Both lists come
// sorted from the scanner, so a header and its image share a position.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) FromPaths(headerPaths, imagePaths []string) (pairing.ImageSet, error) {
	if len(headerPaths) != len(imagePaths) {
		return nil, fmt.Errorf("%w: %d headers, %d images", ErrPathCountMismatch, len(headerPaths), len(imagePaths))
	}

	images := make([]*Image, 0, len(headerPaths))
	for i := range headerPaths {
		img, err := Open(headerPaths[i], imagePaths[i])
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return &ImageSet{images: images}, nil
}
