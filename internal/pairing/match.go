package pairing

import (
	"fmt"
	"slices"
)

// Match is one image per camera resolved for a label, with the positions
// they hold in their sequences.
type Match struct {
	Label   string
	Camera1 SpectralImage
	Camera2 SpectralImage
	Index1  int
	Index2  int
}

// FindByLabel returns the first image of each camera whose token list
// contains label. labels1 and labels2 are index-aligned with cam1 and cam2,
// as produced by LabelCodec.ExtractLabelsFromImages.
//
// Both cameras are searched before anything is reported; when both miss the
// camera 1 failure is the one returned.
func (p *Pairer) FindByLabel(label string, cam1, cam2 []SpectralImage, labels1, labels2 [][]string) (*Match, error) {
	index1 := indexOfLabel(label, labels1)
	index2 := indexOfLabel(label, labels2)

	if index1 == -1 {
		return nil, &LabelNotFoundError{Label: label, Camera: 1}
	}
	if index2 == -1 {
		return nil, &LabelNotFoundError{Label: label, Camera: 2}
	}
	if index1 >= len(cam1) {
		return nil, fmt.Errorf("label lists for camera 1 do not match its %d images", len(cam1))
	}
	if index2 >= len(cam2) {
		return nil, fmt.Errorf("label lists for camera 2 do not match its %d images", len(cam2))
	}

	match := &Match{
		Label:   label,
		Camera1: cam1[index1],
		Camera2: cam2[index2],
		Index1:  index1,
		Index2:  index2,
	}

	p.logger.Info("extracted images for label", "label", label)
	p.logger.Info("camera1 image", "path", match.Camera1.Filepath(), "index", index1)
	p.logger.Info("camera2 image", "path", match.Camera2.Filepath(), "index", index2)
	return match, nil
}

// Find resolves label against a completed scan.
func (p *Pairer) Find(result *ScanResult, label string) (*Match, error) {
	return p.FindByLabel(label, result.Camera1, result.Camera2, result.Labels1, result.Labels2)
}

// first entry wins; uniqueness is not checked
func indexOfLabel(label string, labels [][]string) int {
	for i, tokens := range labels {
		if slices.Contains(tokens, label) {
			return i
		}
	}
	return -1
}
