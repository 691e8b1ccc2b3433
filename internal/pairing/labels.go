package pairing

import (
	"path/filepath"
	"strings"
)

// LabelCodec reads labels out of filenames. A stem such as
// "cat_dog__0001" with part delimiter "__" and between delimiter "_" carries
// the labels "cat" and "dog".
type LabelCodec struct {
	PartDelimiter    string
	BetweenDelimiter string
}

// PrimaryLabel returns the label segment of the image's filename stem, not
// split into tokens.
func (c LabelCodec) PrimaryLabel(image SpectralImage) string {
	return strings.SplitN(stem(image.Filepath()), c.PartDelimiter, 2)[0]
}

// ExtractLabels returns the label tokens of one image, exactly as they appear
// in the filename.
func (c LabelCodec) ExtractLabels(image SpectralImage) []string {
	return strings.Split(c.PrimaryLabel(image), c.BetweenDelimiter)
}

// ExtractLabelsFromImages returns one token list per image, index-aligned with
// the given sequences.
func (c LabelCodec) ExtractLabelsFromImages(cam1, cam2 []SpectralImage) ([][]string, [][]string) {
	return c.extractAll(cam1), c.extractAll(cam2)
}

func (c LabelCodec) extractAll(images []SpectralImage) [][]string {
	labels := make([][]string, 0, len(images))
	for _, image := range images {
		labels = append(labels, c.ExtractLabels(image))
	}
	return labels
}

// stem strips the final extension from the base name. A leading dot or a
// trailing dot does not start an extension.
func stem(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndex(name, ".")
	if i > 0 && i < len(name)-1 {
		return name[:i]
	}
	return name
}

// firstSuffix returns the first extension component of name ("a.b.hdr" gives
// ".b"), or "" when there is none.
func firstSuffix(name string) string {
	if strings.HasSuffix(name, ".") {
		return ""
	}
	name = strings.TrimLeft(name, ".")
	i := strings.Index(name, ".")
	if i < 0 {
		return ""
	}
	rest := name[i+1:]
	if j := strings.Index(rest, "."); j >= 0 {
		rest = rest[:j]
	}
	return "." + rest
}
