// Package pairing discovers header/image captures of two cameras, derives the
// labels encoded in their filenames and resolves a label to one image per
// camera.
package pairing

// SpectralImage is a captured image as far as pairing is concerned: the path
// labels are derived from and the camera that produced it.
type SpectralImage interface {
	Filepath() string
	CameraID() string
}

// ImageSet is the result of pairing headers with image files.
type ImageSet interface {
	// ImagesByCameraID returns the images of one camera in construction order.
	ImagesByCameraID(id string) []SpectralImage
}

// ImageSetBuilder pairs header files with image files. How headers and images
// are matched is up to the implementation.
type ImageSetBuilder interface {
	FromPaths(headerPaths, imagePaths []string) (ImageSet, error)
}
