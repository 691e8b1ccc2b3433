package pairing

import (
	"errors"
	"fmt"
)

var (
	ErrOrderMismatch = errors.New("labels are not ordered correctly")
	ErrLabelNotFound = errors.New("label not found")
)

// OrderMismatchError reports the first position at which the two camera
// sequences carry different primary labels. It is fixed by renaming or
// reorganizing the capture files, never by retrying.
type OrderMismatchError struct {
	Index        int
	Camera1Label string
	Camera2Label string
	Camera1Path  string
	Camera2Path  string
}

func (e *OrderMismatchError) Error() string {
	return fmt.Sprintf("check images, labels are not ordered correctly: position %d has %q (%s) for camera 1 and %q (%s) for camera 2",
		e.Index, e.Camera1Label, e.Camera1Path, e.Camera2Label, e.Camera2Path)
}

func (e *OrderMismatchError) Is(target error) bool {
	return target == ErrOrderMismatch
}

// LabelNotFoundError reports a label that no image of Camera (1 or 2) carries.
type LabelNotFoundError struct {
	Label  string
	Camera int
}

func (e *LabelNotFoundError) Error() string {
	return fmt.Sprintf("label %q was not found for camera %d", e.Label, e.Camera)
}

func (e *LabelNotFoundError) Is(target error) bool {
	return target == ErrLabelNotFound
}
