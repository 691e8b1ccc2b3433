package pairing

// ValidateOrder checks that the two sequences were captured as pairs: at
// every position present in both, the primary labels must be equal. Lengths
// are not compared. The first disagreement is returned as an
// *OrderMismatchError.
func (c LabelCodec) ValidateOrder(cam1, cam2 []SpectralImage) error {
	n := min(len(cam1), len(cam2))
	for i := 0; i < n; i++ {
		label1 := c.PrimaryLabel(cam1[i])
		label2 := c.PrimaryLabel(cam2[i])
		if label1 != label2 {
			return &OrderMismatchError{
				Index:        i,
				Camera1Label: label1,
				Camera2Label: label2,
				Camera1Path:  cam1[i].Filepath(),
				Camera2Path:  cam2[i].Filepath(),
			}
		}
	}
	return nil
}
