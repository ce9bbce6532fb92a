package padding

import "io"

// SetRandReaderForTesting sets the source of ISO 10126 filler bytes.
// Returns a function to restore the original reader.
func SetRandReaderForTesting(r io.Reader) func() {
	original := randReader
	randReader = r
	return func() { randReader = original }
}
