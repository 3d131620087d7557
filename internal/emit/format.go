package emit

import "mvdan.cc/gofumpt/format"

// Format runs gofumpt over an emitted Go buffer. Emitted source that fails
// to format is an emitter bug, surfaced as an EmissionError rather than
// written out raw.
func Format(src []byte, path string) ([]byte, error) {
	formatted, err := format.Source(src, format.Options{})
	if err != nil {
		return nil, &EmissionError{Path: path, Err: err}
	}
	return formatted, nil
}
