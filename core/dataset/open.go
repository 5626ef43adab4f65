package dataset

import (
	"fmt"
	"io"
	"os"
)

// Options controls how file-backed sources are read.
type Options struct {
	// Sheet selects the worksheet of spreadsheet sources; empty means the first sheet.
	Sheet string
}

// Read loads a source of the given kind from r, labelled with name.
func Read(r io.Reader, kind Kind, name, key string, opts Options) (*Dataset, error) {
	switch kind {
	case KindCSV:
		return ReadCSV(r, name, key)
	case KindXLSX:
		return ReadXLSX(r, name, key, opts.Sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, name)
	}
}

// OpenFile loads a single file labelled with name. The format comes from the path.
func OpenFile(path, name, key string, opts Options) (*Dataset, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, kind, name, key, opts)
}
