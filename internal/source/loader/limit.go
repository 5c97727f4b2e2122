package loader

import (
	"fmt"
	"io"

	"github.com/goliatone/go-schemagen/pkg/source"
)

// readLimited reads r fully, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64, location string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", source.ErrDocumentTooLarge, location, limit)
	}
	return data, nil
}
