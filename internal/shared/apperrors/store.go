package apperrors

import (
	"errors"
	"fmt"

	"portfolio-backend/pkg/docstore"
)

// FromStore translates a document-store failure into the shared taxonomy:
// a missing document becomes ErrNotFound, anything else is a storage
// failure with the cause preserved on the chain.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, err)
	}
	return Storage(err)
}
