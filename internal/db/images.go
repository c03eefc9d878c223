package db

import (
	"fmt"
	"strings"
)

// validateImages rejects image lists containing blank entries. The schema
// CHECK constraint rejects NULL array elements; this keeps the empty-string
// sentinel equally unconstructible from the Go side.
func validateImages(field string, images []string) error {
	for i, url := range images {
		if strings.TrimSpace(url) == "" {
			return fmt.Errorf("%w: %s[%d] is blank", ErrConstraintViolation, field, i)
		}
	}
	return nil
}
