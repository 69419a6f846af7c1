package models

import (
	"context"
)

// Drafter produces new file content for the add/fix/refactor family.
// It returns the complete file, not a patch.
type Drafter interface {
	Draft(ctx context.Context, req DraftRequest) (string, error)
}
