package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// BulkToggleActive flips the active flag uniformly across the selected
// variants. The target state is the inverse of "all selected are active":
// mixed selections are activated as a whole.
//
// Activation is all-or-nothing: if any selected variant has zero stock
// the operation is rejected before touching anything, and the error
// reports how many variants blocked it so the caller can highlight them.
// An empty selection is a no-op.
func BulkToggleActive(selected []*Variant) error {
	if len(selected) == 0 {
		return nil
	}

	allActive := true
	for _, v := range selected {
		if !v.Active {
			allActive = false
			break
		}
	}
	target := !allActive

	if target {
		blocked := 0
		for _, v := range selected {
			if v.Stock == 0 {
				blocked++
			}
		}
		if blocked > 0 {
			return shared.NewDomainError("BULK_ACTIVATE_BLOCKED",
				fmt.Sprintf("%d variant(s) have stock 0", blocked))
		}
	}

	for _, v := range selected {
		v.Active = target
	}
	return nil
}

// BulkDelete removes every selected variant from the list. Deletion never
// violates the activation invariant, so no validation is needed.
func BulkDelete(variants []*Variant, selected map[uuid.UUID]bool) []*Variant {
	if len(selected) == 0 {
		return variants
	}

	kept := make([]*Variant, 0, len(variants))
	for _, v := range variants {
		if !selected[v.ID] {
			kept = append(kept, v)
		}
	}
	return kept
}
