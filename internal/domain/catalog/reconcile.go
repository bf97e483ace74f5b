package catalog

import "strings"

// Reconcile merges the combinations derivable from the current attribute
// set against a previously generated variant list, preserving user edits
// for combinations that survive:
//
//  1. Previous variants whose selection is no longer derivable (removed
//     attribute, deactivated attribute, or delisted value) are dropped.
//  2. Each generated combination reuses the surviving variant with the
//     identical selection, keeping its price, stock, active flag and
//     image untouched. The SKU is kept too, unless it is empty, does not
//     carry the current base SKU prefix, or was already claimed earlier
//     in this pass, in which case it is re-derived.
//  3. Combinations with no surviving variant get a fresh variant with
//     default fields and a derived SKU.
//
// The output list follows combination generation order. Reconcile is pure
// apart from SKU assignment on the variants it returns, and idempotent:
// reconciling an already reconciled list with unchanged attributes yields
// an identical list.
func Reconcile(prev []*Variant, attrs *AttributeSet, baseSKU string) []*Variant {
	eligible := attrs.EligibleAttributes()
	combos := GenerateCombinations(eligible)
	if len(combos) == 0 {
		return nil
	}

	base := NormalizeBaseSKU(baseSKU)

	// Index surviving variants by canonical selection key. Duplicate
	// selections keep the first occurrence only.
	survivors := make(map[string]*Variant, len(prev))
	for _, v := range prev {
		if !v.MatchesAttributes(eligible) {
			continue
		}
		key := v.Key()
		if _, exists := survivors[key]; !exists {
			survivors[key] = v
		}
	}

	used := make(map[string]bool, len(combos))
	result := make([]*Variant, 0, len(combos))
	for _, combo := range combos {
		if existing, ok := survivors[combo.Key()]; ok {
			if existing.SKU == "" || !strings.HasPrefix(existing.SKU, base+"-") || used[existing.SKU] {
				existing.SKU = DeriveSKU(combo, base, used)
			} else {
				used[existing.SKU] = true
			}
			result = append(result, existing)
			continue
		}

		result = append(result, NewVariant(combo, DeriveSKU(combo, base, used)))
	}
	return result
}
