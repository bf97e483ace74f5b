package catalog

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// DefaultBaseSKU is used when a product has no SKU of its own
const DefaultBaseSKU = "PROD"

// NormalizeBaseSKU trims and upper-cases the base SKU, falling back to
// DefaultBaseSKU when the result is empty. SKU derivation never fails.
func NormalizeBaseSKU(baseSKU string) string {
	baseSKU = strings.ToUpper(strings.TrimSpace(baseSKU))
	if baseSKU == "" {
		return DefaultBaseSKU
	}
	return baseSKU
}

// DeriveSKU maps one combination to a unique SKU string:
//
//	<BASE>-<code>-<code>-...-<hash>[-<n>]
//
// The pairs are processed in alphabetical attribute-name order, so the
// result does not depend on attribute declaration order. The used set
// tracks SKUs already issued during the current generation pass; the
// final SKU is registered in it before returning.
//
// Identical combinations with the same base and an empty used set always
// derive the same SKU, which makes regeneration idempotent.
func DeriveSKU(combo Combination, baseSKU string, used map[string]bool) string {
	base := NormalizeBaseSKU(baseSKU)

	names := make([]string, 0, len(combo))
	for name := range combo {
		names = append(names, name)
	}
	sort.Strings(names)

	var values strings.Builder
	codes := make([]string, 0, len(names))
	for i, name := range names {
		values.WriteString(combo[name])
		codes = append(codes, pairCode(name, combo[name], i))
	}

	skuSuffix := strings.Join(codes, "-") + "-" + hashSuffix(values.String())
	candidate := base + "-" + skuSuffix

	sku := candidate
	for n := 1; used[sku]; n++ {
		sku = candidate + "-" + strconv.Itoa(n)
	}
	used[sku] = true
	return sku
}

// hashSuffix folds the concatenated values into a 32-bit rolling hash
// (acc = acc*31 + char, wrapping), then returns the first two characters
// of the absolute value in upper-case base-36. The fold consumes runes,
// not UTF-16 code units, so values outside the Basic Multilingual Plane
// hash as one code point instead of a surrogate pair.
func hashSuffix(s string) string {
	var acc int32
	for _, r := range s {
		acc = acc*31 + int32(r)
	}

	v := int64(acc)
	if v < 0 {
		v = -v
	}
	encoded := strings.ToUpper(strconv.FormatInt(v, 36))
	if len(encoded) > 2 {
		encoded = encoded[:2]
	}
	return encoded
}

// pairCode derives a short positional code for one (attribute, value)
// pair. The value is stripped to alphanumerics and upper-cased first;
// shorter values borrow characters from themselves and the attribute
// name so that every code is 2-4 characters.
func pairCode(attrName, value string, index int) string {
	cleaned := cleanValue(value)

	switch n := len(cleaned); {
	case n >= 4:
		return cleaned[:2] + cleaned[n-2:]
	case n == 3:
		return cleaned + attrInitial(attrName)
	case n == 2:
		return cleaned + cleaned[:1] + attrInitial(attrName)
	case n == 1:
		return strings.Repeat(cleaned, 3) + attrInitial(attrName)
	default:
		// Value stripped to nothing: fall back to the attribute name
		// plus the pair's position so the code stays distinct.
		return attrPrefix(attrName) + strconv.Itoa(index)
	}
}

// cleanValue strips non-alphanumeric characters and upper-cases the rest
func cleanValue(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(unicode.ToUpper(r))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// attrInitial returns the upper-cased first character of the attribute name
func attrInitial(name string) string {
	for _, r := range name {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// attrPrefix returns the upper-cased first two characters of the attribute name
func attrPrefix(name string) string {
	runes := []rune(strings.ToUpper(name))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}
