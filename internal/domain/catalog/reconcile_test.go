package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAttributeSet(t *testing.T, spec map[string][]string, order ...string) *AttributeSet {
	t.Helper()
	set := NewAttributeSet()
	for _, name := range order {
		attr, err := set.AddAttribute(name)
		require.NoError(t, err)
		for _, value := range spec[name] {
			require.NoError(t, set.AddValue(attr.ID, value))
		}
	}
	return set
}

func TestReconcileGeneration(t *testing.T) {
	t.Run("generates a variant per combination", func(t *testing.T) {
		attrs := buildAttributeSet(t, map[string][]string{
			"Color": {"Red", "Blue"},
			"Size":  {"S", "M"},
		}, "Color", "Size")

		variants := Reconcile(nil, attrs, "TSHIRT")

		require.Len(t, variants, 4)
		for _, v := range variants {
			assert.True(t, v.Price.IsZero())
			assert.Zero(t, v.Stock)
			assert.False(t, v.Active)
			assert.True(t, len(v.SKU) > 0)
		}
	})

	t.Run("returns nil when no attribute is eligible", func(t *testing.T) {
		attrs := NewAttributeSet()
		_, _ = attrs.AddAttribute("Color") // no values

		assert.Nil(t, Reconcile(nil, attrs, "TSHIRT"))
	})

	t.Run("never assigns duplicate SKUs", func(t *testing.T) {
		attrs := buildAttributeSet(t, map[string][]string{
			"Color": {"Red", "Rose", "Ruby"},
			"Size":  {"S", "M", "L"},
		}, "Color", "Size")

		variants := Reconcile(nil, attrs, "TSHIRT")

		seen := make(map[string]bool, len(variants))
		for _, v := range variants {
			assert.False(t, seen[v.SKU], "duplicate SKU %s", v.SKU)
			seen[v.SKU] = true
		}
	})
}

func TestReconcilePreservesEdits(t *testing.T) {
	t.Run("adding a value keeps existing variants untouched", func(t *testing.T) {
		attrs := buildAttributeSet(t, map[string][]string{
			"Color": {"Red", "Blue"},
		}, "Color")
		variants := Reconcile(nil, attrs, "TSHIRT")
		require.Len(t, variants, 2)

		red := variants[0]
		require.NoError(t, red.SetPrice(decimal.RequireFromString("12.50")))
		require.NoError(t, red.SetStock(7))
		require.NoError(t, red.SetActive(true))
		redSKU := red.SKU

		colorID := attrs.Attributes[0].ID
		require.NoError(t, attrs.AddValue(colorID, "Green"))
		variants = Reconcile(variants, attrs, "TSHIRT")

		require.Len(t, variants, 3)
		kept := variants[0]
		assert.Same(t, red, kept)
		assert.Equal(t, "12.50", kept.Price.StringFixed(2))
		assert.Equal(t, 7, kept.Stock)
		assert.True(t, kept.Active)
		assert.Equal(t, redSKU, kept.SKU)

		green := variants[2]
		assert.Equal(t, "Green", green.Selection["Color"])
		assert.True(t, green.Price.IsZero())
		assert.False(t, green.Active)
	})

	t.Run("removing a value drops only its variants", func(t *testing.T) {
		attrs := buildAttributeSet(t, map[string][]string{
			"Color": {"Red", "Blue"},
			"Size":  {"S", "M"},
		}, "Color", "Size")
		variants := Reconcile(nil, attrs, "TSHIRT")
		require.Len(t, variants, 4)
		for _, v := range variants {
			require.NoError(t, v.SetStock(3))
		}

		colorID := attrs.Attributes[0].ID
		require.NoError(t, attrs.RemoveValue(colorID, "Blue"))
		variants = Reconcile(variants, attrs, "TSHIRT")

		require.Len(t, variants, 2)
		for _, v := range variants {
			assert.Equal(t, "Red", v.Selection["Color"])
			assert.Equal(t, 3, v.Stock)
		}
	})

	t.Run("deactivating an attribute drops all its variants", func(t *testing.T) {
		attrs := buildAttributeSet(t, map[string][]string{
			"Color": {"Red"},
			"Size":  {"S", "M"},
		}, "Color", "Size")
		variants := Reconcile(nil, attrs, "TSHIRT")
		require.Len(t, variants, 2)

		sizeID := attrs.Attributes[1].ID
		require.NoError(t, attrs.ToggleActive(sizeID))
		variants = Reconcile(variants, attrs, "TSHIRT")

		require.Len(t, variants, 1)
		_, hasSize := variants[0].Selection["Size"]
		assert.False(t, hasSize)
	})
}

func TestReconcileIdempotence(t *testing.T) {
	attrs := buildAttributeSet(t, map[string][]string{
		"Color": {"Red", "Blue"},
		"Size":  {"S", "M"},
	}, "Color", "Size")

	first := Reconcile(nil, attrs, "TSHIRT")
	require.NoError(t, first[1].SetStock(4))
	require.NoError(t, first[1].SetActive(true))

	second := Reconcile(first, attrs, "TSHIRT")

	require.Len(t, second, len(first))
	for i := range first {
		assert.Same(t, first[i], second[i])
		assert.Equal(t, first[i].SKU, second[i].SKU)
	}
}

func TestReconcileSKUHandling(t *testing.T) {
	t.Run("re-derives SKUs after a base SKU change", func(t *testing.T) {
		attrs := buildAttributeSet(t, map[string][]string{
			"Color": {"Red"},
		}, "Color")
		variants := Reconcile(nil, attrs, "TSHIRT")
		require.Len(t, variants, 1)
		require.NoError(t, variants[0].SetStock(2))

		variants = Reconcile(variants, attrs, "HOODIE")

		require.Len(t, variants, 1)
		assert.Contains(t, variants[0].SKU, "HOODIE-")
		assert.Equal(t, 2, variants[0].Stock)
	})

	t.Run("fills in an empty SKU", func(t *testing.T) {
		attrs := buildAttributeSet(t, map[string][]string{
			"Color": {"Red"},
		}, "Color")
		variants := Reconcile(nil, attrs, "TSHIRT")
		variants[0].SKU = ""

		variants = Reconcile(variants, attrs, "TSHIRT")

		assert.Contains(t, variants[0].SKU, "TSHIRT-")
	})

	t.Run("empty base SKU falls back to PROD", func(t *testing.T) {
		attrs := buildAttributeSet(t, map[string][]string{
			"Color": {"Red"},
		}, "Color")

		variants := Reconcile(nil, attrs, "")

		require.Len(t, variants, 1)
		assert.Contains(t, variants[0].SKU, "PROD-")
	})

	t.Run("swapping attribute declaration order keeps every SKU", func(t *testing.T) {
		spec := map[string][]string{
			"Color": {"Red", "Blue"},
			"Size":  {"S", "M"},
		}
		colorFirst := Reconcile(nil, buildAttributeSet(t, spec, "Color", "Size"), "TSHIRT")
		sizeFirst := Reconcile(nil, buildAttributeSet(t, spec, "Size", "Color"), "TSHIRT")

		require.Len(t, sizeFirst, len(colorFirst))
		byKey := make(map[string]string, len(colorFirst))
		for _, v := range colorFirst {
			byKey[v.Key()] = v.SKU
		}
		for _, v := range sizeFirst {
			assert.Equal(t, byKey[v.Key()], v.SKU)
		}
	})

	t.Run("duplicate previous selections keep the first occurrence", func(t *testing.T) {
		attrs := buildAttributeSet(t, map[string][]string{
			"Color": {"Red"},
		}, "Color")
		first := NewVariant(Combination{"Color": "Red"}, "TSHIRT-REDC-XX")
		require.NoError(t, first.SetStock(9))
		dupe := NewVariant(Combination{"Color": "Red"}, "TSHIRT-REDC-YY")

		variants := Reconcile([]*Variant{first, dupe}, attrs, "TSHIRT")

		require.Len(t, variants, 1)
		assert.Same(t, first, variants[0])
	})
}

func TestBulkToggleActive(t *testing.T) {
	stocked := func(stock int) *Variant {
		v := NewVariant(Combination{"Color": "Red"}, "SKU")
		_ = v.SetStock(stock)
		return v
	}

	t.Run("activates a fully inactive selection", func(t *testing.T) {
		a, b := stocked(3), stocked(5)

		require.NoError(t, BulkToggleActive([]*Variant{a, b}))

		assert.True(t, a.Active)
		assert.True(t, b.Active)
	})

	t.Run("deactivates a fully active selection", func(t *testing.T) {
		a, b := stocked(3), stocked(5)
		require.NoError(t, a.SetActive(true))
		require.NoError(t, b.SetActive(true))

		require.NoError(t, BulkToggleActive([]*Variant{a, b}))

		assert.False(t, a.Active)
		assert.False(t, b.Active)
	})

	t.Run("mixed selections are activated as a whole", func(t *testing.T) {
		a, b := stocked(3), stocked(5)
		require.NoError(t, a.SetActive(true))

		require.NoError(t, BulkToggleActive([]*Variant{a, b}))

		assert.True(t, a.Active)
		assert.True(t, b.Active)
	})

	t.Run("activation is all-or-nothing when stock is missing", func(t *testing.T) {
		a, b, c := stocked(3), stocked(0), stocked(5)

		err := BulkToggleActive([]*Variant{a, b, c})

		require.Error(t, err)
		assert.Equal(t, "1 variant(s) have stock 0", err.Error())
		assert.False(t, a.Active)
		assert.False(t, c.Active)
	})

	t.Run("reports the offender count", func(t *testing.T) {
		err := BulkToggleActive([]*Variant{stocked(0), stocked(0), stocked(1)})

		require.Error(t, err)
		assert.Equal(t, "2 variant(s) have stock 0", err.Error())
	})

	t.Run("empty selection is a no-op", func(t *testing.T) {
		require.NoError(t, BulkToggleActive(nil))
	})
}

func TestBulkDelete(t *testing.T) {
	t.Run("removes only selected variants", func(t *testing.T) {
		a := NewVariant(Combination{"Color": "Red"}, "SKU-A")
		b := NewVariant(Combination{"Color": "Blue"}, "SKU-B")
		c := NewVariant(Combination{"Color": "Green"}, "SKU-C")

		kept := BulkDelete([]*Variant{a, b, c}, map[uuid.UUID]bool{b.ID: true})

		require.Len(t, kept, 2)
		assert.Same(t, a, kept[0])
		assert.Same(t, c, kept[1])
	})

	t.Run("deletes active variants unconditionally", func(t *testing.T) {
		a := NewVariant(Combination{"Color": "Red"}, "SKU-A")
		require.NoError(t, a.SetStock(3))
		require.NoError(t, a.SetActive(true))

		kept := BulkDelete([]*Variant{a}, map[uuid.UUID]bool{a.ID: true})

		assert.Empty(t, kept)
	})

	t.Run("empty selection keeps everything", func(t *testing.T) {
		a := NewVariant(Combination{"Color": "Red"}, "SKU-A")

		kept := BulkDelete([]*Variant{a}, nil)

		require.Len(t, kept, 1)
	})
}
