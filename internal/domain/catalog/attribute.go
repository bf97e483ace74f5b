package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Attribute is a named axis of product variation (e.g. "Color") with an
// ordered list of unique values and an active flag.
type Attribute struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Values []string  `json:"values"`
	Active bool      `json:"active"`
}

// HasValue returns true if the attribute lists the given value
func (a *Attribute) HasValue(value string) bool {
	for _, v := range a.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Eligible returns true if the attribute participates in combination
// generation: it must be active and have at least one value.
func (a *Attribute) Eligible() bool {
	return a.Active && len(a.Values) > 0
}

// AttributeSet holds the ordered attributes of one product-edit session.
// Order is declaration order and drives combination generation order.
type AttributeSet struct {
	Attributes []*Attribute `json:"attributes"`
}

// NewAttributeSet creates an empty attribute set
func NewAttributeSet() *AttributeSet {
	return &AttributeSet{Attributes: make([]*Attribute, 0)}
}

// AddAttribute appends a new active attribute with no values.
// The name must be non-empty and unique within the set (case-insensitive).
func (s *AttributeSet) AddAttribute(name string) (*Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE_NAME", "Attribute name cannot be empty")
	}
	for _, attr := range s.Attributes {
		if strings.EqualFold(attr.Name, name) {
			return nil, shared.NewDomainError("DUPLICATE_ATTRIBUTE", "Attribute with this name already exists")
		}
	}

	attr := &Attribute{
		ID:     uuid.New(),
		Name:   name,
		Values: make([]string, 0),
		Active: true,
	}
	s.Attributes = append(s.Attributes, attr)
	return attr, nil
}

// RemoveAttribute deletes the attribute with the given ID
func (s *AttributeSet) RemoveAttribute(id uuid.UUID) error {
	for i, attr := range s.Attributes {
		if attr.ID == id {
			s.Attributes = append(s.Attributes[:i], s.Attributes[i+1:]...)
			return nil
		}
	}
	return shared.NewDomainError("ATTRIBUTE_NOT_FOUND", "Attribute not found")
}

// ToggleActive flips the active flag of the attribute with the given ID
func (s *AttributeSet) ToggleActive(id uuid.UUID) error {
	attr, err := s.Find(id)
	if err != nil {
		return err
	}
	attr.Active = !attr.Active
	return nil
}

// AddValue appends a value to the attribute. Adding a value the attribute
// already lists is a silent no-op rather than an error.
func (s *AttributeSet) AddValue(id uuid.UUID, value string) error {
	attr, err := s.Find(id)
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return shared.NewDomainError("INVALID_ATTRIBUTE_VALUE", "Attribute value cannot be empty")
	}
	if attr.HasValue(value) {
		return nil
	}

	attr.Values = append(attr.Values, value)
	return nil
}

// RemoveValue deletes a value from the attribute. Removing the last value
// does not deactivate the attribute; a valueless attribute is simply
// excluded from generation.
func (s *AttributeSet) RemoveValue(id uuid.UUID, value string) error {
	attr, err := s.Find(id)
	if err != nil {
		return err
	}

	for i, v := range attr.Values {
		if v == value {
			attr.Values = append(attr.Values[:i], attr.Values[i+1:]...)
			return nil
		}
	}
	return shared.NewDomainError("VALUE_NOT_FOUND", "Attribute value not found")
}

// Find returns the attribute with the given ID
func (s *AttributeSet) Find(id uuid.UUID) (*Attribute, error) {
	for _, attr := range s.Attributes {
		if attr.ID == id {
			return attr, nil
		}
	}
	return nil, shared.NewDomainError("ATTRIBUTE_NOT_FOUND", "Attribute not found")
}

// EligibleAttributes returns the attributes that participate in combination
// generation, in declaration order.
func (s *AttributeSet) EligibleAttributes() []*Attribute {
	eligible := make([]*Attribute, 0, len(s.Attributes))
	for _, attr := range s.Attributes {
		if attr.Eligible() {
			eligible = append(eligible, attr)
		}
	}
	return eligible
}
