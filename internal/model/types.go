// Package model defines the core data structures for dk.
package model

// DiscountType represents how a discount value is applied.
type DiscountType string

const (
	TypePercent DiscountType = "percent"
	TypeFixed   DiscountType = "fixed"
)

// IsPercent reports whether the value is a percentage.
// Every other type, including unknown ones, is a fixed amount.
func (t DiscountType) IsPercent() bool {
	return t == TypePercent
}

// Discount is a discount record as stored by the server.
type Discount struct {
	ID    string       `json:"_id" yaml:"id"`
	Type  DiscountType `json:"type" yaml:"type"`
	Value float64      `json:"value" yaml:"value"`

	// Extra holds fields dk does not interpret. They are kept so that
	// records written by other clients survive an update.
	Extra map[string]any `json:"-" yaml:"extra,omitempty"`
}

// Payload is the client-writable part of a discount.
// It never carries an identifier.
type Payload struct {
	Type  DiscountType   `yaml:"type"`
	Value float64        `yaml:"value"`
	Extra map[string]any `yaml:"extra,omitempty"`
}

// Payload returns the writable fields of d.
func (d Discount) Payload() Payload {
	return Payload{
		Type:  d.Type,
		Value: d.Value,
		Extra: copyExtra(d.Extra),
	}
}

// Merge returns d overlaid with the fields of p. The identifier is kept.
func (d Discount) Merge(p Payload) Discount {
	merged := Discount{
		ID:    d.ID,
		Type:  p.Type,
		Value: p.Value,
		Extra: copyExtra(d.Extra),
	}
	for k, v := range p.Extra {
		if isIDKey(k) {
			continue
		}
		if merged.Extra == nil {
			merged.Extra = make(map[string]any)
		}
		merged.Extra[k] = v
	}
	return merged
}

func copyExtra(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
