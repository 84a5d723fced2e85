package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Wire field names used by the discount endpoint.
const (
	fieldID    = "_id"
	fieldType  = "type"
	fieldValue = "value"
)

// isIDKey reports whether k names an identifier field. The server rejects
// identifiers in request bodies.
func isIDKey(k string) bool {
	return k == fieldID || k == "id"
}

// UnmarshalJSON decodes a discount from the wire format.
// value may be a JSON number or a numeric string.
func (d *Discount) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode discount: %w", err)
	}

	var out Discount
	for k, v := range raw {
		switch k {
		case fieldID:
			id, err := decodeID(v)
			if err != nil {
				return err
			}
			out.ID = id
		case fieldType:
			var s string
			if !isNull(v) {
				if err := json.Unmarshal(v, &s); err != nil {
					return fmt.Errorf("invalid discount type: %w", err)
				}
			}
			out.Type = DiscountType(s)
		case fieldValue:
			n, err := decodeNumber(v)
			if err != nil {
				return err
			}
			out.Value = n
		default:
			var x any
			if err := json.Unmarshal(v, &x); err != nil {
				return fmt.Errorf("invalid field %q: %w", k, err)
			}
			if out.Extra == nil {
				out.Extra = make(map[string]any)
			}
			out.Extra[k] = x
		}
	}

	*d = out
	return nil
}

// MarshalJSON encodes a discount in the wire format, extra fields included.
func (d Discount) MarshalJSON() ([]byte, error) {
	m := d.Payload().wire()
	if d.ID != "" {
		m[fieldID] = d.ID
	}
	return json.Marshal(m)
}

// MarshalJSON encodes a payload as a request body. Identifier fields are
// stripped.
func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

func (p Payload) wire() map[string]any {
	m := make(map[string]any, len(p.Extra)+2)
	for k, v := range p.Extra {
		if isIDKey(k) {
			continue
		}
		m[k] = v
	}
	m[fieldType] = string(p.Type)
	m[fieldValue] = p.Value
	return m
}

// decodeID accepts string or numeric identifiers.
func decodeID(v json.RawMessage) (string, error) {
	if isNull(v) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("invalid discount id %s", string(v))
	}
	return n.String(), nil
}

// decodeNumber coerces a JSON number or numeric string into a float64.
// Missing and null values decode as zero.
func decodeNumber(v json.RawMessage) (float64, error) {
	if isNull(v) {
		return 0, nil
	}
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return 0, fmt.Errorf("invalid discount value %s", string(v))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid discount value %q", s)
	}
	return n, nil
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || string(bytes.TrimSpace(v)) == "null"
}
