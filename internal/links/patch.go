package links

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Optional records whether a JSON key was present and whether it was null.
// The zero value means the key was absent.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Patch is a partial update of a Link. Present keys overwrite the stored
// value and absent keys leave it alone. A null or empty Tag clears the tag.
type Patch struct {
	Name        Optional[string] `json:"name"`
	URL         Optional[string] `json:"url"`
	Description Optional[string] `json:"description"`
	Tag         Optional[string] `json:"tag"`
	Order       Optional[int]    `json:"order"`
}

// ClearsTag reports whether applying p removes the tag.
func (p Patch) ClearsTag() bool {
	return p.Tag.Set && (p.Tag.Null || p.Tag.Value == "")
}

// Validate rejects null for fields that cannot be absent.
func (p Patch) Validate() error {
	for _, f := range []struct {
		name string
		null bool
	}{
		{"name", p.Name.Null},
		{"url", p.URL.Null},
		{"description", p.Description.Null},
		{"order", p.Order.Null},
	} {
		if f.null {
			return fmt.Errorf("%s cannot be null", f.name)
		}
	}
	if p.Order.Set {
		if err := checkOrder(p.Order.Value); err != nil {
			return err
		}
	}
	return nil
}

const (
	minOrder = -1 << 31
	maxOrder = 1<<31 - 1
)

var errOrderRange = errors.New("order is out of range")

func checkOrder(order int) error {
	if order < minOrder || order > maxOrder {
		return errOrderRange
	}
	return nil
}
