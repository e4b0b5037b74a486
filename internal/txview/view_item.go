package txview

import "encoding/json"

// ValueType is a rendering hint for a Value row.
type ValueType uint8

const (
	ValueRegular ValueType = iota
	ValueDisabled
	ValueOutgoing
	ValueIncoming
)

func (t ValueType) String() string {
	switch t {
	case ValueRegular:
		return "regular"
	case ValueDisabled:
		return "disabled"
	case ValueOutgoing:
		return "outgoing"
	case ValueIncoming:
		return "incoming"
	default:
		return "unknown"
	}
}

func (t ValueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ViewItem is one display row. The set of variants is closed.
type ViewItem interface {
	viewItem()
}

// Subhead opens a section, e.g. "You Send: Ethereum".
type Subhead struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Value is a titled value row.
type Value struct {
	Title string    `json:"title"`
	Value string    `json:"value"`
	Type  ValueType `json:"type"`
}

// Address shows a display label with the raw address beneath it.
type Address struct {
	Title      string `json:"title"`
	Value      string `json:"value"`
	ValueTitle string `json:"value_title"`
}

// Input shows raw calldata as hex.
type Input struct {
	Value string `json:"value"`
}

func (Subhead) viewItem() {}
func (Value) viewItem()   {}
func (Address) viewItem() {}
func (Input) viewItem()   {}

func (i Subhead) MarshalJSON() ([]byte, error) {
	type alias Subhead
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"subhead", alias(i)})
}

func (i Value) MarshalJSON() ([]byte, error) {
	type alias Value
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"value", alias(i)})
}

func (i Address) MarshalJSON() ([]byte, error) {
	type alias Address
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"address", alias(i)})
}

func (i Input) MarshalJSON() ([]byte, error) {
	type alias Input
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"input", alias(i)})
}

// SectionViewItem is an ordered, non-empty group of rows.
type SectionViewItem struct {
	ViewItems []ViewItem `json:"view_items"`
}
