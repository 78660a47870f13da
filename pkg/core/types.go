package core

// Type is the kind of a decision. It is fixed when the decision is created.
type Type uint8

// Decision types recognized in the TYPE column.
const (
	TypeBoolean Type = iota + 1
	TypeEnum
	TypeNumber
	TypeString
)

// Types lists every decision type in canonical order.
var Types = []Type{TypeBoolean, TypeEnum, TypeNumber, TypeString}

// String returns the canonical type tag.
func (t Type) String() string {
	switch t {
	case TypeBoolean:
		return "BOOLEAN"
	case TypeEnum:
		return "ENUM"
	case TypeNumber:
		return "NUMBER"
	case TypeString:
		return "STRING"
	default:
		return "UNKNOWN"
	}
}

// IsValid reports whether t is one of the four decision types.
func (t Type) IsValid() bool {
	return t >= TypeBoolean && t <= TypeString
}

// RangeKind describes which value domain a decision type accepts.
type RangeKind uint8

// Range kinds.
const (
	RangeNone RangeKind = iota
	RangeNumeric
	RangeOptions
)

func (k RangeKind) String() string {
	switch k {
	case RangeNumeric:
		return "numeric interval"
	case RangeOptions:
		return "option list"
	default:
		return "no range"
	}
}

// Capabilities lists the auxiliary fields a decision type may carry.
type Capabilities struct {
	Range       RangeKind
	Cardinality bool
}

// capabilities is the per-type capability table consulted by the factory,
// the decision setters and the loader.
var capabilities = map[Type]Capabilities{
	TypeBoolean: {Range: RangeNone},
	TypeEnum:    {Range: RangeOptions, Cardinality: true},
	TypeNumber:  {Range: RangeNumeric},
	TypeString:  {Range: RangeNone},
}

// CapabilitiesOf returns the capabilities of t. Unknown types have none.
func CapabilitiesOf(t Type) Capabilities {
	return capabilities[t]
}
