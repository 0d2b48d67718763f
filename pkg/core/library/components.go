package library

import (
	"strings"

	"github.com/matzehuels/boardtree/pkg/core/node"
)

// Electrical is a single electrical connection point.
type Electrical struct {
	*node.Node
}

// NewElectrical creates a detached Electrical interface.
func NewElectrical(name string) *Electrical {
	return &Electrical{Node: node.New(name)}
}

// ElectricPower is a supply pair: HV is the rail, LV the reference.
type ElectricPower struct {
	*node.Node
	HV *Electrical
	LV *Electrical
}

// NewElectricPower creates a power interface with its hv and lv children.
func NewElectricPower(name string) *ElectricPower {
	p := &ElectricPower{
		Node: node.New(name),
		HV:   NewElectrical("hv"),
		LV:   NewElectrical("lv"),
	}
	mustAdopt(p.Node, p.HV.Node, p.LV.Node)
	return p
}

// OutputType distinguishes fixed from adjustable regulators.
type OutputType int

const (
	OutputTypeUnknown OutputType = iota
	OutputTypeFixed
	OutputTypeAdjustable
)

func (t OutputType) String() string {
	switch t {
	case OutputTypeFixed:
		return "fixed"
	case OutputTypeAdjustable:
		return "adjustable"
	default:
		return ""
	}
}

// OutputPolarity is the sign of the regulated output.
type OutputPolarity int

const (
	OutputPolarityUnknown OutputPolarity = iota
	OutputPolarityPositive
	OutputPolarityNegative
)

func (p OutputPolarity) String() string {
	switch p {
	case OutputPolarityPositive:
		return "positive"
	case OutputPolarityNegative:
		return "negative"
	default:
		return ""
	}
}

// LDO is a linear low-dropout regulator.
// Type and Polarity stay Unknown until the parameter subsystem decides them.
type LDO struct {
	*node.Node
	VIn      *ElectricPower
	VOut     *ElectricPower
	Type     OutputType
	Polarity OutputPolarity
}

// NewLDO creates an LDO with its power interfaces and traits attached.
func NewLDO(name string) *LDO {
	l := &LDO{
		Node: node.New(name),
		VIn:  NewElectricPower("v_in"),
		VOut: NewElectricPower("v_out"),
	}
	mustAdopt(l.Node, l.VIn.Node, l.VOut.Node)

	l.AddTrait(ValueRepresentation{Render: l.value})
	l.AddTrait(DesignatorPrefix{Prefix: "U"})
	l.AddTrait(PinAssociation{
		Mapping: map[*node.Node][]string{
			l.VIn.HV.Node:  {"Vin", "Vi"},
			l.VOut.HV.Node: {"Vout", "Vo"},
			l.VIn.LV.Node:  {"GND", "V-"},
		},
		AcceptPrefix:  false,
		CaseSensitive: false,
	})
	return l
}

func (l *LDO) value() string {
	parts := []string{"LDO"}
	for _, s := range []string{l.Polarity.String(), l.Type.String()} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// mustAdopt attaches freshly created children. They are detached and
// distinct from parent, so AddChild cannot fail.
func mustAdopt(parent *node.Node, children ...*node.Node) {
	for _, c := range children {
		if err := parent.AddChild(c); err != nil {
			panic(err)
		}
	}
}
