package custom

import (
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/internal/collision"
	"github.com/arloliu/propset/section"
	"github.com/arloliu/propset/variant"
)

// Properties is the name-keyed view over one section.
type Properties struct {
	sec *section.Section
}

// New creates a view over sec.
func New(sec *section.Section) *Properties {
	return &Properties{sec: sec}
}

// Section returns the underlying section.
func (p *Properties) Section() *section.Section {
	return p.sec
}

// names tracks every dictionary name whose id resolves to a non-reserved property.
func (p *Properties) names() *collision.Tracker {
	t := collision.NewTracker()
	for _, e := range p.sec.Dictionary().Entries() {
		if section.IsReserved(e.ID) {
			continue
		}
		if _, ok := p.sec.Property(e.ID); ok {
			t.Track(e.ID, e.Name)
		}
	}

	return t
}

// Size returns the number of distinct names.
func (p *Properties) Size() int {
	return p.names().Count()
}

// IsPure reports whether dictionary names and property ids form a bijection: no name is
// carried by two ids and every dictionary entry resolves to a property.
func (p *Properties) IsPure() bool {
	t := p.names()
	if t.HasCollision() {
		return false
	}
	for _, e := range p.sec.Dictionary().Entries() {
		if section.IsReserved(e.ID) {
			continue
		}
		if _, ok := p.sec.Property(e.ID); !ok {
			return false
		}
	}

	return true
}

// ID returns the id that name resolves to.
func (p *Properties) ID(name string) (uint32, bool) {
	return p.names().Lowest(name)
}

// IDs returns every id carrying name in ascending order. More than one id means the
// name is shadowed: Get and Put only see the first.
func (p *Properties) IDs(name string) []uint32 {
	return p.names().IDs(name)
}

// Names returns the distinct names in dictionary order.
func (p *Properties) Names() []string {
	return p.names().Names()
}

// Get returns the value for name.
func (p *Properties) Get(name string) (any, bool) {
	id, ok := p.ID(name)
	if !ok {
		return nil, false
	}
	prop, _ := p.sec.Property(id)

	return hostValue(prop), true
}

// All iterates over every name and its value in dictionary order.
func (p *Properties) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		t := p.names()
		for _, name := range t.Names() {
			id, _ := t.Lowest(name)
			prop, _ := p.sec.Property(id)
			if !yield(name, hostValue(prop)) {
				return
			}
		}
	}
}

// Put stores value under name and returns the previous value, if any.
//
// An existing name is overwritten in place under its id. A new name gets a fresh id
// above every id already in use, and a dictionary is created on demand.
//
// Returns:
//   - any: the previous value, nil for a new name
//   - error: errs.ErrInvalidCustomPropertyValueKind for unsupported Go types,
//     errs.ErrIDSpaceExhausted when no id is left
func (p *Properties) Put(name string, value any) (any, error) {
	vt, v, err := toVariant(value)
	if err != nil {
		return nil, err
	}

	if id, ok := p.ID(name); ok {
		prop, _ := p.sec.Property(id)
		if err := p.sec.Set(id, vt, v); err != nil {
			return nil, err
		}

		return hostValue(prop), nil
	}

	id, ok := p.danglingID(name)
	if !ok {
		if id, err = p.nextID(); err != nil {
			return nil, err
		}
	}

	if err := p.sec.Set(id, vt, v); err != nil {
		return nil, err
	}

	dict := p.sec.Dictionary()
	if dict == nil {
		dict = section.NewDictionary()
		p.sec.SetDictionary(dict)
	}
	dict.Set(id, name)

	return nil, nil
}

// Remove deletes the property and dictionary entry name resolves to. When several ids
// carry name only the lowest one is removed.
func (p *Properties) Remove(name string) (any, bool) {
	id, ok := p.ID(name)
	if !ok {
		return nil, false
	}

	prop, _ := p.sec.Property(id)
	p.sec.Remove(id)
	p.sec.Dictionary().Remove(id)

	return hostValue(prop), true
}

// danglingID finds a dictionary entry for name whose property is missing.
func (p *Properties) danglingID(name string) (uint32, bool) {
	for _, e := range p.sec.Dictionary().Entries() {
		if e.Name != name || section.IsReserved(e.ID) || e.ID >= section.PIDMaxCustom {
			continue
		}
		if _, ok := p.sec.Property(e.ID); !ok {
			return e.ID, true
		}
	}

	return 0, false
}

func (p *Properties) nextID() (uint32, error) {
	highest := section.PIDCodepage
	consider := func(id uint32) {
		if !section.IsReserved(id) && id < section.PIDMaxCustom && id > highest {
			highest = id
		}
	}
	for _, prop := range p.sec.Properties() {
		consider(prop.ID)
	}
	for _, e := range p.sec.Dictionary().Entries() {
		consider(e.ID)
	}

	if highest+1 >= section.PIDMaxCustom {
		return 0, errs.ErrIDSpaceExhausted
	}

	return highest + 1, nil
}

func toVariant(value any) (format.VarType, variant.Value, error) {
	switch v := value.(type) {
	case bool:
		return format.VTBool, variant.Bool(v), nil
	case int32:
		return format.VTI4, variant.Int(v), nil
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return format.VTI4, variant.Int(v), nil
		}
		return format.VTI8, variant.Int64(v), nil
	case int64:
		return format.VTI8, variant.Int64(v), nil
	case float64:
		return format.VTR8, variant.Float(v), nil
	case time.Time:
		return format.VTFiletime, variant.FiletimeFromTime(v), nil
	case string:
		return format.VTLPWSTR, variant.String(v), nil
	default:
		return 0, nil, fmt.Errorf("%w: %T", errs.ErrInvalidCustomPropertyValueKind, value)
	}
}

func hostValue(p section.Property) any {
	if n, ok := p.Value.(variant.Int); ok && (p.Type == format.VTI4 || p.Type == format.VTInt) {
		return int32(n) //nolint:gosec
	}

	return variant.Interface(p.Value)
}
