package section

import (
	"fmt"

	"github.com/arloliu/propset/endian"
	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/variant"
)

var engine = endian.GetLittleEndianEngine()

// NameTable maps well-known property ids of one section kind to their names.
type NameTable map[uint32]string

// Section is an ordered, id-keyed set of properties sharing one format id and codepage.
//
// Properties keep insertion order, which for parsed sections is the offset table order.
// The dictionary is held apart from the property list and is always written first as id 0.
// A Section is not safe for concurrent mutation.
type Section struct {
	formatID   format.ClassID
	hasFormat  bool
	props      []Property
	index      map[uint32]int
	dictionary *Dictionary
}

// New creates an empty section without a format id.
func New() *Section {
	return &Section{index: make(map[uint32]int)}
}

// FormatID returns the section format id and whether one has been set.
func (s *Section) FormatID() (format.ClassID, bool) {
	return s.formatID, s.hasFormat
}

// SetFormatID sets the section format id.
func (s *Section) SetFormatID(id format.ClassID) {
	s.formatID = id
	s.hasFormat = true
}

// Len returns the number of properties, not counting the dictionary.
func (s *Section) Len() int {
	return len(s.props)
}

// Get returns the value stored under id.
func (s *Section) Get(id uint32) (variant.Value, bool) {
	p, ok := s.Property(id)
	if !ok {
		return nil, false
	}

	return p.Value, true
}

// Property returns the property stored under id.
func (s *Section) Property(id uint32) (Property, bool) {
	i, ok := s.index[id]
	if !ok {
		return Property{}, false
	}

	return s.props[i], true
}

// Properties returns a copy of all properties in order.
func (s *Section) Properties() []Property {
	out := make([]Property, len(s.props))
	copy(out, s.props)

	return out
}

// Set stores value under id with type vt, replacing any existing property in place.
//
// The value must be encodable as vt; the check runs now so that a later write does not
// discover it. Id 0 is reserved for the dictionary and id 1 only accepts VT_I2 or VT_UI2.
//
// Returns:
//   - error: errs.ErrUnsupportedVariantType when value does not fit vt,
//     errs.ErrIllegalPropertySetData for reserved ids or out of range values
func (s *Section) Set(id uint32, vt format.VarType, value variant.Value) error {
	if id == PIDDictionary {
		return fmt.Errorf("%w: id 0 is reserved for the dictionary", errs.ErrIllegalPropertySetData)
	}
	if id == PIDCodepage && !isCodepageType(vt) {
		return fmt.Errorf("%w: codepage property must be VT_I2, got %s", errs.ErrIllegalPropertySetData, vt)
	}
	if _, err := variant.Encode(vt, value, s.Codepage(), variant.WithOpaquePassthrough(true)); err != nil {
		return fmt.Errorf("property %d: %w", id, err)
	}

	s.put(Property{ID: id, Type: vt, Value: value})

	return nil
}

// put stores p without validation.
func (s *Section) put(p Property) {
	if s.index == nil {
		s.index = make(map[uint32]int)
	}
	if i, ok := s.index[p.ID]; ok {
		s.props[i] = p
		return
	}

	s.index[p.ID] = len(s.props)
	s.props = append(s.props, p)
}

// Remove deletes the property stored under id and reports whether it existed.
// Removing id 0 drops the dictionary.
func (s *Section) Remove(id uint32) bool {
	if id == PIDDictionary {
		had := s.dictionary != nil
		s.dictionary = nil

		return had
	}

	i, ok := s.index[id]
	if !ok {
		return false
	}

	s.props = append(s.props[:i], s.props[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.props); j++ {
		s.index[s.props[j].ID] = j
	}

	return true
}

// Clear removes every property and the dictionary. The format id is kept.
func (s *Section) Clear() {
	s.props = nil
	s.index = make(map[uint32]int)
	s.dictionary = nil
}

// Codepage returns the codepage declared by property 1, or format.CodepageUnset.
// The stored VT_I2 is read as unsigned so codepages above 32767 survive.
func (s *Section) Codepage() int {
	p, ok := s.Property(PIDCodepage)
	if !ok || !isCodepageType(p.Type) {
		return format.CodepageUnset
	}
	n, ok := p.Value.(variant.Int)
	if !ok {
		return format.CodepageUnset
	}

	return int(uint16(n)) //nolint:gosec
}

func isCodepageType(vt format.VarType) bool {
	return vt == format.VTI2 || vt == format.VTUI2
}

// SetCodepage stores cp as property 1.
func (s *Section) SetCodepage(cp int) {
	s.put(Property{ID: PIDCodepage, Type: format.VTI2, Value: variant.Int(int16(uint16(cp)))}) //nolint:gosec
}

// Dictionary returns the section dictionary, or nil when the section has none.
func (s *Section) Dictionary() *Dictionary {
	return s.dictionary
}

// SetDictionary installs d as the section dictionary; nil removes it.
// A section without a codepage gets Unicode so names round-trip unchanged.
func (s *Section) SetDictionary(d *Dictionary) {
	s.dictionary = d
	if d != nil && s.Codepage() == format.CodepageUnset {
		s.SetCodepage(format.CodepageUnicode)
	}
}

// PIDString returns a display name for id: the dictionary name when present, then the
// name from names, then the reserved id name.
func (s *Section) PIDString(id uint32, names NameTable) string {
	if name, ok := s.dictionary.Name(id); ok {
		return name
	}
	if name, ok := names[id]; ok {
		return name
	}

	switch id {
	case PIDDictionary:
		return "PID_DICTIONARY"
	case PIDCodepage:
		return "PID_CODEPAGE"
	case PIDLocale:
		return "PID_LOCALE"
	case PIDBehavior:
		return "PID_BEHAVIOR"
	default:
		return fmt.Sprintf("PID_%d", id)
	}
}

// Clone returns a deep copy of the section structure. Values are shared; they are
// never mutated in place.
func (s *Section) Clone() *Section {
	c := &Section{
		formatID:   s.formatID,
		hasFormat:  s.hasFormat,
		props:      make([]Property, len(s.props)),
		index:      make(map[uint32]int, len(s.index)),
		dictionary: s.dictionary.Clone(),
	}
	copy(c.props, s.props)
	for k, v := range s.index {
		c.index[k] = v
	}

	return c
}

// Equal reports whether s and other have the same format id, dictionary and properties.
// Property order is significant; values compare after padding normalization.
func (s *Section) Equal(other *Section) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.hasFormat != other.hasFormat || s.formatID != other.formatID {
		return false
	}
	if !s.dictionary.Equal(other.dictionary) {
		return false
	}
	if len(s.props) != len(other.props) {
		return false
	}
	for i := range s.props {
		if !s.props[i].Equal(other.props[i]) {
			return false
		}
	}

	return true
}
