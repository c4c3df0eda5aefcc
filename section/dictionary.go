package section

import (
	"fmt"

	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/internal/codepage"
	"github.com/arloliu/propset/internal/pool"
)

// DictionaryEntry maps one property id to its display name.
type DictionaryEntry struct {
	ID   uint32
	Name string
}

// Dictionary is the ordered id to name table stored at property id 0.
//
// Entries keep insertion order, which is also their write order. Setting an id that is
// already present replaces its name in place.
type Dictionary struct {
	entries []DictionaryEntry
	index   map[uint32]int
}

// NewDictionary creates a dictionary holding entries in the given order.
func NewDictionary(entries ...DictionaryEntry) *Dictionary {
	d := &Dictionary{index: make(map[uint32]int, len(entries))}
	for _, e := range entries {
		d.Set(e.ID, e.Name)
	}

	return d
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}

	return len(d.entries)
}

// Name returns the name recorded for id.
func (d *Dictionary) Name(id uint32) (string, bool) {
	if d == nil {
		return "", false
	}
	i, ok := d.index[id]
	if !ok {
		return "", false
	}

	return d.entries[i].Name, true
}

// Set records name for id.
func (d *Dictionary) Set(id uint32, name string) {
	if d.index == nil {
		d.index = make(map[uint32]int)
	}
	if i, ok := d.index[id]; ok {
		d.entries[i].Name = name
		return
	}

	d.index[id] = len(d.entries)
	d.entries = append(d.entries, DictionaryEntry{ID: id, Name: name})
}

// Remove deletes the entry for id and reports whether it existed.
func (d *Dictionary) Remove(id uint32) bool {
	if d == nil {
		return false
	}
	i, ok := d.index[id]
	if !ok {
		return false
	}

	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, id)
	for j := i; j < len(d.entries); j++ {
		d.index[d.entries[j].ID] = j
	}

	return true
}

// Entries returns a copy of the entries in order.
func (d *Dictionary) Entries() []DictionaryEntry {
	if d == nil {
		return nil
	}
	out := make([]DictionaryEntry, len(d.entries))
	copy(out, d.entries)

	return out
}

// Clone returns an independent copy of d.
func (d *Dictionary) Clone() *Dictionary {
	if d == nil {
		return nil
	}

	return NewDictionary(d.entries...)
}

// Equal reports whether d and other map the same ids to the same names.
// Entry order is not significant.
func (d *Dictionary) Equal(other *Dictionary) bool {
	if d.Len() != other.Len() {
		return false
	}
	if d == nil || other == nil {
		return d.Len() == 0 && other.Len() == 0
	}
	for _, e := range d.entries {
		name, ok := other.Name(e.ID)
		if !ok || name != e.Name {
			return false
		}
	}

	return true
}

// parseDictionary decodes the dictionary payload. Names are UTF-16LE with every entry
// padded to 4 when cp is Unicode, otherwise bytes in cp.
func parseDictionary(data []byte, cp int) (*Dictionary, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: dictionary needs 4 bytes, have %d", errs.ErrCorruptPropertySet, len(data))
	}

	count := int(engine.Uint32(data))
	if count > (len(data)-4)/8 {
		return nil, fmt.Errorf("%w: dictionary declares %d entries in %d bytes", errs.ErrCorruptPropertySet, count, len(data)-4)
	}

	wide := codepage.IsWide(cp)
	d := &Dictionary{
		entries: make([]DictionaryEntry, 0, count),
		index:   make(map[uint32]int, count),
	}

	off := 4
	for range count {
		if len(data)-off < 8 {
			return nil, fmt.Errorf("%w: dictionary entry header at %d overruns %d bytes", errs.ErrCorruptPropertySet, off, len(data))
		}
		id := engine.Uint32(data[off:])
		length := int(engine.Uint32(data[off+4:]))
		off += 8

		size := length
		if wide {
			size = length * 2
		}
		if size < 0 || size > len(data)-off {
			return nil, fmt.Errorf("%w: dictionary name of %d bytes at %d overruns %d bytes", errs.ErrCorruptPropertySet, size, off, len(data))
		}

		raw := data[off : off+size]
		var name string
		var err error
		if wide {
			name, err = codepage.Decode(codepage.TrimWideNUL(raw), format.CodepageUnicode)
			off += min(size+pool.PadLen(size), len(data)-off)
		} else {
			name, err = codepage.Decode(codepage.TrimNUL(raw), cp)
			off += size
		}
		if err != nil {
			return nil, fmt.Errorf("%w: dictionary name for id %d: %w", errs.ErrCorruptPropertySet, id, err)
		}

		d.Set(id, name)
	}

	return d, nil
}

// appendDictionary appends the dictionary payload encoded for cp, padded to 4.
func appendDictionary(dst []byte, d *Dictionary, cp int) ([]byte, error) {
	wide := codepage.IsWide(cp)
	if !wide && !codepage.Supported(cp) {
		return dst, fmt.Errorf("%w: dictionary cannot be written in codepage %d", errs.ErrIllegalPropertySetData, cp)
	}

	start := len(dst)
	dst = engine.AppendUint32(dst, uint32(d.Len())) //nolint:gosec
	for _, e := range d.entries {
		if wide {
			raw, err := codepage.Encode(e.Name+"\x00", format.CodepageUnicode)
			if err != nil {
				return dst[:start], err
			}
			dst = engine.AppendUint32(dst, e.ID)
			dst = engine.AppendUint32(dst, uint32(len(raw)/2)) //nolint:gosec
			dst = append(dst, raw...)
			dst = pool.AppendPad(dst, len(raw))

			continue
		}

		raw, err := codepage.Encode(e.Name, cp)
		if err != nil {
			return dst[:start], fmt.Errorf("dictionary name for id %d: %w", e.ID, err)
		}
		dst = engine.AppendUint32(dst, e.ID)
		dst = engine.AppendUint32(dst, uint32(len(raw)+1)) //nolint:gosec
		dst = append(dst, raw...)
		dst = append(dst, 0)
	}

	return pool.AppendPad(dst, len(dst)-start), nil
}
