// Package propset reads and writes OLE2 structured property set streams, the
// SummaryInformation and DocumentSummaryInformation metadata blocks of compound
// documents.
//
// A property set holds one or more sections. Each section carries typed properties keyed
// by 32-bit ids, its own codepage and optionally a dictionary that names user-defined
// properties. Parsing tolerates the malformations common in real files; writing
// recomputes every size and offset and emits the stream in a single write.
//
// # Basic Usage
//
// Reading a stream:
//
//	ps, err := propset.Parse(data)
//	if errors.Is(err, errs.ErrNotAPropertySetStream) {
//	    // not a property set; treat as opaque
//	}
//	title, ok := ps.FirstSection().Get(propset.PIDTitle)
//
// Building a SummaryInformation stream:
//
//	si := propset.NewSummaryInformation()
//	_ = si.FirstSection().Set(propset.PIDAuthor, format.VTLPSTR, variant.String("Rainer Klute"))
//	_, err := si.Write(w)
//
// Custom properties:
//
//	dsi := propset.NewDocumentSummaryInformation()
//	props, _ := dsi.CustomProperties()
//	_, err := props.Put("Project", "propset")
//
// # Package Structure
//
// The sub-packages carry the layers: variant encodes single values, section holds one
// section body, custom is the name-keyed view over a section, format and errs hold the
// shared types and sentinel errors.
package propset

import (
	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/section"
)

const (
	HeaderSize        = 28 // HeaderSize is the fixed stream header before the section list.
	SectionHeaderSize = 20 // SectionHeaderSize is one format id plus its 4-byte offset.

	FormatVersion0 = uint16(0) // FormatVersion0 is the original stream format.
	FormatVersion1 = uint16(1) // FormatVersion1 allows larger property ids and names.

	// OSWin32 is the operating system kind recorded in the high word of the OS version.
	OSWin32 = uint32(2)
	// DefaultOSVersion is Win32 with version 10.4 in the low word.
	DefaultOSVersion = OSWin32<<16 | 0x0A04
)

// Header is the fixed part of a property set stream.
type Header struct {
	ByteOrder    uint16
	Format       uint16
	OSVersion    uint32
	ClassID      format.ClassID
	SectionCount uint32
}

// PropertySet is a parsed or constructed property set stream. It always holds at least
// one section. It is not safe for concurrent mutation.
type PropertySet struct {
	format    uint16
	osVersion uint32
	classID   format.ClassID
	sections  []*section.Section
}

// New creates a property set with one empty section and no format id.
func New() *PropertySet {
	return &PropertySet{
		format:    FormatVersion0,
		osVersion: DefaultOSVersion,
		sections:  []*section.Section{section.New()},
	}
}

// Clone returns a deep copy of ps. Header fields and every section are copied, so
// mutating the clone never changes ps.
func (ps *PropertySet) Clone() *PropertySet {
	c := &PropertySet{
		format:    ps.format,
		osVersion: ps.osVersion,
		classID:   ps.classID,
		sections:  make([]*section.Section, len(ps.sections)),
	}
	for i, sec := range ps.sections {
		c.sections[i] = sec.Clone()
	}

	return c
}

// ByteOrder returns the byte order marker, which is always the little-endian 0xFFFE.
func (ps *PropertySet) ByteOrder() uint16 {
	return 0xFFFE
}

// Format returns the stream format version.
func (ps *PropertySet) Format() uint16 {
	return ps.format
}

// SetFormat sets the stream format version.
func (ps *PropertySet) SetFormat(v uint16) {
	ps.format = v
}

// OSVersion returns the recorded OS version.
func (ps *PropertySet) OSVersion() uint32 {
	return ps.osVersion
}

// SetOSVersion sets the recorded OS version.
func (ps *PropertySet) SetOSVersion(v uint32) {
	ps.osVersion = v
}

// ClassID returns the stream class id.
func (ps *PropertySet) ClassID() format.ClassID {
	return ps.classID
}

// SetClassID sets the stream class id.
func (ps *PropertySet) SetClassID(id format.ClassID) {
	ps.classID = id
}

// Header returns the stream header as it would be written.
func (ps *PropertySet) Header() Header {
	return Header{
		ByteOrder:    ps.ByteOrder(),
		Format:       ps.format,
		OSVersion:    ps.osVersion,
		ClassID:      ps.classID,
		SectionCount: uint32(len(ps.sections)), //nolint:gosec
	}
}

// SectionCount returns the number of sections.
func (ps *PropertySet) SectionCount() int {
	return len(ps.sections)
}

// Sections returns the sections in stream order. The slice is a copy; the sections
// are shared.
func (ps *PropertySet) Sections() []*section.Section {
	out := make([]*section.Section, len(ps.sections))
	copy(out, ps.sections)

	return out
}

// Section returns the section at index i, or nil when i is out of range.
func (ps *PropertySet) Section(i int) *section.Section {
	if i < 0 || i >= len(ps.sections) {
		return nil
	}

	return ps.sections[i]
}

// FirstSection returns the first section.
func (ps *PropertySet) FirstSection() *section.Section {
	return ps.sections[0]
}

// AddSection appends s.
func (ps *PropertySet) AddSection(s *section.Section) {
	ps.sections = append(ps.sections, s)
}

// SetSections replaces all sections. At least one section is required.
func (ps *PropertySet) SetSections(secs ...*section.Section) error {
	if len(secs) == 0 {
		return errs.ErrNoSections
	}

	ps.sections = make([]*section.Section, len(secs))
	copy(ps.sections, secs)

	return nil
}

// IsSummary reports whether the first section is a SummaryInformation section.
func (ps *PropertySet) IsSummary() bool {
	return ps.firstFormatMatches(SummaryInformationID)
}

// IsExtendedSummary reports whether the first section is a DocumentSummaryInformation
// section.
func (ps *PropertySet) IsExtendedSummary() bool {
	return ps.firstFormatMatches(DocumentSummaryInformationID)
}

func (ps *PropertySet) firstFormatMatches(id format.ClassID) bool {
	fid, ok := ps.FirstSection().FormatID()

	return ok && fid.Matches(id)
}
