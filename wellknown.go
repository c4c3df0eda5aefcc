package propset

import (
	"github.com/arloliu/propset/custom"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/section"
)

var (
	// SummaryInformationID is the format id of the SummaryInformation section.
	SummaryInformationID = format.MustParseClassID("{F29F85E0-4FF9-1068-AB91-08002B27B3D9}")
	// DocumentSummaryInformationID is the format id of the first DocumentSummaryInformation section.
	DocumentSummaryInformationID = format.MustParseClassID("{D5CDD502-2E9C-101B-9397-08002B2CF9AE}")
	// UserDefinedPropertiesID is the format id of the second DocumentSummaryInformation section,
	// which holds the custom properties.
	UserDefinedPropertiesID = format.MustParseClassID("{D5CDD505-2E9C-101B-9397-08002B2CF9AE}")
)

// SummaryInformation property ids
const (
	PIDTitle       = uint32(2)
	PIDSubject     = uint32(3)
	PIDAuthor      = uint32(4)
	PIDKeywords    = uint32(5)
	PIDComments    = uint32(6)
	PIDTemplate    = uint32(7)
	PIDLastAuthor  = uint32(8)
	PIDRevNumber   = uint32(9)
	PIDEditTime    = uint32(10)
	PIDLastPrinted = uint32(11)
	PIDCreateTime  = uint32(12)
	PIDLastSave    = uint32(13)
	PIDPageCount   = uint32(14)
	PIDWordCount   = uint32(15)
	PIDCharCount   = uint32(16)
	PIDThumbnail   = uint32(17)
	PIDAppName     = uint32(18)
	PIDSecurity    = uint32(19)
)

// DocumentSummaryInformation property ids
const (
	PIDCategory          = uint32(2)
	PIDPresFormat        = uint32(3)
	PIDByteCount         = uint32(4)
	PIDLineCount         = uint32(5)
	PIDParCount          = uint32(6)
	PIDSlideCount        = uint32(7)
	PIDNoteCount         = uint32(8)
	PIDHiddenCount       = uint32(9)
	PIDMMClipCount       = uint32(10)
	PIDScale             = uint32(11)
	PIDHeadingPair       = uint32(12)
	PIDDocParts          = uint32(13)
	PIDManager           = uint32(14)
	PIDCompany           = uint32(15)
	PIDLinksDirty        = uint32(16)
	PIDCharCountSpaces   = uint32(17)
	PIDSharedDoc         = uint32(19)
	PIDLinkBase          = uint32(20)
	PIDHyperlinks        = uint32(21)
	PIDHyperlinksChanged = uint32(22)
	PIDVersion           = uint32(23)
	PIDDigSig            = uint32(24)
	PIDContentType       = uint32(26)
	PIDContentStatus     = uint32(27)
	PIDLanguage          = uint32(28)
	PIDDocVersion        = uint32(29)
)

// SummaryNames names the well-known SummaryInformation ids.
var SummaryNames = section.NameTable{
	PIDTitle:       "PID_TITLE",
	PIDSubject:     "PID_SUBJECT",
	PIDAuthor:      "PID_AUTHOR",
	PIDKeywords:    "PID_KEYWORDS",
	PIDComments:    "PID_COMMENTS",
	PIDTemplate:    "PID_TEMPLATE",
	PIDLastAuthor:  "PID_LASTAUTHOR",
	PIDRevNumber:   "PID_REVNUMBER",
	PIDEditTime:    "PID_EDITTIME",
	PIDLastPrinted: "PID_LASTPRINTED",
	PIDCreateTime:  "PID_CREATE_DTM",
	PIDLastSave:    "PID_LASTSAVE_DTM",
	PIDPageCount:   "PID_PAGECOUNT",
	PIDWordCount:   "PID_WORDCOUNT",
	PIDCharCount:   "PID_CHARCOUNT",
	PIDThumbnail:   "PID_THUMBNAIL",
	PIDAppName:     "PID_APPNAME",
	PIDSecurity:    "PID_SECURITY",
}

// DocumentSummaryNames names the well-known DocumentSummaryInformation ids.
var DocumentSummaryNames = section.NameTable{
	PIDCategory:          "PID_CATEGORY",
	PIDPresFormat:        "PID_PRESFORMAT",
	PIDByteCount:         "PID_BYTECOUNT",
	PIDLineCount:         "PID_LINECOUNT",
	PIDParCount:          "PID_PARCOUNT",
	PIDSlideCount:        "PID_SLIDECOUNT",
	PIDNoteCount:         "PID_NOTECOUNT",
	PIDHiddenCount:       "PID_HIDDENCOUNT",
	PIDMMClipCount:       "PID_MMCLIPCOUNT",
	PIDScale:             "PID_SCALE",
	PIDHeadingPair:       "PID_HEADINGPAIR",
	PIDDocParts:          "PID_DOCPARTS",
	PIDManager:           "PID_MANAGER",
	PIDCompany:           "PID_COMPANY",
	PIDLinksDirty:        "PID_LINKSDIRTY",
	PIDCharCountSpaces:   "PID_CCHWITHSPACES",
	PIDSharedDoc:         "PID_SHAREDDOC",
	PIDLinkBase:          "PID_LINKBASE",
	PIDHyperlinks:        "PID_HLINKS",
	PIDHyperlinksChanged: "PID_HYPERLINKSCHANGED",
	PIDVersion:           "PID_VERSION",
	PIDDigSig:            "PID_DIGSIG",
	PIDContentType:       "PID_CONTENTTYPE",
	PIDContentStatus:     "PID_CONTENTSTATUS",
	PIDLanguage:          "PID_LANGUAGE",
	PIDDocVersion:        "PID_DOCVERSION",
}

// NameTableFor returns the well-known name table for a section format id, or nil.
func NameTableFor(id format.ClassID) section.NameTable {
	switch {
	case id.Matches(SummaryInformationID):
		return SummaryNames
	case id.Matches(DocumentSummaryInformationID):
		return DocumentSummaryNames
	default:
		return nil
	}
}

// NewSummaryInformation creates an empty SummaryInformation property set.
func NewSummaryInformation() *PropertySet {
	ps := New()
	ps.FirstSection().SetFormatID(SummaryInformationID)

	return ps
}

// NewDocumentSummaryInformation creates an empty DocumentSummaryInformation property set.
// The user-defined section is added by CustomProperties when first needed.
func NewDocumentSummaryInformation() *PropertySet {
	ps := New()
	ps.FirstSection().SetFormatID(DocumentSummaryInformationID)

	return ps
}

// CustomProperties returns the name-keyed view over the user-defined section of a
// DocumentSummaryInformation set, adding that section with a Unicode codepage if it is
// missing. It reports false for any other kind of property set, and when the second
// section carries a different format id.
func (ps *PropertySet) CustomProperties() (*custom.Properties, bool) {
	if !ps.IsExtendedSummary() {
		return nil, false
	}

	if len(ps.sections) < 2 {
		sec := section.New()
		sec.SetFormatID(UserDefinedPropertiesID)
		sec.SetCodepage(format.CodepageUnicode)
		ps.sections = append(ps.sections, sec)
	}

	sec := ps.sections[1]
	if fid, ok := sec.FormatID(); !ok || !fid.Matches(UserDefinedPropertiesID) {
		return nil, false
	}

	return custom.New(sec), true
}
