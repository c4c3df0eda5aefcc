package format

// Codepage numbers with special meaning to the codec. Any Windows codepage number can be
// stored in a section; these are the ones the codec treats specially or defaults to.
const (
	// CodepageUnset is reported when a section has no codepage property.
	CodepageUnset = -1

	CodepageUnicode  = 1200  // CodepageUnicode is UTF-16LE; it switches dictionaries and VT_LPSTR to wide strings.
	CodepageUTF16BE  = 1201  // CodepageUTF16BE is UTF-16 big-endian.
	CodepageWestern  = 1252  // CodepageWestern is Windows-1252, the default for sections without a codepage.
	CodepageMacRoman = 10000 // CodepageMacRoman is the classic Macintosh Roman encoding.
	CodepageUSASCII  = 20127 // CodepageUSASCII is 7-bit US-ASCII.
	CodepageLatin1   = 28591 // CodepageLatin1 is ISO-8859-1.
	CodepageUTF8     = 65001 // CodepageUTF8 is UTF-8.

	// CodepageDefault is used for string decoding when a section declares no codepage.
	CodepageDefault = CodepageWestern
)
