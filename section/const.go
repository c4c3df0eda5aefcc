package section

const (
	// Section body layout
	HeaderSize     = 8 // HeaderSize is the byte length field plus the property count field.
	EntrySize      = 8 // EntrySize is one (id, offset) pair of the property offset table.
	TypeHeaderSize = 4 // TypeHeaderSize is the variant type tag plus two padding bytes.

	// Reserved property ids
	PIDDictionary = uint32(0x00000000) // PIDDictionary holds the id to name dictionary, written without a type header.
	PIDCodepage   = uint32(0x00000001) // PIDCodepage holds the section codepage as VT_I2.
	PIDLocale     = uint32(0x80000000) // PIDLocale holds the section locale identifier.
	PIDBehavior   = uint32(0x80000003) // PIDBehavior holds the case-sensitivity flag of dictionary names.

	// PIDMaxCustom is the exclusive upper bound of ids given to user-defined properties.
	PIDMaxCustom = uint32(0x80000000)
)

// IsReserved reports whether id is one of the reserved property ids that never carry
// user-defined values.
func IsReserved(id uint32) bool {
	switch id {
	case PIDDictionary, PIDCodepage, PIDLocale, PIDBehavior:
		return true
	default:
		return false
	}
}
