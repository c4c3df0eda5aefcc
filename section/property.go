package section

import (
	"fmt"

	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/variant"
)

// Property is one typed value of a section.
type Property struct {
	ID    uint32
	Type  format.VarType
	Value variant.Value
}

// Equal reports whether p and other have the same id, type and value.
// Byte payloads are compared after padding to 4.
func (p Property) Equal(other Property) bool {
	return p.ID == other.ID && p.Type == other.Type && variant.Equal(p.Value, other.Value)
}

func (p Property) String() string {
	return fmt.Sprintf("%d %s %v", p.ID, p.Type, p.Value)
}
