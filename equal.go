package propset

import "github.com/arloliu/propset/internal/hash"

// Equal reports whether ps and other have the same header fields and equal sections in
// the same order.
func (ps *PropertySet) Equal(other *PropertySet) bool {
	if ps == nil || other == nil {
		return ps == other
	}
	if ps.format != other.format || ps.osVersion != other.osVersion || ps.classID != other.classID {
		return false
	}
	if len(ps.sections) != len(other.sections) {
		return false
	}
	for i := range ps.sections {
		if !ps.sections[i].Equal(other.sections[i]) {
			return false
		}
	}

	return true
}

// Fingerprint returns the xxHash64 of the serialized property set. Sets that serialize
// identically share a fingerprint.
func (ps *PropertySet) Fingerprint(opts ...WriteOption) (uint64, error) {
	b, err := ps.Bytes(opts...)
	if err != nil {
		return 0, err
	}

	return hash.Fingerprint(b), nil
}
