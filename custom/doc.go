// Package custom exposes the user-defined properties of a section by name.
//
// A Properties value is a view: names come from the section dictionary, values from the
// non-reserved properties with the same ids, and every mutation writes straight through
// to the section. When two ids carry the same name the lowest id is the one that Get,
// Put and Remove act on, and the view is no longer pure.
//
// Go values map to variant types as follows:
//
//	bool       VT_BOOL
//	int32      VT_I4
//	int        VT_I4, or VT_I8 when it does not fit 32 bits
//	int64      VT_I8
//	float64    VT_R8
//	time.Time  VT_FILETIME
//	string     VT_LPWSTR
//
// Get returns int32 for VT_I4 values, so an int stored through Put comes back as int32.
package custom
