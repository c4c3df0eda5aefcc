package variant

import (
	"math"
	"time"
)

const (
	// seconds between 1601-01-01 and 1970-01-01
	filetimeUnixSeconds = 11644473600
	ticksPerSecond      = 10_000_000
)

// FiletimeFromTime converts t to a FILETIME tick count. Precision below 100ns is truncated.
//
// FILETIME covers 1601-01-01 to roughly the year 60056. Earlier times clamp to 0 and
// later times clamp to math.MaxUint64.
func FiletimeFromTime(t time.Time) Filetime {
	sec := t.Unix()
	if sec < -filetimeUnixSeconds {
		return 0
	}
	if sec > math.MaxInt64-filetimeUnixSeconds {
		return Filetime(math.MaxUint64)
	}

	s := uint64(sec + filetimeUnixSeconds) //nolint:gosec
	frac := uint64(t.Nanosecond() / 100)   //nolint:gosec
	if s > (math.MaxUint64-frac)/ticksPerSecond {
		return Filetime(math.MaxUint64)
	}

	return Filetime(s*ticksPerSecond + frac)
}

// Time converts f to a UTC time.Time. Every tick count maps to a valid time.
func (f Filetime) Time() time.Time {
	sec := int64(uint64(f)/ticksPerSecond) - filetimeUnixSeconds //nolint:gosec
	nsec := int64(uint64(f)%ticksPerSecond) * 100                //nolint:gosec

	return time.Unix(sec, nsec).UTC()
}
