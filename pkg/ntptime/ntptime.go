// Package ntptime converts between UNIX time and the NTP epoch (seconds
// since 1900-01-01 UTC) PFCP timestamps use.
package ntptime

import "time"

// EpochOffset is the number of seconds between the NTP epoch
// (1900-01-01 00:00:00 UTC) and the UNIX epoch (1970-01-01 00:00:00 UTC).
const EpochOffset = 2208988800

// FromUnix converts t to NTP seconds, truncating to whole seconds.
func FromUnix(t time.Time) uint32 {
	return uint32(t.Unix() + EpochOffset)
}

// ToUnix converts NTP seconds back to a UNIX time.
func ToUnix(ntpSeconds uint32) time.Time {
	return time.Unix(int64(ntpSeconds)-EpochOffset, 0).UTC()
}
