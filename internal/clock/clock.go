package clock

import "time"

// NowFunc returns current time; tests replace it to pin deployment timestamps
var NowFunc = time.Now

// Now returns the current UTC time truncated to milliseconds so that it
// survives a JSON round trip unchanged
func Now() time.Time { return NowFunc().UTC().Truncate(time.Millisecond) }
