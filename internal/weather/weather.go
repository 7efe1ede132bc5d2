// Package weather holds the weather data model and the staleness-checked
// cache between the views and the network provider.
package weather

import "time"

// Snapshot is one fetched weather observation. Immutable once fetched;
// refreshes replace it wholesale.
type Snapshot struct {
	// Timestamp is the observation (or forecast validity) time in seconds
	// since epoch, UTC.
	Timestamp int64
	Temp      float64
	FeelsLike float64
	Humidity  int
	// Icon is the provider's icon code, e.g. "01d".
	Icon     string
	Location string
}

// Time returns the snapshot's timestamp as a time.Time in UTC.
func (s Snapshot) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// Age reports how long ago the snapshot was observed, in whole seconds.
func (s Snapshot) Age(now time.Time) int64 {
	return now.Unix() - s.Timestamp
}

// Series is an ordered sequence of snapshots, insertion order chronological.
// Forecast series are future-dated. Replaced wholesale on refresh, never
// partially updated.
type Series []Snapshot
