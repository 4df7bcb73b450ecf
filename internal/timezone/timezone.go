package timezone

import "time"

// The clinic operates in a single zone; all dates and times are
// interpreted in it.
const Name = "America/Mexico_City"

func Location() *time.Location {
	loc, err := time.LoadLocation(Name)
	if err != nil {
		return time.Local
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}
