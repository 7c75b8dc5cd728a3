package timer

import (
	"fmt"
	"sort"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host's zoneinfo
)

// ZoneTime is one row of the world clock.
type ZoneTime struct {
	Zone   string    `json:"zone"`
	Time   time.Time `json:"time"`
	Abbrev string    `json:"abbrev"`
	// OffsetMinutes is the UTC offset in minutes.
	OffsetMinutes int `json:"offset_minutes"`
}

// DefaultZones is the world clock's preset list.
var DefaultZones = []string{"UTC", "America/New_York", "Europe/London", "Europe/Moscow", "Asia/Jerusalem", "Asia/Tokyo"}

// WorldClock converts at into each IANA zone, sorted by UTC offset then
// name. An unknown zone fails the whole call.
func WorldClock(at time.Time, zones []string) ([]ZoneTime, error) {
	if len(zones) == 0 {
		zones = DefaultZones
	}

	out := make([]ZoneTime, 0, len(zones))
	for _, z := range zones {
		loc, err := time.LoadLocation(z)
		if err != nil {
			return nil, fmt.Errorf("unknown time zone %q: %w", z, err)
		}
		local := at.In(loc)
		abbrev, offset := local.Zone()
		out = append(out, ZoneTime{Zone: z, Time: local, Abbrev: abbrev, OffsetMinutes: offset / 60})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OffsetMinutes != out[j].OffsetMinutes {
			return out[i].OffsetMinutes < out[j].OffsetMinutes
		}
		return out[i].Zone < out[j].Zone
	})
	return out, nil
}
