package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
}

// force the timezone to Europe/Berlin because the mensa publishes
// its menu per Berlin calendar day and our servers aren't guaranteed
// to run in that zone, which would break the
// <time.Time>.Year()/Month()/Day()/Hour() based date logic
func Now() time.Time {
	return time.Now().In(Location)
}
