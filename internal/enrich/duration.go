package enrich

import (
	"regexp"
	"strconv"
)

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration converts an ISO-8601 duration of the form "PT#H#M#S"
// (any component optional, a leading day component tolerated) into total
// seconds. Anything unparseable yields zero, which the minimum-duration
// rule downstream rejects.
func ParseISODuration(s string) int64 {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	var total int64
	for i, mult := range []int64{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0
		}
		total += n * mult
	}
	return total
}
