// Package seasons orders IPL season labels such as "2009", "2007/08" and "2020/21".
package seasons

import (
	"sort"
	"strconv"
	"strings"
)

// StartYear returns the leading year of a season label, or -1 when there is none.
func StartYear(season string) int {
	season = strings.TrimSpace(season)
	end := 0
	for end < len(season) && season[end] >= '0' && season[end] <= '9' {
		end++
	}
	if end == 0 {
		return -1
	}
	year, err := strconv.Atoi(season[:end])
	if err != nil {
		return -1
	}
	return year
}

// Less orders seasons by leading year, then lexically.
func Less(a, b string) bool {
	ya, yb := StartYear(a), StartYear(b)
	if ya != yb {
		return ya < yb
	}
	return a < b
}

// Sort orders labels in place.
func Sort(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool { return Less(labels[i], labels[j]) })
}
