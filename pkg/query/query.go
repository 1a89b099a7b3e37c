// Package query parses list-shaped form and URL values.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated string into a trimmed slice of
// strings. Empty items are dropped.
func StringSlice(val string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Prefixed parses val like [StringSlice] and prepends prefix to every item that
// does not carry it yet ("sakarya, doga" → ["tag_sakarya", "tag_doga"]).
func Prefixed(val, prefix string) []string {
	items := StringSlice(val)
	for i, item := range items {
		if !strings.HasPrefix(item, prefix) {
			items[i] = prefix + item
		}
	}
	return items
}
