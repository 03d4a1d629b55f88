// Package classnames joins CSS class lists.
package classnames

import "strings"

// Join returns the space-separated union of the given class lists in order
// of first appearance. Empty entries and repeated classes are dropped.
func Join(lists ...string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, class := range strings.Fields(list) {
			if _, ok := seen[class]; ok {
				continue
			}
			seen[class] = struct{}{}
			out = append(out, class)
		}
	}
	return strings.Join(out, " ")
}
