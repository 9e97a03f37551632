package gridlevel

import (
	"fmt"
	"regexp"
	"strconv"
)

var rxSlot = regexp.MustCompile(`\{(\d+)\}`)

// subst expands {n} positional slots in a fixed template. Surplus
// arguments are ignored and slots without a matching argument expand
// to nothing.
func subst(tmpl string, args ...interface{}) string {
	return rxSlot.ReplaceAllStringFunc(tmpl, func(slot string) string {
		n, err := strconv.Atoi(slot[1 : len(slot)-1])
		if err != nil || n < 1 || n > len(args) {
			return ""
		}
		return fmt.Sprint(args[n-1])
	})
}

// f5 formats working-depth-scale values (coordinates, depths).
func f5(v float64) string { return fmt.Sprintf("%.5f", v) }

// f3 formats safety-height-scale values.
func f3(v float64) string { return fmt.Sprintf("%.3f", v) }

// ffeed formats a feed rate with minimal digits.
func ffeed(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
