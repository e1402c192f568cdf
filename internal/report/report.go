// Package report renders a final aggregate table in the fixed output
// format.
package report

import (
	"sort"
	"strings"

	"github.com/dolthub/swiss"

	"onebrc/internal/stats"
)

// Format renders the table as one result line:
//
//	{name1=min/mean/max, name2=min/mean/max, ...}
//
// with names ascending by byte value, every numeric field carrying
// exactly one fractional digit, and no trailing separator. An empty table
// renders as {}.
func Format(t *stats.Table) string {
	byName := swiss.NewMap[string, *stats.Aggregate](uint32(t.Len() + 1))
	names := make([]string, 0, t.Len())

	t.Range(func(a *stats.Aggregate) bool {
		if prev, ok := byName.Get(a.Name); ok {
			prev.Merge(a)
		} else {
			byName.Put(a.Name, a)
			names = append(names, a.Name)
		}
		return true
	})
	sort.Strings(names)

	var sb strings.Builder
	var scratch [8]byte
	sb.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		a, _ := byName.Get(name)
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.Write(a.Min.Append(scratch[:0]))
		sb.WriteByte('/')
		sb.Write(a.Mean().Append(scratch[:0]))
		sb.WriteByte('/')
		sb.Write(a.Max.Append(scratch[:0]))
	}
	sb.WriteByte('}')
	return sb.String()
}
