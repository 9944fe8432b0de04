package iomatch

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/ppcollect/pkg/table"
)

var (
	entryRe = regexp.MustCompile(`['"]([^'"]+)['"]\s*:\s*\[([^\]]*)\]`)
	quoteRe = regexp.MustCompile(`['"]([^'"]*)['"]`)
)

// ProjectIDs parses a projectID cell. Two forms are understood: a mapping
// from dataset label to identifiers, like {'GEO': ['G1', 'G2']}, and a
// plain list separated by ";". Identifiers of the plain form are stored
// under the empty label.
func ProjectIDs(cell string) map[string][]string {
	res := make(map[string][]string)
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return res
	}

	if strings.HasPrefix(cell, "{") {
		for _, m := range entryRe.FindAllStringSubmatch(cell, -1) {
			for _, q := range quoteRe.FindAllStringSubmatch(m[2], -1) {
				res[m[1]] = append(res[m[1]], q[1])
			}
		}
		return res
	}

	for _, id := range strings.Split(cell, ";") {
		if id = strings.TrimSpace(id); id != "" {
			res[""] = append(res[""], id)
		}
	}
	return res
}

// FormatProjectIDs writes identifiers of one label in the mapping form.
func FormatProjectIDs(label string, ids []string) string {
	quoted := make([]string, len(ids))
	for i, v := range ids {
		quoted[i] = "'" + v + "'"
	}
	return fmt.Sprintf("{'%s': [%s]}", label, strings.Join(quoted, ", "))
}

// ExtendByNonMatched appends rows of extendBy whose identifiers are not
// referenced under label in the projectID column of t. Appended rows keep
// only the columns of t, get the projectID {label: [ids]} and fresh index
// labels following the largest index of t.
func (m Matcher) ExtendByNonMatched(
	ctx context.Context,
	t *table.Table,
	extendBy *table.Table,
	label string,
) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !t.HasColumn(table.ColProjectID) {
		return nil, ExtendError(label,
			&table.MissingColumnError{Column: table.ColProjectID})
	}

	used := make(map[string]struct{})
	for i := range t.Rows {
		ids := ProjectIDs(t.Value(i, table.ColProjectID))
		for _, id := range ids[label] {
			used[id] = struct{}{}
		}
	}

	res := t.Clone()
	next := t.MaxIndex() + 1
	if next < t.Len() {
		next = t.Len()
	}
	hasPID := extendBy.HasColumn(table.ColProjectID)

	var added int
	for i := range extendBy.Rows {
		var ids []string
		if hasPID {
			pids := ProjectIDs(extendBy.Value(i, table.ColProjectID))
			for _, k := range slices.Sorted(maps.Keys(pids)) {
				ids = append(ids, pids[k]...)
			}
		}
		if len(ids) == 0 {
			ids = []string{extendBy.Index[i]}
		}
		if isUsed(used, ids) {
			continue
		}

		rec := extendBy.Record(i)
		rec[table.ColProjectID] = FormatProjectIDs(label, ids)
		res.Append(strconv.Itoa(next), rec)
		next++
		added++
	}

	slog.Info("Extended by non-matched records",
		"label", label, "added", humanize.Comma(int64(added)))
	return res, nil
}

func isUsed(used map[string]struct{}, ids []string) bool {
	for _, id := range ids {
		if _, ok := used[id]; ok {
			return true
		}
	}
	return false
}
