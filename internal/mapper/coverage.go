package mapper

import (
	"github.com/ginjaninja78/orae-rims-bridge/internal/orae"
	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
)

// orderCoverage returns records reordered so each coverage line with a
// parent reference directly follows its parent's line. records[i] must be
// the record built from items[i]. Coverage lines whose parent is missing are
// appended at the end in their original order.
func orderCoverage(items []orae.TransactionItem, records []rims.OrderRecord) []rims.OrderRecord {
	children := make(map[string][]int)
	for i := range items {
		if isChildCoverage(&items[i]) {
			children[items[i].ParentLineID] = append(children[items[i].ParentLineID], i)
		}
	}

	out := make([]rims.OrderRecord, 0, len(records))
	placed := make([]bool, len(records))
	for i := range items {
		if isChildCoverage(&items[i]) {
			continue
		}
		out = append(out, records[i])
		placed[i] = true

		if items[i].LineID == "" {
			continue
		}
		for _, c := range children[items[i].LineID] {
			if !placed[c] {
				out = append(out, records[c])
				placed[c] = true
			}
		}
	}

	for i := range records {
		if !placed[i] {
			out = append(out, records[i])
		}
	}
	return out
}

func isChildCoverage(item *orae.TransactionItem) bool {
	return isCoverageLine(item) && item.ParentLineID != ""
}
