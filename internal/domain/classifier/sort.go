package classifier

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

type sortKey struct {
	warehouse  string
	product    string
	nottingham bool
	birmingham bool
	australia  bool
}

func keyFor(o orders.OrderRow) sortKey {
	w := strings.ToLower(strings.TrimSpace(o.Warehouse))
	p := strings.ToLower(o.ProductNameCn)
	return sortKey{
		warehouse:  w,
		product:    p,
		nottingham: strings.Contains(w, "诺丁汉") || strings.Contains(w, "nottingham") || strings.Contains(p, "诺丁汉"),
		birmingham: strings.Contains(w, "伯明翰") || strings.Contains(w, "birmingham") || strings.Contains(p, "伯明翰"),
		australia:  strings.Contains(w, "澳大利亚") || strings.Contains(w, "australia") || strings.Contains(p, "澳大利亚"),
	}
}

// SortDefault returns a copy of rows in default table order: Nottingham
// first, Australia last, Birmingham ahead of the remaining warehouses, then
// warehouse and product name under zh-CN collation.
func SortDefault(rows []orders.OrderRow) []orders.OrderRow {
	type keyed struct {
		row orders.OrderRow
		key sortKey
	}
	items := make([]keyed, len(rows))
	for i, o := range rows {
		items[i] = keyed{row: o, key: keyFor(o)}
	}

	col := collate.New(language.Chinese)
	sort.SliceStable(items, func(i, j int) bool {
		return compare(col, items[i].key, items[j].key) < 0
	})

	out := make([]orders.OrderRow, len(items))
	for i, it := range items {
		out[i] = it.row
	}
	return out
}

func compare(col *collate.Collator, a, b sortKey) int {
	if a.nottingham != b.nottingham {
		if a.nottingham {
			return -1
		}
		return 1
	}
	if a.australia != b.australia {
		if a.australia {
			return 1
		}
		return -1
	}
	if a.birmingham != b.birmingham {
		if a.birmingham {
			return -1
		}
		return 1
	}
	if a.warehouse != b.warehouse {
		return col.CompareString(a.warehouse, b.warehouse)
	}
	return col.CompareString(a.product, b.product)
}
