// Package export renders order rows into the fixed tab-separated layouts
// used for pasting into the logistics spreadsheets.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

// Layout names one of the fixed export formats.
type Layout string

const (
	LayoutDefault    Layout = "default"
	LayoutAustralia  Layout = "au"
	LayoutBirmingham Layout = "bham"
)

// ParseLayout maps a user-supplied name to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return LayoutDefault, nil
	case "au", "australia":
		return LayoutAustralia, nil
	case "bham", "birmingham":
		return LayoutBirmingham, nil
	default:
		return "", fmt.Errorf("unknown export layout %q", s)
	}
}

var (
	defaultHeaders = []string{
		"客户订单号", "客户快递单号", "收件人姓名", "收件人街道地址1", "收件人街道地址2",
		"收件人城市", "空字段", "收件人邮编", "空字段", "收件人电话",
		"商品英文品名", "商品中文品名", "数量", "备注", "规格",
	}
	australiaHeaders = []string{
		"日期", "参考编号", "收件人姓名", "省/州/府/Province", "区/District",
		"城市/区/City", "街道", "邮编", "收件人电话", "SKU", "数量", "规格",
	}
	birminghamHeaders = []string{
		"客户订单号", "收件人姓名", "收件人城市", "收件人电话", "收件人邮编",
		"收件人地址 1", "收件人地址 2", "收件人地址 3", "空字段",
		"商品数量", "规格", "商品中文品名 1",
	}
)

// Headers returns the header row for a layout.
func Headers(layout Layout) []string {
	switch layout {
	case LayoutAustralia:
		return australiaHeaders
	case LayoutBirmingham:
		return birminghamHeaders
	default:
		return defaultHeaders
	}
}

// Table is a rendered layout: a header row plus one record per order row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Build renders rows in the given layout. The caller supplies the rows already
// filtered and ordered for the view. now fixes the date column of the
// Australia layout.
func Build(layout Layout, rows []orders.OrderRow, now time.Time) Table {
	t := Table{Headers: Headers(layout), Rows: make([][]string, 0, len(rows))}
	for _, o := range rows {
		t.Rows = append(t.Rows, record(layout, o, now))
	}
	return t
}

func record(layout Layout, o orders.OrderRow, now time.Time) []string {
	switch layout {
	case LayoutAustralia:
		street := o.Street
		if street == "" {
			street = o.Address1
		}
		return []string{
			DateLabel(now),
			o.CustomerOrderNo,
			o.RecipientName,
			o.State,
			o.City, // district column repeats the city
			o.City,
			street,
			o.Zip,
			o.Phone,
			o.ProductNameCn,
			o.Quantity,
			o.Specs,
		}
	case LayoutBirmingham:
		return []string{
			o.CustomerOrderNo,
			o.RecipientName,
			o.City,
			o.Phone,
			o.Zip,
			o.Address1,
			o.Address2,
			o.Address3,
			"",
			o.Quantity,
			o.Specs,
			o.ProductNameCn,
		}
	default:
		return []string{
			o.CustomerOrderNo,
			o.CustomerTrackingNo,
			o.RecipientName,
			o.Address1,
			o.Address2,
			o.City,
			o.Empty1,
			o.Zip,
			o.Empty2,
			o.Phone,
			o.ProductNameEng,
			o.ProductNameCn,
			o.Quantity,
			o.Remarks,
			o.Specs,
		}
	}
}

// DateLabel formats the Australia date column as MM/DD.
func DateLabel(now time.Time) string {
	return now.Format("01/02")
}

// TSV joins the header and records with tabs and newlines.
func (t Table) TSV() string {
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, strings.Join(t.Headers, "\t"))
	for _, r := range t.Rows {
		lines = append(lines, strings.Join(r, "\t"))
	}
	return strings.Join(lines, "\n")
}
