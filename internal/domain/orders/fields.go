package orders

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownField is returned when a field name does not exist on OrderRow.
var ErrUnknownField = errors.New("unknown order field")

// ErrInvalidValue is returned when a value cannot be parsed for a typed field.
var ErrInvalidValue = errors.New("invalid field value")

// fieldAccessor reads and writes one OrderRow field as a string.
type fieldAccessor struct {
	get func(*OrderRow) string
	set func(*OrderRow, string) error
}

func stringField(ptr func(*OrderRow) *string) fieldAccessor {
	return fieldAccessor{
		get: func(o *OrderRow) string { return *ptr(o) },
		set: func(o *OrderRow, v string) error {
			*ptr(o) = v
			return nil
		},
	}
}

var fieldAccessors = map[string]fieldAccessor{
	"customerOrderNo":    stringField(func(o *OrderRow) *string { return &o.CustomerOrderNo }),
	"customerTrackingNo": stringField(func(o *OrderRow) *string { return &o.CustomerTrackingNo }),
	"recipientName":      stringField(func(o *OrderRow) *string { return &o.RecipientName }),
	"address1":           stringField(func(o *OrderRow) *string { return &o.Address1 }),
	"address2":           stringField(func(o *OrderRow) *string { return &o.Address2 }),
	"address3":           stringField(func(o *OrderRow) *string { return &o.Address3 }),
	"city":               stringField(func(o *OrderRow) *string { return &o.City }),
	"empty1":             stringField(func(o *OrderRow) *string { return &o.Empty1 }),
	"zip":                stringField(func(o *OrderRow) *string { return &o.Zip }),
	"empty2":             stringField(func(o *OrderRow) *string { return &o.Empty2 }),
	"phone":              stringField(func(o *OrderRow) *string { return &o.Phone }),
	"productNameEng":     stringField(func(o *OrderRow) *string { return &o.ProductNameEng }),
	"productNameCn":      stringField(func(o *OrderRow) *string { return &o.ProductNameCn }),
	"quantity":           stringField(func(o *OrderRow) *string { return &o.Quantity }),
	"remarks":            stringField(func(o *OrderRow) *string { return &o.Remarks }),
	"specs":              stringField(func(o *OrderRow) *string { return &o.Specs }),
	"street":             stringField(func(o *OrderRow) *string { return &o.Street }),
	"state":              stringField(func(o *OrderRow) *string { return &o.State }),
	"warehouse":          stringField(func(o *OrderRow) *string { return &o.Warehouse }),
	"isBlacklisted": {
		get: func(o *OrderRow) string { return strconv.FormatBool(o.IsBlacklisted) },
		set: func(o *OrderRow, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: isBlacklisted: %v", ErrInvalidValue, err)
			}
			o.IsBlacklisted = b
			return nil
		},
	},
	"originalRawOrderIndex": {
		get: func(o *OrderRow) string { return strconv.Itoa(o.OriginalRawOrderIndex) },
		set: func(o *OrderRow, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: originalRawOrderIndex: %v", ErrInvalidValue, err)
			}
			o.OriginalRawOrderIndex = n
			return nil
		},
	},
}

// fieldLabels are the Chinese column labels shown next to change-log entries.
var fieldLabels = map[string]string{
	"customerOrderNo": "客户订单号",
	"recipientName":   "收件人姓名",
	"address1":        "收件人街道地址1",
	"address2":        "收件人街道地址2",
	"city":            "城市",
	"zip":             "邮编",
	"phone":           "电话",
	"productNameCn":   "中文品名",
	"quantity":        "数量",
	"remarks":         "备注",
	"specs":           "规格",
	"warehouse":       "仓库分类",
}

// IsField reports whether name is an editable OrderRow field. The row id is
// not editable.
func IsField(name string) bool {
	_, ok := fieldAccessors[name]
	return ok
}

// Field returns the named field of the row as a string.
func (o OrderRow) Field(name string) (string, error) {
	acc, ok := fieldAccessors[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return acc.get(&o), nil
}

// SetField writes the named field, parsing the value for non-string fields.
func (o *OrderRow) SetField(name, value string) error {
	acc, ok := fieldAccessors[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return acc.set(o, value)
}

// FieldLabel returns the display label for a field, or the name itself.
func FieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	return name
}
