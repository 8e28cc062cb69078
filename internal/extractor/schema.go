package extractor

import "google.golang.org/genai"

// ResponseSchema is the structure the extraction service must return. It is
// sent as the Gemini response schema and embedded in the prompt for
// providers that only support free-form JSON mode.
func ResponseSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}

	order := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"customerOrderNo": str(""),
			"recipientName":   str("Extracted from Remarks. If Chinese, convert to Pinyin."),
			"address1":        str("Merged address (House/Room No, Apt, Street, City). Comma separated. Exclude Name/Phone."),
			"street":          str("Street part ONLY (House/Unit + Street Name). Used for AU export."),
			"city":            str("Extracted city/suburb from Remarks."),
			"state":           str("State/Province code (e.g., VIC, NSW, QLD) for AU orders."),
			"zip":             str("Extracted postcode from Remarks."),
			"phone":           str("Extracted phone from Remarks. Remove +44/0 prefix."),
			"productNameCn":   str("Exact product Chinese name found in text."),
			"quantity":        str("e.g. '1', '2'"),
			"remarks":         str("Any special remarks like '合箱', '自提'"),
			"specs":           str("Content after '规格：' or '规格ID：'"),
			"isBlacklisted": {
				Type:        genai.TypeBoolean,
				Description: "True if address contains Campus House, Westfield Court, Cottingham Road, or Hull.",
			},
			"warehouse": str("Extracted warehouse name from Product Name (e.g. '诺丁汉', '伯明翰', '澳大利亚', '德国'). Default to 'Other'."),
		},
		Required: []string{
			"customerOrderNo", "recipientName", "address1", "productNameCn",
			"quantity", "isBlacklisted", "warehouse",
		},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"rawOrderCount": {
				Type:        genai.TypeInteger,
				Description: "Total number of unique order numbers found in the input.",
			},
			"orders": {
				Type:  genai.TypeArray,
				Items: order,
			},
		},
		Required: []string{"rawOrderCount", "orders"},
	}
}
