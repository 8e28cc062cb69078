package extractor

import "strings"

// BlacklistKeywords are the flagged locations the model is asked to detect.
var BlacklistKeywords = []string{"Campus House", "Westfield Court", "Cottingham Road", "Hull"}

const instructions = `You are a strict data parsing engine for e-commerce logistics.
Analyze the following raw text containing multiple order information.

CRITICAL RULES:
1.  **Strict Address Extraction**: IGNORE the system-generated domestic address (e.g., "广东省 东莞市..."). ONLY extract recipient info (Name, Phone, Address) from "商家备注" (Merchant Remark) or "用户备注" (User Remark). If these remarks are empty or do not contain address info, leave the address/name/phone fields EMPTY.
2.  **Address 1 Field**: The 'address1' field must contain the FULL merged address: House/Room Number, Apartment Name, Street Name, and City/Suburb. Comma separated.
3.  **Address Splits (Crucial for AU)**: In addition to 'address1', you MUST separately extract:
    *   **street**: The House/Unit number and Street Name only.
    *   **city**: The Suburb or City name.
    *   **state**: The State/Province code (e.g., VIC, NSW, QLD, WA) especially for Australian orders.
4.  **Name Pinyin**: If the extracted 'recipientName' is in Chinese characters, you MUST translate it into Hanyu Pinyin (e.g., "张三" -> "Zhang San").
5.  **Blacklist Check**: Set 'isBlacklisted' to true if address contains: {{BLACKLIST}}.
6.  **Product Name**: Extract the Chinese product name EXACTLY as it appears. Do not summarize.
7.  **Splitting**: If an order has multiple products or specs, create separate objects for each SKU.
8.  **Punctuation**: Replace all Chinese punctuation (，：／（）) with English equivalents or spaces.
9.  **Phone Cleaning**: Remove international codes (+44, +61) and leading zeros from the extracted phone number.
10. **Warehouse Extraction**: Analyze the 'productNameCn'. Identify the warehouse or origin location (e.g., '诺丁汉' (Nottingham), '伯明翰' (Birmingham), '澳大利亚' (Australia), '德国' (Germany)). Extract just the location name. If unknown, use 'Other'.
11. **STRICT EMPTY FILLING**: If any information (Recipient Name, Address, Phone) is missing from the *Remarks*, YOU MUST LEAVE THE FIELD EMPTY string (""). DO NOT infer data. DO NOT use "Unknown". DO NOT fill with the domestic address.
`

// BuildPrompt combines the rule set with the raw order text.
func BuildPrompt(text string) string {
	quoted := make([]string, len(BlacklistKeywords))
	for i, k := range BlacklistKeywords {
		quoted[i] = `"` + k + `"`
	}
	blacklist := strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]

	var b strings.Builder
	b.WriteString(strings.Replace(instructions, "{{BLACKLIST}}", blacklist, 1))
	b.WriteString("\nInput Text:\n")
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}
