package gst

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// DefaultStateCode is the jurisdiction assumed when the company's own code is
// missing or invalid (Maharashtra)
const DefaultStateCode = "27"

// States maps two-digit GST state codes to jurisdiction names
var States = map[string]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"26": "Dadra and Nagar Haveli and Daman and Diu",
	"27": "Maharashtra",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
}

// State is one registry entry
type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// NormalizeStateCode trims and zero-pads a numeric code ("7" -> "07").
// It returns ok=false when the result is not a registered code.
func NormalizeStateCode(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > 2 {
		return "", false
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < 0 {
		return "", false
	}
	normalized := code
	if len(normalized) == 1 {
		normalized = "0" + normalized
	}
	if _, ok := States[normalized]; !ok {
		return "", false
	}
	return normalized, true
}

// IsValidStateCode reports whether code is exactly two digits and registered
func IsValidStateCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	_, ok := States[code]
	return ok
}

// StateName returns the jurisdiction name for a code, or "" when unknown
func StateName(code string) string {
	normalized, ok := NormalizeStateCode(code)
	if !ok {
		return ""
	}
	return States[normalized]
}

// ListStates returns the registry ordered by code
func ListStates() []State {
	codes := lo.Keys(States)
	sort.Strings(codes)
	return lo.Map(codes, func(code string, _ int) State {
		return State{Code: code, Name: States[code]}
	})
}
