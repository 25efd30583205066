// Package countries maintains a static lookup for translating two letter
// country codes into display names for charts and reports.
package countries

// names maps ISO 3166-1 alpha-2 codes to the display name used in charts.
var names = map[string]string{
	"US": "United States",
	"DE": "Germany",
	"FR": "France",
	"CA": "Canada",
	"GB": "United Kingdom",
	"NL": "Netherlands",
	"JP": "Japan",
	"SG": "Singapore",
	"RU": "Russia",
	"FI": "Finland",
	"CH": "Switzerland",
	"CN": "China",
	"KR": "South Korea",
	"AU": "Australia",
	"HK": "Hong Kong",
	"UA": "Ukraine",
	"IT": "Italy",
	"SE": "Sweden",
	"BR": "Brazil",
	"ES": "Spain",
	"VN": "Vietnam",
	"IN": "India",
	"TW": "Taiwan",
	"PL": "Poland",
	"IE": "Ireland",
	"ZA": "South Africa",
	"NZ": "New Zealand",
	"CZ": "Czechia",
	"LT": "Lithuania",
	"ID": "Indonesia",
	"NO": "Norway",
	"BE": "Belgium",
	"IR": "Iran",
	"AT": "Austria",
	"EE": "Estonia",
	"TR": "Turkey",
	"MY": "Myanmar",
	"HU": "Hungary",
	"MX": "Mexico",
	"TH": "Thailand",
	"SI": "Slovenia",
	"IL": "Israel",
	"RO": "Romania",
	"NG": "Nigeria",
	"PT": "Portugal",
	"SK": "Slovakia",
	"RS": "Serbia",
	"BG": "Bulgaria",
	"LV": "Latvia",
}

// Name translates a country code into its display name. Unknown codes
// pass through unchanged.
func Name(code string) string {
	if name, exists := names[code]; exists {
		return name
	}
	return code
}
