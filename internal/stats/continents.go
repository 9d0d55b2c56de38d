package stats

// Continents returns the built-in country→continent lookup table.
// It covers common travel destinations, not every country; names must match
// the free-text country field exactly (after whitespace trimming), so
// spelling variants fall into the Unknown bucket.
//
// The table is returned fresh per call so callers can extend their copy
// without affecting others.
func Continents() map[string]string {
	return map[string]string{
		"Argentina":      "South America",
		"Australia":      "Oceania",
		"Austria":        "Europe",
		"Belgium":        "Europe",
		"Brazil":         "South America",
		"Cambodia":       "Asia",
		"Canada":         "North America",
		"Chile":          "South America",
		"China":          "Asia",
		"Croatia":        "Europe",
		"Czech Republic": "Europe",
		"Denmark":        "Europe",
		"Egypt":          "Africa",
		"France":         "Europe",
		"Germany":        "Europe",
		"Greece":         "Europe",
		"Iceland":        "Europe",
		"India":          "Asia",
		"Indonesia":      "Asia",
		"Ireland":        "Europe",
		"Italy":          "Europe",
		"Japan":          "Asia",
		"Jordan":         "Asia",
		"Kenya":          "Africa",
		"Mexico":         "North America",
		"Morocco":        "Africa",
		"Netherlands":    "Europe",
		"New Zealand":    "Oceania",
		"Norway":         "Europe",
		"Peru":           "South America",
		"Portugal":       "Europe",
		"South Africa":   "Africa",
		"South Korea":    "Asia",
		"Spain":          "Europe",
		"Sweden":         "Europe",
		"Switzerland":    "Europe",
		"Thailand":       "Asia",
		"Turkey":         "Europe",
		"United Kingdom": "Europe",
		"United States":  "North America",
		"Vietnam":        "Asia",
	}
}
