// Package catalog holds the static news-source catalog: named categories
// mapping to the domains searched in news mode. The table is fixed at
// startup and never mutated.
package catalog

type Category struct {
	Name    string
	Domains []string
}

var categories = []Category{
	{
		Name: "General News",
		Domains: []string{
			"reuters.com", "apnews.com", "bbc.com", "nytimes.com",
			"theguardian.com", "wsj.com", "npr.org", "aljazeera.com",
			"washingtonpost.com", "dw.com", "cnn.com",
			"indianexpress.com", "hindustantimes.com", "thehindu.com",
			"ndtv.com", "timesofindia.indiatimes.com", "aajtak.intoday.in",
		},
	},
	{
		Name: "Technology",
		Domains: []string{
			"techcrunch.com", "theverge.com", "wired.com", "cnet.com",
			"arstechnica.com", "engadget.com", "gizmodo.com",
			"mashable.com", "mit.edu/technologyreview", "pcworld.com",
			"gadgets360.com", "tech2.firstpost.com", "beebom.com",
			"91mobiles.com", "smartprix.com", "varindia.com",
		},
	},
	{
		Name: "Artificial Intelligence",
		Domains: []string{
			"openai.com", "deepmind.com", "venturebeat.com",
			"analyticsindiamag.com", "aibusiness.com",
			"syncedreview.com", "therundown.ai",
			"thebatch.ai", "analyticsvidhya.com",
		},
	},
	{
		Name: "Business/Finance",
		Domains: []string{
			"bloomberg.com", "fortune.com", "cnbc.com",
			"financialpost.com", "economist.com",
			"investopedia.com", "forbes.com",
			"economictimes.indiatimes.com", "business-standard.com",
			"moneycontrol.com",
		},
	},
	{
		Name: "Science",
		Domains: []string{
			"nature.com", "sciencemag.org",
			"sciencedaily.com",
			"nationalgeographic.com",
			"space.com",
			"livescience.com",
			"scientificamerican.com",
		},
	},
	{
		Name: "Entertainment",
		Domains: []string{
			"variety.com",
			"hollywoodreporter.com",
			"deadline.com",
			"ew.com",
			"billboard.com",
			"rollingstone.com",
			"vulture.com",
			"koimoi.com", "bollywoodhungama.com", "hindustantimes.com/entertainment",
		},
	},
}

// Categories returns category names in catalog order.
func Categories() []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

// Domains returns the domain list for a category.
func Domains(name string) ([]string, bool) {
	for _, c := range categories {
		if c.Name == name {
			out := make([]string, len(c.Domains))
			copy(out, c.Domains)
			return out, true
		}
	}
	return nil, false
}

// Resolve returns the union of the domain sets of the selected categories,
// de-duplicated and keeping first-seen order. Unknown category names are
// ignored.
func Resolve(names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		domains, ok := Domains(name)
		if !ok {
			continue
		}
		for _, d := range domains {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	return out
}
