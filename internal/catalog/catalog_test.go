package catalog

import "testing"

func TestCategoriesStableOrder(t *testing.T) {
	names := Categories()
	if len(names) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(names))
	}
	if names[0] != "General News" {
		t.Fatalf("expected General News first, got %q", names[0])
	}
	if names[1] != "Technology" {
		t.Fatalf("expected Technology second, got %q", names[1])
	}
}

func TestDomainsUnknownCategory(t *testing.T) {
	if _, ok := Domains("Sports"); ok {
		t.Fatalf("expected Sports to be unknown")
	}
}

func TestResolvePreservesOrderAndDeduplicates(t *testing.T) {
	// "hindustantimes.com" appears in General News, and
	// "hindustantimes.com/entertainment" in Entertainment; the overlap case
	// is General News + Entertainment sharing no exact duplicates, so force
	// one by selecting the same category twice.
	domains := Resolve([]string{"General News", "General News"})
	general, _ := Domains("General News")
	if len(domains) != len(general) {
		t.Fatalf("expected %d domains after dedup, got %d", len(general), len(domains))
	}
	for i, d := range general {
		if domains[i] != d {
			t.Fatalf("order not preserved at %d: got %q want %q", i, domains[i], d)
		}
	}
}

func TestResolveUnionAcrossCategories(t *testing.T) {
	domains := Resolve([]string{"Technology", "Science"})
	tech, _ := Domains("Technology")
	sci, _ := Domains("Science")
	if len(domains) != len(tech)+len(sci) {
		t.Fatalf("expected %d domains, got %d", len(tech)+len(sci), len(domains))
	}
	if domains[0] != "techcrunch.com" {
		t.Fatalf("expected techcrunch.com first, got %q", domains[0])
	}
	if domains[len(tech)] != "nature.com" {
		t.Fatalf("expected nature.com to lead the Science block, got %q", domains[len(tech)])
	}
	seen := make(map[string]bool)
	for _, d := range domains {
		if seen[d] {
			t.Fatalf("duplicate domain %q", d)
		}
		seen[d] = true
	}
}

func TestResolveSkipsUnknownCategories(t *testing.T) {
	domains := Resolve([]string{"Nope", "Science"})
	sci, _ := Domains("Science")
	if len(domains) != len(sci) {
		t.Fatalf("expected %d domains, got %d", len(sci), len(domains))
	}
}
