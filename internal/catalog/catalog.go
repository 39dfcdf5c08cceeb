package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Item is a single purchasable meal from the catalog feed.
type Item struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// Plan is a recurring subscription offering.
type Plan struct {
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	PriceText string   `json:"priceText"`
	Features  []string `json:"features"`
	Featured  bool     `json:"featured"`
}

// Feed is the static catalog document served to the meal plans page.
type Feed struct {
	SubscriptionPlans []Plan `json:"subscriptionPlans"`
	InstantMeals      []Item `json:"instantMeals"`
}

// Load reads the catalog feed from a JSON file.
func Load(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog feed: %w", err)
	}

	var feed Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog feed: %w", err)
	}

	return &feed, nil
}

// IndexEntry is one hit of the cross-catalog search on the landing page.
type IndexEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
}

// Match searches plans and meals by case-insensitive substring on name or
// description.
func (f *Feed) Match(query string) []IndexEntry {
	lower := strings.ToLower(query)
	matches := []IndexEntry{}

	for _, plan := range f.SubscriptionPlans {
		if strings.Contains(strings.ToLower(plan.Name), lower) {
			matches = append(matches, IndexEntry{Name: plan.Name, Description: plan.PriceText, Kind: "plan"})
		}
	}

	for _, meal := range f.InstantMeals {
		if strings.Contains(strings.ToLower(meal.Name), lower) ||
			strings.Contains(strings.ToLower(meal.Description), lower) {
			matches = append(matches, IndexEntry{Name: meal.Name, Description: meal.Description, Kind: "meal"})
		}
	}

	return matches
}
