package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMeals() []Item {
	return []Item{
		{Name: "Dal Tadka", Description: "Yellow lentils tempered with ghee", Price: 50},
		{Name: "Jeera Rice", Description: "Basmati rice with cumin", Price: 30},
		{Name: "Paneer Butter Masala", Description: "Cottage cheese in tomato gravy", Price: 120},
		{Name: "Aloo Paratha", Description: "Stuffed flatbread with curd", Price: 40},
	}
}

func prices(items []Item) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Price
	}
	return out
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestSearchResetsToFullCatalog(t *testing.T) {
	m := NewManager(testMeals())

	m.Search("paneer")
	require.Len(t, m.FilteredMeals(), 1)

	m.Search("")
	assert.Equal(t, testMeals(), m.FilteredMeals(), "empty search restores original order")
}

func TestSearchMatchesNameOrDescription(t *testing.T) {
	m := NewManager(testMeals())

	m.Search("RICE")
	assert.Equal(t, []string{"Jeera Rice"}, names(m.FilteredMeals()))

	m.Search("curd")
	assert.Equal(t, []string{"Aloo Paratha"}, names(m.FilteredMeals()))
}

func TestFilterByPrice(t *testing.T) {
	catalog := []Item{{Name: "a", Price: 10}, {Name: "b", Price: 25}, {Name: "c", Price: 50}}

	m := NewManager(catalog)

	m.FilterByPrice("20+")
	assert.Equal(t, []float64{25, 50}, prices(m.FilteredMeals()))

	m.FilterByPrice("10-25")
	assert.Equal(t, []float64{10, 25}, prices(m.FilteredMeals()), "range bounds are inclusive")

	m.FilterByPrice("")
	assert.Equal(t, catalog, m.FilteredMeals())
}

func TestSort(t *testing.T) {
	catalog := []Item{{Name: "b", Price: 30}, {Name: "c", Price: 10}, {Name: "a", Price: 20}}

	m := NewManager(catalog)

	m.Sort(SortPriceLow)
	assert.Equal(t, []float64{10, 20, 30}, prices(m.FilteredMeals()))

	m.Sort(SortPriceHigh)
	assert.Equal(t, []float64{30, 20, 10}, prices(m.FilteredMeals()))

	m.Sort(SortName)
	assert.Equal(t, []string{"a", "b", "c"}, names(m.FilteredMeals()))
}

func TestSortUnknownKeyIsNoop(t *testing.T) {
	m := NewManager(testMeals())

	m.Sort(SortPriceLow)
	before := m.FilteredMeals()

	m.Sort("bogus")
	assert.Equal(t, before, m.FilteredMeals())
}

func TestCriteriaCompose(t *testing.T) {
	m := NewManager(testMeals())

	// search and price filter apply conjunctively, sort orders the result
	m.Search("a")
	m.FilterByPrice("40-120")
	m.Sort(SortPriceLow)

	assert.Equal(t, []string{"Aloo Paratha", "Dal Tadka", "Paneer Butter Masala"}, names(m.FilteredMeals()))

	// clearing the price criterion keeps search and sort applied
	m.FilterByPrice("")
	assert.Equal(t, []string{"Jeera Rice", "Aloo Paratha", "Dal Tadka", "Paneer Butter Masala"}, names(m.FilteredMeals()))
}

func TestMatchSearchesPlansAndMeals(t *testing.T) {
	feed := &Feed{
		SubscriptionPlans: []Plan{{Name: "Weekly Plan", PriceText: "₹499/week"}},
		InstantMeals:      testMeals(),
	}

	hits := feed.Match("weekly")
	require.Len(t, hits, 1)
	assert.Equal(t, "plan", hits[0].Kind)

	hits = feed.Match("cumin")
	require.Len(t, hits, 1, "matches meal descriptions too")
	assert.Equal(t, "Jeera Rice", hits[0].Name)
}
