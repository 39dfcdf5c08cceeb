package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by Manager.Sort. Anything else is a no-op.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

// Manager composes search, price filtering and sorting over an immutable
// source catalog. The three criteria are independent: changing one leaves
// the others applied, and the view is recomputed in full as
// sort(filter(search(catalog))) on every change.
type Manager struct {
	source   []Item
	query    string
	minPrice float64
	maxPrice float64
	priced   bool
	sortKey  string
	view     []Item

	collator *collate.Collator
}

func NewManager(meals []Item) *Manager {
	m := &Manager{
		source:   meals,
		collator: collate.New(language.English),
	}
	m.recompute()

	return m
}

// Search sets the text criterion: case-insensitive substring match on name
// or description. An empty query clears it.
func (m *Manager) Search(query string) {
	m.query = strings.TrimSpace(query)
	m.recompute()
}

// FilterByPrice sets the price criterion from a range spec: "" clears it,
// "min-max" selects prices within the inclusive range, "min+" selects
// prices at or above min. Malformed specs clear the criterion.
func (m *Manager) FilterByPrice(rangeSpec string) {
	m.priced = false

	if spec := strings.TrimSpace(rangeSpec); spec != "" {
		if min, max, ok := parsePriceRange(spec); ok {
			m.minPrice = min
			m.maxPrice = max
			m.priced = true
		}
	}

	m.recompute()
}

// Sort sets the ordering criterion. Unrecognized keys leave the view
// unchanged.
func (m *Manager) Sort(key string) {
	switch key {
	case SortPriceLow, SortPriceHigh, SortName:
		m.sortKey = key
	default:
		return
	}

	m.recompute()
}

// FilteredMeals returns the current view.
func (m *Manager) FilteredMeals() []Item {
	return m.view
}

func parsePriceRange(spec string) (min, max float64, ok bool) {
	if open, found := strings.CutSuffix(spec, "+"); found {
		min, err := strconv.ParseFloat(open, 64)
		if err != nil {
			return 0, 0, false
		}
		return min, math.Inf(1), true
	}

	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	min, errMin := strconv.ParseFloat(parts[0], 64)
	max, errMax := strconv.ParseFloat(parts[1], 64)
	if errMin != nil || errMax != nil {
		return 0, 0, false
	}

	return min, max, true
}

func (m *Manager) recompute() {
	view := make([]Item, 0, len(m.source))

	lowerQuery := strings.ToLower(m.query)
	for _, meal := range m.source {
		if lowerQuery != "" &&
			!strings.Contains(strings.ToLower(meal.Name), lowerQuery) &&
			!strings.Contains(strings.ToLower(meal.Description), lowerQuery) {
			continue
		}
		if m.priced && (meal.Price < m.minPrice || meal.Price > m.maxPrice) {
			continue
		}
		view = append(view, meal)
	}

	switch m.sortKey {
	case SortPriceLow:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Price < view[j].Price })
	case SortPriceHigh:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Price > view[j].Price })
	case SortName:
		sort.SliceStable(view, func(i, j int) bool {
			return m.collator.CompareString(view[i].Name, view[j].Name) < 0
		})
	}

	m.view = view
}
