package domain

import "math"

// Savings summarises money not spent on cigarettes.
type Savings struct {
	Daily    float64
	Total    int
	Monthly  int
	Yearly   int
	Currency string
}

// AffordableItem is a reward the user is saving towards.
type AffordableItem struct {
	Name      string
	Cost      int
	CanAfford bool
	Progress  float64 // 0.0 to 1.0
}

// DefaultRewards is the list of rewards shown on the savings view.
var DefaultRewards = []struct {
	Name string
	Cost int
}{
	{"Movie tickets", 500},
	{"Nice dinner", 1500},
	{"New headphones", 3000},
	{"Weekend trip", 10000},
}

// CalculateSavings computes savings for the elapsed days.
func CalculateSavings(h Habits, days int) Savings {
	daily := 0.0
	if h.CigarettesPerPack > 0 {
		daily = float64(h.CigarettesPerDay) / float64(h.CigarettesPerPack) * h.CostPerPack
	}
	if days < 0 {
		days = 0
	}
	return Savings{
		Daily:    daily,
		Total:    int(math.Round(daily * float64(days))),
		Monthly:  int(math.Round(daily * 30)),
		Yearly:   int(math.Round(daily * 365)),
		Currency: h.Currency,
	}
}

// Rewards returns how close the savings are to each default reward.
func (s Savings) Rewards() []AffordableItem {
	items := make([]AffordableItem, 0, len(DefaultRewards))
	for _, r := range DefaultRewards {
		p := 1.0
		if r.Cost > 0 {
			p = math.Min(1, float64(s.Total)/float64(r.Cost))
		}
		items = append(items, AffordableItem{
			Name:      r.Name,
			Cost:      r.Cost,
			CanAfford: s.Total >= r.Cost,
			Progress:  p,
		})
	}
	return items
}
