package analytics

import (
	"sort"
	"strings"

	"github.com/Goblincake/delicatessenV8/internal/menu"
	"github.com/Goblincake/delicatessenV8/internal/numeric"
	"github.com/Goblincake/delicatessenV8/internal/orders"
)

const (
	epochDate   = "1970-01-01"
	defaultHour = "00"
	topN        = 10
	// monthly rent amortizes over a flat 30-day month
	daysPerMonth = 30
)

// Aggregate scans the order log and produces the financial report. Only
// completed orders (including the legacy finished status) participate.
// Single synchronous pass; pure over its inputs.
func Aggregate(history []orders.Order, catalog menu.Catalog, overrides map[string]any, cfg Config) Report {
	dailySales := newTally[float64]()
	dailyOrders := newTally[int]()
	dailyCosts := newTally[float64]()
	dailyProfits := newTally[float64]()
	dailyCOGS := newTally[float64]()
	hourlyOrders := newTally[int]()
	popularItems := newTally[int]()
	itemCosts := newTally[float64]()
	itemProfits := newTally[float64]()

	dailyProducts := map[string]*tally[int]{}
	dailyCouriers := map[string]*tally[int]{}

	completedCount := 0
	totalRevenue := 0.0

	for _, order := range history {
		if !order.Completed() {
			continue
		}
		completedCount++
		totalRevenue += order.Total

		date, hour := splitTimestamp(order.Timestamp)

		// iterate lines in name order: map iteration would reshuffle
		// ranking ties between runs
		names := make([]string, 0, len(order.Items))
		for name := range order.Items {
			names = append(names, name)
		}
		sort.Strings(names)

		// per-line denominator for the proportional revenue split:
		// the order total is attributed to items by quantity share,
		// not by each line's own price
		denom := 0
		for _, line := range order.Items {
			denom += line.Quantity
		}

		orderCOGS := 0.0
		for _, name := range names {
			qty := order.Items[name].Quantity
			unitCost := resolveUnitCost(name, catalog, overrides)
			orderCOGS += unitCost * float64(qty)

			popularItems.add(name, qty)
			perDay, ok := dailyProducts[date]
			if !ok {
				perDay = newTally[int]()
				dailyProducts[date] = perDay
			}
			perDay.add(name, qty)

			itemCosts.add(name, unitCost*float64(qty))
			revenueShare := order.Total / float64(max(denom, 1)) * float64(qty)
			itemProfits.add(name, revenueShare-unitCost*float64(qty))
		}

		dailySales.add(date, order.Total)
		dailyOrders.add(date, 1)
		dailyCosts.add(date, orderCOGS+cfg.CourierCostPerOrder)
		dailyCOGS.add(date, orderCOGS)
		dailyProfits.add(date, order.Total-(orderCOGS+cfg.CourierCostPerOrder))
		hourlyOrders.add(hour, 1)

		if order.Driver != "" {
			perDay, ok := dailyCouriers[date]
			if !ok {
				perDay = newTally[int]()
				dailyCouriers[date] = perDay
			}
			perDay.add(order.Driver, 1)
		}
	}

	// fixed daily costs are charged once per observed day, never per order
	rentPerDay := cfg.MonthlyRent / daysPerMonth
	laborPerDay := cfg.HourlyWage * cfg.DailyHours
	for _, date := range dailySales.keys {
		dailyCosts.set(date, dailyCosts.get(date)+rentPerDay+laborPerDay)
		dailyProfits.set(date, dailySales.get(date)-dailyCosts.get(date))
	}

	dates := append([]string(nil), dailySales.keys...)
	sort.Strings(dates)

	report := Report{
		DailySales:      make([]DatePoint, 0, len(dates)),
		DailyOrders:     make([]DateCount, 0, len(dates)),
		DailyCosts:      make([]DatePoint, 0, len(dates)),
		DailyProfits:    make([]DatePoint, 0, len(dates)),
		DailyBreakdowns: make([]DayBreakdown, 0, len(dates)),
	}

	for _, date := range dates {
		report.DailySales = append(report.DailySales, DatePoint{date, dailySales.get(date)})
		report.DailyOrders = append(report.DailyOrders, DateCount{date, dailyOrders.get(date)})
		report.DailyCosts = append(report.DailyCosts, DatePoint{date, dailyCosts.get(date)})
		report.DailyProfits = append(report.DailyProfits, DatePoint{date, dailyProfits.get(date)})

		bd := DayBreakdown{
			Date:        date,
			ProductCOGS: dailyCOGS.get(date),
			Revenue:     dailySales.get(date),
			Rent:        rentPerDay,
			Labor:       laborPerDay,
			Courier:     cfg.CourierCostPerOrder * float64(dailyOrders.get(date)),
			TotalCost:   dailyCosts.get(date),
			Profit:      dailyProfits.get(date),
			Orders:      dailyOrders.get(date),
			Products:    rankedCounts(dailyProducts[date], 0),
			Couriers:    rankedCouriers(dailyCouriers[date]),
		}
		report.DailyBreakdowns = append(report.DailyBreakdowns, bd)
	}

	hours := append([]string(nil), hourlyOrders.keys...)
	sort.Strings(hours)
	report.HourlyOrders = make([]HourCount, 0, len(hours))
	for _, h := range hours {
		report.HourlyOrders = append(report.HourlyOrders, HourCount{h, hourlyOrders.get(h)})
	}

	report.PopularItems = rankedCounts(popularItems, topN)
	report.ItemCosts = rankedAmounts(itemCosts, topN)
	report.ItemMargins = rankedMargins(popularItems, itemProfits, itemCosts)

	totalCosts := 0.0
	for _, date := range dailyCosts.keys {
		totalCosts += dailyCosts.get(date)
	}
	totalProfits := 0.0
	for _, date := range dailyProfits.keys {
		totalProfits += dailyProfits.get(date)
	}

	report.TotalOrders = completedCount
	report.TotalRevenue = totalRevenue
	report.TotalCosts = totalCosts
	report.TotalProfits = totalProfits
	report.AvgOrderValue = numeric.Round2(totalRevenue / float64(max(completedCount, 1)))
	report.AvgProfitPerOrder = numeric.Round2(totalProfits / float64(max(completedCount, 1)))
	report.ProfitMargin = numeric.Round1(totalProfits / max(totalRevenue, 1) * 100)

	return report
}

// resolveUnitCost picks the unit cost for one item: override entry first
// (its mere presence wins, even when unparsable), then the catalog.
func resolveUnitCost(name string, catalog menu.Catalog, overrides map[string]any) float64 {
	if v, ok := overrides[name]; ok {
		return numeric.Float(v, 0)
	}
	if item, ok := catalog.Find(name); ok {
		return item.UnitCost()
	}
	return 0
}

// splitTimestamp pulls the calendar date and the hour bucket out of a
// stored "YYYY-MM-DD HH:MM:SS" timestamp, defaulting to the epoch date
// and hour 00 when the timestamp is missing.
func splitTimestamp(ts string) (date, hour string) {
	if ts == "" {
		return epochDate, defaultHour
	}
	date, hour = ts, defaultHour
	if i := strings.IndexByte(ts, ' '); i >= 0 {
		date = ts[:i]
		rest := ts[i+1:]
		if j := strings.IndexByte(rest, ':'); j >= 0 {
			rest = rest[:j]
		}
		if rest != "" {
			hour = rest
		}
	}
	return date, hour
}

// rankedCounts sorts descending by count, stable on first appearance.
// limit 0 means no truncation.
func rankedCounts(t *tally[int], limit int) []ItemCount {
	if t == nil {
		return []ItemCount{}
	}
	out := make([]ItemCount, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, ItemCount{k, t.get(k)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func rankedCouriers(t *tally[int]) []CourierCount {
	if t == nil {
		return []CourierCount{}
	}
	out := make([]CourierCount, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, CourierCount{k, t.get(k)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func rankedAmounts(t *tally[float64], limit int) []ItemAmount {
	out := make([]ItemAmount, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, ItemAmount{k, t.get(k)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// rankedMargins computes per-item profit margins. Revenue reconstructs as
// profit + cost; items with no positive revenue get margin 0 rather than
// a division error.
func rankedMargins(popular *tally[int], profits, costs *tally[float64]) []ItemMargin {
	out := make([]ItemMargin, 0, len(popular.keys))
	for _, name := range popular.keys {
		cost := costs.get(name)
		revenue := profits.get(name) + cost
		margin := 0.0
		if revenue > 0 {
			margin = numeric.Round1((revenue - cost) / revenue * 100)
		}
		out = append(out, ItemMargin{name, margin})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Margin > out[j].Margin })
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
