package analytics

// Config holds the operator-supplied cost settings. Every field defaults
// to 0 when missing or unparsable; analytics never fails on bad input.
type Config struct {
	MonthlyRent         float64
	CourierCostPerOrder float64
	HourlyWage          float64
	DailyHours          float64
}

type DatePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type HourCount struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

type ItemCount struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ItemAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type ItemMargin struct {
	Name   string  `json:"name"`
	Margin float64 `json:"margin"`
}

type CourierCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayBreakdown is the per-day detail view: revenue against every cost
// bucket, plus ranked product and courier lists (full lists, not top-N).
type DayBreakdown struct {
	Date        string         `json:"date"`
	ProductCOGS float64        `json:"product_cogs"`
	Revenue     float64        `json:"revenue"`
	Rent        float64        `json:"rent"`
	Labor       float64        `json:"labor"`
	Courier     float64        `json:"courier"`
	TotalCost   float64        `json:"total_cost"`
	Profit      float64        `json:"profit"`
	Orders      int            `json:"orders"`
	Products    []ItemCount    `json:"products"`
	Couriers    []CourierCount `json:"couriers"`
}

type Report struct {
	DailySales      []DatePoint    `json:"daily_sales"`
	DailyOrders     []DateCount    `json:"daily_orders"`
	DailyCosts      []DatePoint    `json:"daily_costs"`
	DailyProfits    []DatePoint    `json:"daily_profits"`
	DailyBreakdowns []DayBreakdown `json:"daily_breakdowns"`
	HourlyOrders    []HourCount    `json:"hourly_orders"`
	PopularItems    []ItemCount    `json:"popular_items"`
	ItemCosts       []ItemAmount   `json:"item_costs"`
	ItemMargins     []ItemMargin   `json:"item_margins"`

	TotalOrders       int     `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalCosts        float64 `json:"total_costs"`
	TotalProfits      float64 `json:"total_profits"`
	AvgOrderValue     float64 `json:"avg_order_value"`
	AvgProfitPerOrder float64 `json:"avg_profit_per_order"`
	ProfitMargin      float64 `json:"profit_margin"`
}
