package models

// DashboardStats is the admin landing page summary
type DashboardStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalProducts int64   `json:"totalProducts"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`  // excludes cancelled and refunded orders
	PendingOrders int64   `json:"pendingOrders"` // status = pending
	LowStock      int64   `json:"lowStockProducts"`
	RecentOrders  []Order `json:"recentOrders"` // 5 newest, user preloaded
}

type SalesPoint struct {
	Date    string  `json:"date"`  // YYYY-MM-DD
	Sales   int     `json:"sales"` // orders placed that day
	Revenue float64 `json:"revenue"`
}

type TopProduct struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"` // units sold
	Revenue float64 `json:"revenue"`
}

type CategoryShare struct {
	Category string  `json:"category"`
	Count    int     `json:"count"` // active products in the category
	Revenue  float64 `json:"revenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"` // Jan, Feb, ...
	Revenue float64 `json:"revenue"`
}

type ProductRating struct {
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
}

// Analytics is the admin analytics page payload
type Analytics struct {
	SalesOverTime           []SalesPoint     `json:"salesOverTime"`
	TopProducts             []TopProduct     `json:"topProducts"`
	CategoryDistribution    []CategoryShare  `json:"categoryDistribution"`
	OrderStatusDistribution []StatusCount    `json:"orderStatusDistribution"`
	RevenueByMonth          []MonthlyRevenue `json:"revenueByMonth"`
	ProductRatings          []ProductRating  `json:"productRatings"`
}
