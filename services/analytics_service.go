package services

import (
	"context"
	"fmt"
	"time"

	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
)

const (
	salesWindowDays = 30
	revenueMonths   = 12
	analyticsTopN   = 5
)

// Revenue queries skip orders whose money was not kept.
const keptRevenue = `status NOT IN ('cancelled', 'refunded')`

// Day and month buckets are UTC regardless of the session time zone.
var (
	salesByDaySQL = `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
		       COUNT(*)::int AS sales,
		       COALESCE(SUM(total), 0)::float8 AS revenue
		FROM orders
		WHERE created_at >= $1 AND ` + keptRevenue + `
		GROUP BY day`

	topProductsSQL = `
		SELECT MAX(oi.name) AS name,
		       SUM(oi.quantity)::int AS sales,
		       SUM(oi.price * oi.quantity)::float8 AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.` + keptRevenue + `
		GROUP BY oi.product_id
		ORDER BY sales DESC, revenue DESC
		LIMIT $1`

	categoryDistributionSQL = `
		SELECT p.category,
		       COUNT(DISTINCT p.id)::int AS count,
		       COALESCE(SUM(oi.price * oi.quantity), 0)::float8 AS revenue
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.id
		     AND EXISTS (SELECT 1 FROM orders o WHERE o.id = oi.order_id AND o.` + keptRevenue + `)
		WHERE p.is_active AND p.deleted_at IS NULL
		GROUP BY p.category
		ORDER BY count DESC, p.category`

	statusDistributionSQL = `
		SELECT status, COUNT(*)::int AS count
		FROM orders
		GROUP BY status
		ORDER BY status`

	revenueByMonthSQL = `
		SELECT to_char(date_trunc('month', created_at AT TIME ZONE 'UTC'), 'YYYY-MM') AS month,
		       COALESCE(SUM(total), 0)::float8 AS revenue
		FROM orders
		WHERE created_at >= $1 AND ` + keptRevenue + `
		GROUP BY month`

	productRatingsSQL = `
		SELECT name, rating_average::float8, rating_count::int
		FROM products
		WHERE deleted_at IS NULL AND rating_count > 0
		ORDER BY rating_average DESC, rating_count DESC
		LIMIT $1`
)

// BuildAnalytics runs the admin analytics aggregates against the raw pool.
// Day and month series are dense: periods without orders appear with zeroes.
func BuildAnalytics(ctx context.Context, pool config.PgxPool, now time.Time) (*models.Analytics, error) {
	now = now.UTC()
	out := &models.Analytics{}

	var err error
	if out.SalesOverTime, err = salesOverTime(ctx, pool, now); err != nil {
		return nil, err
	}
	if out.TopProducts, err = topProducts(ctx, pool); err != nil {
		return nil, err
	}
	if out.CategoryDistribution, err = categoryDistribution(ctx, pool); err != nil {
		return nil, err
	}
	if out.OrderStatusDistribution, err = statusDistribution(ctx, pool); err != nil {
		return nil, err
	}
	if out.RevenueByMonth, err = revenueByMonth(ctx, pool, now); err != nil {
		return nil, err
	}
	if out.ProductRatings, err = productRatings(ctx, pool); err != nil {
		return nil, err
	}
	return out, nil
}

func salesOverTime(ctx context.Context, pool config.PgxPool, now time.Time) ([]models.SalesPoint, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(salesWindowDays - 1))

	rows, err := pool.Query(ctx, salesByDaySQL, start)
	if err != nil {
		return nil, fmt.Errorf("sales over time: %w", err)
	}
	defer rows.Close()

	byDay := map[string]models.SalesPoint{}
	for rows.Next() {
		var p models.SalesPoint
		if err := rows.Scan(&p.Date, &p.Sales, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan sales: %w", err)
		}
		byDay[p.Date] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales over time: %w", err)
	}

	series := make([]models.SalesPoint, 0, salesWindowDays)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		p, ok := byDay[key]
		if !ok {
			p = models.SalesPoint{Date: key}
		}
		series = append(series, p)
	}
	return series, nil
}

func topProducts(ctx context.Context, pool config.PgxPool) ([]models.TopProduct, error) {
	rows, err := pool.Query(ctx, topProductsSQL, analyticsTopN)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	out := make([]models.TopProduct, 0, analyticsTopN)
	for rows.Next() {
		var p models.TopProduct
		if err := rows.Scan(&p.Name, &p.Sales, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func categoryDistribution(ctx context.Context, pool config.PgxPool) ([]models.CategoryShare, error) {
	rows, err := pool.Query(ctx, categoryDistributionSQL)
	if err != nil {
		return nil, fmt.Errorf("category distribution: %w", err)
	}
	defer rows.Close()

	out := make([]models.CategoryShare, 0)
	for rows.Next() {
		var s models.CategoryShare
		if err := rows.Scan(&s.Category, &s.Count, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func statusDistribution(ctx context.Context, pool config.PgxPool) ([]models.StatusCount, error) {
	rows, err := pool.Query(ctx, statusDistributionSQL)
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	defer rows.Close()

	out := make([]models.StatusCount, 0)
	for rows.Next() {
		var s models.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func revenueByMonth(ctx context.Context, pool config.PgxPool, now time.Time) ([]models.MonthlyRevenue, error) {
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := thisMonth.AddDate(0, -(revenueMonths - 1), 0)

	rows, err := pool.Query(ctx, revenueByMonthSQL, start)
	if err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}
	defer rows.Close()

	byMonth := map[string]float64{}
	for rows.Next() {
		var month string
		var revenue float64
		if err := rows.Scan(&month, &revenue); err != nil {
			return nil, fmt.Errorf("scan month: %w", err)
		}
		byMonth[month] = revenue
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}

	series := make([]models.MonthlyRevenue, 0, revenueMonths)
	for m := start; !m.After(thisMonth); m = m.AddDate(0, 1, 0) {
		series = append(series, models.MonthlyRevenue{
			Month:   m.Format("Jan"),
			Revenue: byMonth[m.Format("2006-01")],
		})
	}
	return series, nil
}

func productRatings(ctx context.Context, pool config.PgxPool) ([]models.ProductRating, error) {
	rows, err := pool.Query(ctx, productRatingsSQL, analyticsTopN)
	if err != nil {
		return nil, fmt.Errorf("product ratings: %w", err)
	}
	defer rows.Close()

	out := make([]models.ProductRating, 0, analyticsTopN)
	for rows.Next() {
		var r models.ProductRating
		if err := rows.Scan(&r.Name, &r.Rating, &r.Reviews); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
