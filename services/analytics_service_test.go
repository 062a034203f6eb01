package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnalytics(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`to_char\(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD'\)`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"day", "sales", "revenue"}).
			AddRow("2025-02-20", 1, 100.0).
			AddRow("2025-03-15", 2, 500.0))
	mock.ExpectQuery(`FROM order_items oi`).
		WithArgs(analyticsTopN).
		WillReturnRows(pgxmock.NewRows([]string{"name", "sales", "revenue"}).
			AddRow("Kumkumadi Serum", 7, 6293.0).
			AddRow("Neem Tulsi Soap", 4, 996.0))
	mock.ExpectQuery(`FROM products p`).
		WillReturnRows(pgxmock.NewRows([]string{"category", "count", "revenue"}).
			AddRow("serum", 3, 6293.0).
			AddRow("soap", 1, 0.0))
	mock.ExpectQuery(`SELECT status, COUNT`).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow("delivered", 4).
			AddRow("pending", 2))
	mock.ExpectQuery(`date_trunc\('month', created_at AT TIME ZONE 'UTC'\)`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"month", "revenue"}).
			AddRow("2024-12", 300.0).
			AddRow("2025-03", 1200.0))
	mock.ExpectQuery(`rating_count > 0`).
		WithArgs(analyticsTopN).
		WillReturnRows(pgxmock.NewRows([]string{"name", "rating_average", "rating_count"}).
			AddRow("Kumkumadi Serum", 4.8, 12))

	got, err := BuildAnalytics(context.Background(), mock, now)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, got.SalesOverTime, salesWindowDays)
	assert.Equal(t, "2025-02-14", got.SalesOverTime[0].Date)
	assert.Equal(t, "2025-03-15", got.SalesOverTime[salesWindowDays-1].Date)
	assert.Equal(t, 2, got.SalesOverTime[salesWindowDays-1].Sales)
	assert.Equal(t, 100.0, got.SalesOverTime[6].Revenue)
	assert.Zero(t, got.SalesOverTime[1].Sales)

	require.Len(t, got.TopProducts, 2)
	assert.Equal(t, "Kumkumadi Serum", got.TopProducts[0].Name)
	assert.Equal(t, 7, got.TopProducts[0].Sales)

	require.Len(t, got.CategoryDistribution, 2)
	assert.Equal(t, "serum", got.CategoryDistribution[0].Category)

	require.Len(t, got.OrderStatusDistribution, 2)
	assert.Equal(t, 4, got.OrderStatusDistribution[0].Count)

	require.Len(t, got.RevenueByMonth, revenueMonths)
	assert.Equal(t, "Apr", got.RevenueByMonth[0].Month)
	assert.Equal(t, "Dec", got.RevenueByMonth[8].Month)
	assert.Equal(t, 300.0, got.RevenueByMonth[8].Revenue)
	assert.Equal(t, "Mar", got.RevenueByMonth[11].Month)
	assert.Equal(t, 1200.0, got.RevenueByMonth[11].Revenue)
	assert.Zero(t, got.RevenueByMonth[10].Revenue)

	require.Len(t, got.ProductRatings, 1)
	assert.Equal(t, 12, got.ProductRatings[0].Reviews)
}

func TestBuildAnalyticsQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`to_char\(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD'\)`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	_, err = BuildAnalytics(context.Background(), mock, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sales over time")
}
