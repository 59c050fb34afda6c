package dto

// AnalyticsChartQuery captures GET /reports/analytics/chart parameters.
type AnalyticsChartQuery struct {
	Format    string `form:"format"`
	ClassName string `form:"class"`
}
