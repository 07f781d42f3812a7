package domain

// Report is the analytics snapshot served to the back office. It is
// recomputed on every request and never persisted.
type Report struct {
	KeyMetrics         KeyMetrics         `json:"keyMetrics"`
	FinancialData      FinancialData      `json:"financialData"`
	RequestAnalytics   RequestAnalytics   `json:"requestAnalytics"`
	CustomerData       CustomerData       `json:"customerData"`
	WebsiteTraffic     WebsiteTraffic     `json:"websiteTraffic"`
	PerformanceMetrics PerformanceMetrics `json:"performanceMetrics"`
	MonthlyData        []MonthlyBucket    `json:"monthlyData"`
	Insights           Insights           `json:"insights"`
}

type KeyMetrics struct {
	MonthlyRevenue       int     `json:"monthlyRevenue"`
	RevenueGrowth        int     `json:"revenueGrowth"`
	MonthlyProfit        int     `json:"monthlyProfit"`
	ProfitMargin         int     `json:"profitMargin"`
	ConversionRate       int     `json:"conversionRate"`
	AvgCompletionTime    float64 `json:"avgCompletionTime"`
	CustomerSatisfaction float64 `json:"customerSatisfaction"`
	TotalCustomers       int     `json:"totalCustomers"`
}

type FinancialData struct {
	ThisMonthRevenue   int `json:"thisMonthRevenue"`
	LastMonthRevenue   int `json:"lastMonthRevenue"`
	ThisMonthAdSpend   int `json:"thisMonthAdSpend"`
	ThisMonthProfit    int `json:"thisMonthProfit"`
	RevenuePerCustomer int `json:"revenuePerCustomer"`
	DailyAdSpend       int `json:"dailyAdSpend"`
	ProfitMargin       int `json:"profitMargin"`
	TotalYearRevenue   int `json:"totalYearRevenue"`
}

type RequestAnalytics struct {
	TotalRequests    int `json:"totalRequests"`
	PendingRequests  int `json:"pendingRequests"`
	InProgress       int `json:"inProgressRequests"`
	Completed        int `json:"completedRequests"`
	Cancelled        int `json:"cancelledRequests"`
	CompletionRate   int `json:"completionRate"`
	UpdateRequests   int `json:"updateRequests"`
	BuildRequests    int `json:"buildRequests"`
	UpdatePercentage int `json:"updatePercentage"`
	BuildPercentage  int `json:"buildPercentage"`
}

type CustomerData struct {
	TotalCustomers        int     `json:"totalCustomers"`
	FirstTimeCustomers    int     `json:"firstTimeCustomers"`
	RepeatCustomers       int     `json:"repeatCustomers"`
	VIPCustomers          int     `json:"vipCustomers"`
	ThisMonthCustomers    int     `json:"thisMonthCustomers"`
	CustomerLifetimeValue float64 `json:"customerLifetimeValue"`
}

// WebsiteTraffic is injected configuration; the back end has no traffic source.
type WebsiteTraffic struct {
	TotalVisitors      int       `json:"totalVisitors"`
	UniqueVisitors     int       `json:"uniqueVisitors"`
	PageViews          int       `json:"pageViews"`
	BounceRate         float64   `json:"bounceRate"`
	AvgSessionDuration float64   `json:"avgSessionDuration"`
	TopPages           []TopPage `json:"topPages"`
}

type TopPage struct {
	Page       string  `json:"page"`
	Views      int     `json:"views"`
	Conversion float64 `json:"conversionRate"`
}

// PerformanceMetrics are injected operational constants.
type PerformanceMetrics struct {
	ResponseTime          float64 `json:"responseTime"`
	FirstDraftTime        float64 `json:"firstDraftTime"`
	RevisionTime          float64 `json:"revisionTime"`
	FinalDeliveryTime     float64 `json:"finalDeliveryTime"`
	RevisionRate          float64 `json:"revisionRate"`
	CustomerRetentionRate float64 `json:"customerRetentionRate"`
	ReferralRate          float64 `json:"referralRate"`
}

type MonthlyBucket struct {
	Month          string `json:"month"`
	Requests       int    `json:"requests"`
	Leads          int    `json:"leads"`
	Revenue        int    `json:"revenue"`
	AdSpend        int    `json:"adSpend"`
	Profit         int    `json:"profit"`
	ConversionRate int    `json:"conversionRate"`
}

type Insights struct {
	Positive     []string `json:"positive"`
	Improvements []string `json:"improvements"`
}

// DashboardStats is the compact summary on the admin landing page.
type DashboardStats struct {
	TotalLeads         int64 `json:"totalLeads"`
	TotalRequests      int64 `json:"totalRequests"`
	PendingRequests    int64 `json:"pendingRequests"`
	CompletedRequests  int64 `json:"completedRequests"`
	InProgressRequests int64 `json:"inProgressRequests"`
	ThisMonthRequests  int64 `json:"thisMonthRequests"`
	CompletionRate     int   `json:"completionRate"`
	TotalRevenue       int64 `json:"totalRevenue"`
	ThisMonthCustomers int64 `json:"thisMonthCustomers"`
}
