package analytics

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/aniket045123/craftmyresume/internal/domain"
)

// Options are the business constants and injected figures the report uses.
type Options struct {
	RevenuePerRequest    int
	DailyAdSpend         int
	AvgCompletionTime    float64
	CustomerSatisfaction float64
	Traffic              domain.WebsiteTraffic
	Performance          domain.PerformanceMetrics
}

func DefaultOptions() Options {
	return Options{
		RevenuePerRequest:    499,
		DailyAdSpend:         500,
		AvgCompletionTime:    24,
		CustomerSatisfaction: 4.7,
		Traffic: domain.WebsiteTraffic{
			TotalVisitors:      2847,
			UniqueVisitors:     2156,
			PageViews:          8934,
			BounceRate:         34,
			AvgSessionDuration: 3.2,
			TopPages: []domain.TopPage{
				{Page: "/", Views: 3421, Conversion: 2.8},
				{Page: "/thankyou", Views: 1234, Conversion: 100},
				{Page: "/page2", Views: 987, Conversion: 1.2},
			},
		},
		Performance: domain.PerformanceMetrics{
			ResponseTime:          2.1,
			FirstDraftTime:        18,
			RevisionTime:          6,
			FinalDeliveryTime:     24,
			RevisionRate:          15,
			CustomerRetentionRate: 68,
			ReferralRate:          23,
		},
	}
}

// order is the kind-tagged view of either order table.
type order struct {
	kind      domain.RequestKind
	createdAt time.Time
	email     string
	status    domain.RequestStatus
}

// period is an inclusive [start, end] window; a zero end is unbounded.
type period struct {
	start, end time.Time
}

func (p period) contains(t time.Time) bool {
	if t.Before(p.start) {
		return false
	}
	return p.end.IsZero() || !t.After(p.end)
}

// ComputeReport builds the analytics snapshot from complete record sets.
// It reads its inputs only and never fails; empty inputs yield zeros.
// Calendar boundaries follow now's location.
func ComputeReport(leads []domain.Lead, updates []domain.ResumeUpdate, builds []domain.ResumeBuild, now time.Time, opts Options) *domain.Report {
	orders := normalize(updates, builds)

	loc := now.Location()
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	thisMonth := period{start: thisMonthStart}
	lastMonth := monthPeriod(thisMonthStart.AddDate(0, -1, 0))
	yearToDate := period{start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), end: now}

	thisMonthRequests := countOrders(orders, thisMonth)
	lastMonthRequests := countOrders(orders, lastMonth)
	thisMonthLeads := countLeads(leads, thisMonth)

	rpr := opts.RevenuePerRequest
	thisMonthRevenue := thisMonthRequests * rpr
	lastMonthRevenue := lastMonthRequests * rpr
	thisMonthAdSpend := now.Day() * opts.DailyAdSpend
	thisMonthProfit := thisMonthRevenue - thisMonthAdSpend
	profitMargin := percent(thisMonthProfit, thisMonthRevenue)
	revenueGrowth := growth(thisMonthRevenue, lastMonthRevenue)
	conversionRate := percent(thisMonthRequests, thisMonthLeads)

	var pending, inProgress, completed, cancelled, updateCount, buildCount int
	for _, o := range orders {
		switch o.status {
		case domain.RequestStatusPending:
			pending++
		case domain.RequestStatusInProgress:
			inProgress++
		case domain.RequestStatusCompleted:
			completed++
		case domain.RequestStatusCancelled:
			cancelled++
		}
		if o.kind == domain.RequestKindBuild {
			buildCount++
		} else {
			updateCount++
		}
	}
	total := len(orders)
	completionRate := percent(completed, total)

	segments := segment(leads, orders)

	report := &domain.Report{
		KeyMetrics: domain.KeyMetrics{
			MonthlyRevenue:       thisMonthRevenue,
			RevenueGrowth:        revenueGrowth,
			MonthlyProfit:        thisMonthProfit,
			ProfitMargin:         profitMargin,
			ConversionRate:       conversionRate,
			AvgCompletionTime:    opts.AvgCompletionTime,
			CustomerSatisfaction: opts.CustomerSatisfaction,
			TotalCustomers:       segments.total,
		},
		FinancialData: domain.FinancialData{
			ThisMonthRevenue:   thisMonthRevenue,
			LastMonthRevenue:   lastMonthRevenue,
			ThisMonthAdSpend:   thisMonthAdSpend,
			ThisMonthProfit:    thisMonthProfit,
			RevenuePerCustomer: rpr,
			DailyAdSpend:       opts.DailyAdSpend,
			ProfitMargin:       profitMargin,
			TotalYearRevenue:   countOrders(orders, yearToDate) * rpr,
		},
		RequestAnalytics: domain.RequestAnalytics{
			TotalRequests:    total,
			PendingRequests:  pending,
			InProgress:       inProgress,
			Completed:        completed,
			Cancelled:        cancelled,
			CompletionRate:   completionRate,
			UpdateRequests:   updateCount,
			BuildRequests:    buildCount,
			UpdatePercentage: percent(updateCount, total),
			BuildPercentage:  percent(buildCount, total),
		},
		CustomerData: domain.CustomerData{
			TotalCustomers:        segments.total,
			FirstTimeCustomers:    segments.firstTime,
			RepeatCustomers:       segments.repeat,
			VIPCustomers:          segments.vip,
			ThisMonthCustomers:    thisMonthRequests,
			CustomerLifetimeValue: float64(rpr) * 1.5,
		},
		WebsiteTraffic:     copyTraffic(opts.Traffic),
		PerformanceMetrics: opts.Performance,
		MonthlyData:        monthlyTrend(leads, orders, thisMonthStart, opts),
	}

	adSpendPerCustomer := 0
	if thisMonthRequests > 0 {
		adSpendPerCustomer = round(float64(thisMonthAdSpend) / float64(thisMonthRequests))
	}
	perf := opts.Performance
	report.Insights = domain.Insights{
		Positive: []string{
			fmt.Sprintf("%s%d%% revenue growth this month", sign(revenueGrowth), revenueGrowth),
			fmt.Sprintf("%d%% conversion rate from leads to customers", conversionRate),
			fmt.Sprintf("%d%% completion rate for all requests", completionRate),
			fmt.Sprintf("%s%% customer retention rate", num(perf.CustomerRetentionRate)),
			fmt.Sprintf("%s%% of customers come from referrals", num(perf.ReferralRate)),
		},
		Improvements: []string{
			fmt.Sprintf("%s%% of projects require revisions", num(perf.RevisionRate)),
			fmt.Sprintf("Average response time could be improved (%sh)", num(perf.ResponseTime)),
			fmt.Sprintf("Bounce rate is %s%% - could be optimized", num(report.WebsiteTraffic.BounceRate)),
			fmt.Sprintf("Ad spend efficiency: Rs.%d per customer", adSpendPerCustomer),
		},
	}

	return report
}

func normalize(updates []domain.ResumeUpdate, builds []domain.ResumeBuild) []order {
	orders := make([]order, 0, len(updates)+len(builds))
	for i := range updates {
		orders = append(orders, order{
			kind:      domain.RequestKindUpdate,
			createdAt: updates[i].CreatedAt,
			email:     domain.NormalizeEmail(updates[i].Email),
			status:    updates[i].Status,
		})
	}
	for i := range builds {
		orders = append(orders, order{
			kind:      domain.RequestKindBuild,
			createdAt: builds[i].CreatedAt,
			email:     domain.NormalizeEmail(builds[i].Email),
			status:    builds[i].Status,
		})
	}
	return orders
}

// monthPeriod spans the calendar month starting at start.
func monthPeriod(start time.Time) period {
	return period{start: start, end: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

func countOrders(orders []order, p period) int {
	n := 0
	for _, o := range orders {
		if p.contains(o.createdAt) {
			n++
		}
	}
	return n
}

func countLeads(leads []domain.Lead, p period) int {
	n := 0
	for i := range leads {
		if p.contains(leads[i].CreatedAt) {
			n++
		}
	}
	return n
}

type segments struct {
	total, firstTime, repeat, vip int
}

// segment buckets requesting emails by order count. The total also counts
// contacts that only appear as leads.
func segment(leads []domain.Lead, orders []order) segments {
	counts := make(map[string]int)
	for _, o := range orders {
		if o.email == "" {
			continue
		}
		counts[o.email]++
	}

	contacts := make(map[string]struct{}, len(counts)+len(leads))
	for email := range counts {
		contacts[email] = struct{}{}
	}
	for i := range leads {
		if key := leads[i].CustomerKey(); key != "" {
			contacts[key] = struct{}{}
		}
	}

	s := segments{total: len(contacts)}
	for _, n := range counts {
		switch {
		case n == 1:
			s.firstTime++
		case n < 5:
			s.repeat++
		default:
			s.vip++
		}
	}
	return s
}

// monthlyTrend returns six buckets, oldest first, ending at the current month.
// Ad spend uses each month's full day count.
func monthlyTrend(leads []domain.Lead, orders []order, thisMonthStart time.Time, opts Options) []domain.MonthlyBucket {
	const months = 6
	buckets := make([]domain.MonthlyBucket, 0, months)
	for i := months - 1; i >= 0; i-- {
		p := monthPeriod(thisMonthStart.AddDate(0, -i, 0))
		requests := countOrders(orders, p)
		monthLeads := countLeads(leads, p)
		revenue := requests * opts.RevenuePerRequest
		adSpend := p.end.Day() * opts.DailyAdSpend
		buckets = append(buckets, domain.MonthlyBucket{
			Month:          p.start.Format("Jan 2006"),
			Requests:       requests,
			Leads:          monthLeads,
			Revenue:        revenue,
			AdSpend:        adSpend,
			Profit:         revenue - adSpend,
			ConversionRate: percent(requests, monthLeads),
		})
	}
	return buckets
}

// percent is round(num/den*100), or 0 when den is 0.
func percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return round(float64(num) / float64(den) * 100)
}

func growth(current, previous int) int {
	if previous > 0 {
		return percent(current-previous, previous)
	}
	if current > 0 {
		return 100
	}
	return 0
}

// round is half-up toward positive infinity.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func sign(n int) string {
	if n >= 0 {
		return "+"
	}
	return ""
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func copyTraffic(t domain.WebsiteTraffic) domain.WebsiteTraffic {
	out := t
	out.TopPages = append([]domain.TopPage(nil), t.TopPages...)
	if out.TopPages == nil {
		out.TopPages = []domain.TopPage{}
	}
	return out
}
