package admin

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/aniket045123/craftmyresume/internal/domain"
)

const activeWindow = 30 * 24 * time.Hour

// customerID keeps the first eight letters and digits of key, uppercased.
func customerID(prefix, key string) string {
	var b strings.Builder
	for _, r := range key {
		if b.Len() == 8 {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return prefix + b.String()
}

type customerAcc struct {
	customer domain.Customer
	joined   time.Time
}

// ListCustomers merges orders and leads into one row per email. Orders
// define customers; leads only add prospects not seen in any order.
func (s *Service) ListCustomers(ctx context.Context, filter domain.CustomerFilter) (*domain.CustomerPage, error) {
	updates, builds, err := s.loadOrders(ctx, "")
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch leads: %w", err)
	}

	byKey := make(map[string]*customerAcc)
	var order []string

	addOrder := func(kind domain.RequestKind, id int64, name, email string, phone *string, status domain.RequestStatus, createdAt time.Time) {
		key := domain.NormalizeEmail(email)
		acc, ok := byKey[key]
		if !ok {
			acc = &customerAcc{
				customer: domain.Customer{
					ID:             customerID("CUST-", key),
					Name:           name,
					Email:          email,
					Phone:          domain.StringValue(phone),
					RequestHistory: []domain.CustomerHistoryEntry{},
				},
				joined: createdAt,
			}
			byKey[key] = acc
			order = append(order, key)
		}
		c := &acc.customer
		c.TotalRequests++
		c.RequestHistory = append(c.RequestHistory, domain.CustomerHistoryEntry{
			ID:     domain.DisplayID(kind, id),
			Type:   string(kind),
			Status: status,
			Date:   createdAt,
		})
		if c.LastRequest == nil || createdAt.After(*c.LastRequest) {
			last := createdAt
			c.LastRequest = &last
		}
		if createdAt.Before(acc.joined) {
			acc.joined = createdAt
		}
	}
	for _, u := range updates {
		addOrder(domain.RequestKindUpdate, u.ID, u.CustomerName, u.Email, u.Phone, u.Status, u.CreatedAt)
	}
	for _, b := range builds {
		addOrder(domain.RequestKindBuild, b.ID, b.FullName, b.Email, b.Phone, b.Status, b.CreatedAt)
	}

	for i := range leads {
		l := &leads[i]
		key := l.CustomerKey()
		if key == "" {
			// Phone-only prospects are keyed by phone.
			phone := strings.TrimSpace(domain.StringValue(l.Phone))
			if phone == "" {
				continue
			}
			key = "phone:" + phone
		}
		if _, ok := byKey[key]; ok {
			continue
		}
		byKey[key] = &customerAcc{
			customer: domain.Customer{
				ID:             customerID("LEAD-", strings.TrimPrefix(key, "phone:")),
				Name:           l.Name,
				Email:          domain.StringValue(l.Email),
				Phone:          domain.StringValue(l.Phone),
				RequestHistory: []domain.CustomerHistoryEntry{},
			},
			joined: l.CreatedAt,
		}
		order = append(order, key)
	}

	cutoff := s.now().Add(-activeWindow)
	customers := make([]domain.Customer, 0, len(order))
	for _, key := range order {
		acc := byKey[key]
		c := acc.customer
		c.JoinedDate = acc.joined
		switch {
		case c.TotalRequests == 0:
			c.Status = domain.CustomerStatusLead
		case c.LastRequest != nil && c.LastRequest.After(cutoff):
			c.Status = domain.CustomerStatusActive
		default:
			c.Status = domain.CustomerStatusInactive
		}
		customers = append(customers, c)
	}

	customers = searchCustomers(customers, filter.Search)
	sort.SliceStable(customers, func(i, j int) bool {
		a, b := customers[i].LastRequest, customers[j].LastRequest
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	stats := domain.CustomerStats{TotalCustomers: len(customers)}
	requests := 0
	for _, c := range customers {
		if c.Status == domain.CustomerStatusActive {
			stats.ActiveCustomers++
		}
		if c.TotalRequests > 1 {
			stats.RepeatCustomers++
		}
		requests += c.TotalRequests
	}
	if len(customers) > 0 {
		stats.AvgRequests = math.Round(float64(requests)/float64(len(customers))*10) / 10
	}

	pagination, start, end := paginate(filter.Page, filter.Limit, len(customers))
	return &domain.CustomerPage{
		Customers:  customers[start:end],
		Stats:      stats,
		Pagination: pagination,
	}, nil
}

func searchCustomers(customers []domain.Customer, search string) []domain.Customer {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return customers
	}
	out := customers[:0]
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(strings.ToLower(c.Email), search) ||
			strings.Contains(strings.ToLower(c.Phone), search) {
			out = append(out, c)
		}
	}
	return out
}
