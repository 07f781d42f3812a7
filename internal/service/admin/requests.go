package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/observability/telemetry"
)

// Priority ages pending orders: older than a day is high, older than
// twelve hours medium. Every other order is low.
func Priority(status domain.RequestStatus, createdAt, now time.Time) domain.RequestPriority {
	if status != domain.RequestStatusPending {
		return domain.PriorityLow
	}
	age := now.Sub(createdAt)
	switch {
	case age > 24*time.Hour:
		return domain.PriorityHigh
	case age > 12*time.Hour:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func buildDetails(b *domain.ResumeBuild) string {
	role := domain.StringValue(b.TargetRole)
	if role == "" {
		role = "Professional"
	}
	industry := domain.StringValue(b.TargetIndustry)
	if industry == "" {
		industry = "various industries"
	}
	return fmt.Sprintf("%s resume for %s", role, industry)
}

func (s *Service) ListRequests(ctx context.Context, filter domain.RequestFilter) (*domain.RequestPage, error) {
	var status domain.RequestStatus
	if filter.Status != "" && filter.Status != "all" {
		status = domain.RequestStatus(filter.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	updates, builds, err := s.loadOrders(ctx, status)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows := make([]domain.RequestRow, 0, len(updates)+len(builds))
	for i := range updates {
		u := &updates[i]
		details := domain.StringValue(u.AdditionalDetails)
		if details == "" {
			details = "Resume update request"
		}
		rows = append(rows, domain.RequestRow{
			ID:          domain.DisplayID(domain.RequestKindUpdate, u.ID),
			Customer:    u.CustomerName,
			Email:       u.Email,
			Phone:       domain.StringValue(u.Phone),
			Type:        domain.RequestKindUpdate.DisplayName(),
			Status:      u.Status,
			Priority:    Priority(u.Status, u.CreatedAt, now),
			SubmittedAt: u.CreatedAt,
			Details:     details,
			HasFile:     domain.StringValue(u.ResumeFileURL) != "",
			FileURL:     u.ResumeFileURL,
			OrderID:     u.OrderID,
			RequestType: domain.RequestKindUpdate,
		})
	}
	for i := range builds {
		b := &builds[i]
		rows = append(rows, domain.RequestRow{
			ID:          domain.DisplayID(domain.RequestKindBuild, b.ID),
			Customer:    b.FullName,
			Email:       b.Email,
			Phone:       domain.StringValue(b.Phone),
			Type:        domain.RequestKindBuild.DisplayName(),
			Status:      b.Status,
			Priority:    Priority(b.Status, b.CreatedAt, now),
			SubmittedAt: b.CreatedAt,
			Details:     buildDetails(b),
			OrderID:     b.OrderID,
			RequestType: domain.RequestKindBuild,
		})
	}

	rows = filterRows(rows, filter)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SubmittedAt.After(rows[j].SubmittedAt)
	})

	pagination, start, end := paginate(filter.Page, filter.Limit, len(rows))
	return &domain.RequestPage{
		Requests:   rows[start:end],
		Pagination: pagination,
	}, nil
}

// filterRows applies the type filter (kind or display name) and a
// case-insensitive search on customer, email and display id.
func filterRows(rows []domain.RequestRow, filter domain.RequestFilter) []domain.RequestRow {
	typ := strings.TrimSpace(filter.Type)
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if (typ == "" || typ == "all") && search == "" {
		return rows
	}

	out := rows[:0]
	for _, r := range rows {
		if typ != "" && typ != "all" && typ != r.Type && typ != string(r.RequestType) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Customer), search) &&
			!strings.Contains(strings.ToLower(r.Email), search) &&
			!strings.Contains(strings.ToLower(r.ID), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// UpdateRequestStatus changes the status of the order named by displayID
// (UPD-<id> or BUILD-<id>).
func (s *Service) UpdateRequestStatus(ctx context.Context, displayID string, kind domain.RequestKind, status domain.RequestStatus) error {
	if !kind.Valid() {
		return domain.ErrInvalidRequestType
	}
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}
	id, err := domain.ParseDisplayID(kind, displayID)
	if err != nil {
		return err
	}

	if kind == domain.RequestKindBuild {
		err = s.builds.UpdateStatus(ctx, id, status)
	} else {
		err = s.updates.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		return err
	}

	telemetry.RequestStatusChangesTotal.WithLabelValues(string(kind), string(status)).Inc()
	s.log.Info("Request status updated",
		zap.String("request_id", displayID),
		zap.String("status", string(status)),
	)
	return nil
}
