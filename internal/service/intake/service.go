package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/adapter/queue"
	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/observability/telemetry"
	"github.com/aniket045123/craftmyresume/internal/ports"
	"github.com/aniket045123/craftmyresume/internal/service/email"
	"github.com/aniket045123/craftmyresume/internal/validation"
)

// UploadPrefix is the object store folder holding update-order resumes.
const UploadPrefix = "updates"

const leadEmailTimeout = 5 * time.Second

// ErrUploadFailed wraps object store failures while storing a resume.
var ErrUploadFailed = errors.New("file upload failed")

const (
	ReasonMissingRecipient = "Missing LEADS_NOTIFY_TO"
	ReasonMissingAPIKey    = "Missing SENDGRID_API_KEY"
	ReasonSendError        = "send_error"
)

type Service struct {
	leads    ports.LeadRepository
	updates  ports.ResumeUpdateRepository
	builds   ports.ResumeBuildRepository
	store    ports.ObjectStore
	settings ports.SettingsService
	notifier ports.NotificationService
	mq       queue.MessageQueue
	validate *validation.Validator
	timeout  time.Duration
	now      func() time.Time
	log      *zap.Logger
}

type Dependencies struct {
	Leads    ports.LeadRepository
	Updates  ports.ResumeUpdateRepository
	Builds   ports.ResumeBuildRepository
	Store    ports.ObjectStore
	Settings ports.SettingsService
	Notifier ports.NotificationService
	Queue    queue.MessageQueue
	// EmailTimeout bounds the lead notification send; zero means 5s.
	EmailTimeout time.Duration
}

func NewService(deps Dependencies, log *zap.Logger) *Service {
	timeout := deps.EmailTimeout
	if timeout <= 0 {
		timeout = leadEmailTimeout
	}
	return &Service{
		leads:    deps.Leads,
		updates:  deps.Updates,
		builds:   deps.Builds,
		store:    deps.Store,
		settings: deps.Settings,
		notifier: deps.Notifier,
		mq:       deps.Queue,
		validate: validation.New(),
		timeout:  timeout,
		now:      time.Now,
		log:      log,
	}
}

var _ ports.IntakeService = (*Service)(nil)

// SubmitContact stores a lead and then tries to notify the business. A
// failed notification never fails the submission; it is reported in the
// result instead.
func (s *Service) SubmitContact(ctx context.Context, in ports.ContactInput) (*ports.ContactResult, error) {
	if err := s.validateContact(in); err != nil {
		s.count("contact", "invalid")
		return nil, err
	}

	now := s.now()
	lead := &domain.Lead{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     domain.OptionalString(in.Email),
		Phone:     domain.OptionalString(in.Phone),
		Message:   domain.OptionalString(in.Message),
		Plan:      domain.OptionalString(in.Plan),
		Source:    domain.OptionalString(sourceFromReferrer(in.Referrer)),
		UserAgent: domain.OptionalString(in.UserAgent),
		Referrer:  domain.OptionalString(in.Referrer),
		IP:        domain.OptionalString(firstForwardedIP(in.IP)),
		CreatedAt: now,
	}

	if err := s.leads.Save(ctx, lead); err != nil {
		s.count("contact", "error")
		return nil, fmt.Errorf("save lead: %w", err)
	}
	s.count("contact", "ok")

	s.publish(domain.SubjectLeadCreated, &domain.IntakeEvent{
		RecordID:   lead.ID,
		Name:       lead.Name,
		Email:      domain.StringValue(lead.Email),
		Phone:      domain.StringValue(lead.Phone),
		Plan:       domain.StringValue(lead.Plan),
		OccurredAt: now,
	})

	result := &ports.ContactResult{OK: true, Email: "sent"}
	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.notifier.SendLeadNotification(sendCtx, lead); err != nil {
		result.Email = "not_sent"
		result.Reason = notSentReason(err)
		s.log.Warn("Lead notification not sent",
			zap.String("lead_id", lead.ID),
			zap.String("reason", result.Reason),
			zap.Error(err),
		)
	}
	return result, nil
}

func (s *Service) validateContact(in ports.ContactInput) error {
	err := s.validate.Struct(in)
	if strings.TrimSpace(in.Email) != "" || strings.TrimSpace(in.Phone) != "" {
		return err
	}

	issue := domain.FieldIssue{Field: "email", Message: "provide at least an email or phone number"}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		verr.Issues = append(verr.Issues, issue)
		return verr
	}
	if err != nil {
		return err
	}
	return &domain.ValidationError{Issues: []domain.FieldIssue{issue}}
}

func (s *Service) SubmitResumeUpdate(ctx context.Context, in ports.ResumeUpdateInput) (*domain.ResumeUpdate, error) {
	if err := s.validate.Struct(in); err != nil {
		s.count("update", "invalid")
		return nil, err
	}

	now := s.now()
	order := &domain.ResumeUpdate{
		OrderID:           domain.NewUpdateOrderID(now),
		CustomerName:      strings.TrimSpace(in.CustomerName),
		Email:             strings.TrimSpace(in.Email),
		Phone:             domain.OptionalString(in.Phone),
		AdditionalDetails: domain.OptionalString(in.AdditionalDetails),
		Status:            domain.RequestStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if in.File != nil && in.File.Size > 0 {
		fileURL, err := s.storeResume(ctx, in.File, now)
		if err != nil {
			s.count("update", "error")
			return nil, err
		}
		order.ResumeFileURL = &fileURL
	}

	if err := s.updates.Save(ctx, order); err != nil {
		s.count("update", "error")
		return nil, fmt.Errorf("save resume update: %w", err)
	}
	s.count("update", "ok")

	s.publish(domain.SubjectRequestCreated, &domain.IntakeEvent{
		Kind:       domain.RequestKindUpdate,
		RecordID:   domain.DisplayID(domain.RequestKindUpdate, order.ID),
		OrderID:    order.OrderID,
		Name:       order.CustomerName,
		Email:      order.Email,
		Phone:      domain.StringValue(order.Phone),
		OccurredAt: now,
	})
	return order, nil
}

// storeResume checks the file against the business settings and uploads
// it, returning its public URL.
func (s *Service) storeResume(ctx context.Context, file *ports.UploadedFile, now time.Time) (string, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(file.Name), "."))
	if !settings.AllowsExtension(ext) {
		return "", &domain.ValidationError{Issues: []domain.FieldIssue{
			{Field: "resumeFile", Message: fmt.Sprintf("file type is not allowed (accepted: %s)", settings.AllowedFileTypes)},
		}}
	}
	if limit := settings.MaxFileBytes(); limit > 0 && file.Size > limit {
		return "", &domain.ValidationError{Issues: []domain.FieldIssue{
			{Field: "resumeFile", Message: fmt.Sprintf("must be at most %d MB", settings.MaxFileSize)},
		}}
	}

	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension("." + ext); byExt != "" {
			contentType = byExt
		}
	}

	key := UploadKey(now, ext)
	if err := s.store.Upload(ctx, key, file.Body, file.Size, contentType); err != nil {
		s.log.Error("Resume upload failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	s.log.Info("Resume uploaded", zap.String("key", key), zap.Int64("size", file.Size))
	return s.store.PublicURL(key), nil
}

// UploadKey builds updates/<unixms>-<random>.<ext>.
func UploadKey(now time.Time, ext string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
	if ext != "" {
		name += "." + ext
	}
	return UploadPrefix + "/" + name
}

func (s *Service) SubmitResumeBuild(ctx context.Context, in ports.ResumeBuildInput) (*domain.ResumeBuild, error) {
	if err := s.validate.Struct(in); err != nil {
		s.count("build", "invalid")
		return nil, err
	}

	now := s.now()
	order := &domain.ResumeBuild{
		OrderID:             domain.NewBuildOrderID(now),
		FullName:            strings.TrimSpace(in.FullName),
		Email:               strings.TrimSpace(in.Email),
		Phone:               domain.OptionalString(in.Phone),
		Address:             domain.OptionalString(in.Address),
		LinkedinURL:         domain.OptionalString(in.LinkedinURL),
		PortfolioURL:        domain.OptionalString(in.PortfolioURL),
		ProfessionalSummary: domain.OptionalString(in.ProfessionalSummary),
		TargetRole:          domain.OptionalString(in.TargetRole),
		TargetIndustry:      domain.OptionalString(in.TargetIndustry),
		WorkExperience:      domain.OptionalString(in.WorkExperience),
		Education:           domain.OptionalString(in.Education),
		Skills:              domain.OptionalString(in.Skills),
		Certifications:      domain.OptionalString(in.Certifications),
		Projects:            domain.OptionalString(in.Projects),
		Languages:           domain.OptionalString(in.Languages),
		Achievements:        domain.OptionalString(in.Achievements),
		AdditionalNotes:     domain.OptionalString(in.AdditionalNotes),
		Status:              domain.RequestStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.builds.Save(ctx, order); err != nil {
		s.count("build", "error")
		return nil, fmt.Errorf("save resume build: %w", err)
	}
	s.count("build", "ok")

	s.publish(domain.SubjectRequestCreated, &domain.IntakeEvent{
		Kind:       domain.RequestKindBuild,
		RecordID:   domain.DisplayID(domain.RequestKindBuild, order.ID),
		OrderID:    order.OrderID,
		Name:       order.FullName,
		Email:      order.Email,
		Phone:      domain.StringValue(order.Phone),
		OccurredAt: now,
	})
	return order, nil
}

// publish is best effort: the record is already stored.
func (s *Service) publish(subject string, event *domain.IntakeEvent) {
	if s.mq == nil {
		return
	}
	event.Type = subject
	data, err := json.Marshal(event)
	if err != nil {
		s.log.Error("Failed to encode intake event", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := s.mq.Publish(subject, data); err != nil {
		s.log.Warn("Failed to publish intake event",
			zap.String("subject", subject),
			zap.String("record_id", event.RecordID),
			zap.Error(err),
		)
	}
}

func (s *Service) count(kind, status string) {
	telemetry.IntakeSubmissionsTotal.WithLabelValues(kind, status).Inc()
}

func notSentReason(err error) string {
	switch {
	case errors.Is(err, email.ErrNoRecipient):
		return ReasonMissingRecipient
	case errors.Is(err, email.ErrNotConfigured):
		return ReasonMissingAPIKey
	default:
		return ReasonSendError
	}
}

// sourceFromReferrer keeps the path of an absolute referrer URL and the
// raw value otherwise.
func sourceFromReferrer(referrer string) string {
	referrer = strings.TrimSpace(referrer)
	if referrer == "" {
		return ""
	}
	u, err := url.Parse(referrer)
	if err != nil || u.Host == "" {
		return referrer
	}
	if u.Path == "" {
		return "/"
	}
	return u.Path
}

func firstForwardedIP(header string) string {
	first, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(first)
}
