package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

// RequestKind distinguishes the two order flavours.
type RequestKind string

const (
	RequestKindUpdate RequestKind = "update"
	RequestKindBuild  RequestKind = "build"
)

func (k RequestKind) Valid() bool {
	return k == RequestKindUpdate || k == RequestKindBuild
}

// DisplayName is the label shown in the back office.
func (k RequestKind) DisplayName() string {
	if k == RequestKindBuild {
		return "Build from Scratch"
	}
	return "Update"
}

// ResumeUpdate is a revision order for an existing resume.
type ResumeUpdate struct {
	ID                int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID           string        `json:"order_id" gorm:"uniqueIndex;not null"`
	CustomerName      string        `json:"customer_name" gorm:"not null"`
	Email             string        `json:"email" gorm:"index;not null"`
	Phone             *string       `json:"phone,omitempty"`
	AdditionalDetails *string       `json:"additional_details,omitempty"`
	ResumeFileURL     *string       `json:"resume_file_url,omitempty"`
	Status            RequestStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt         time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

func (ResumeUpdate) TableName() string { return "resume_updates" }

// ResumeBuild is a write-from-scratch order carrying the intake questionnaire.
type ResumeBuild struct {
	ID                  int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID             string        `json:"order_id" gorm:"uniqueIndex;not null"`
	FullName            string        `json:"full_name" gorm:"not null"`
	Email               string        `json:"email" gorm:"index;not null"`
	Phone               *string       `json:"phone,omitempty"`
	Address             *string       `json:"address,omitempty"`
	LinkedinURL         *string       `json:"linkedin_url,omitempty"`
	PortfolioURL        *string       `json:"portfolio_url,omitempty"`
	ProfessionalSummary *string       `json:"professional_summary,omitempty"`
	TargetRole          *string       `json:"target_role,omitempty"`
	TargetIndustry      *string       `json:"target_industry,omitempty"`
	WorkExperience      *string       `json:"work_experience,omitempty"`
	Education           *string       `json:"education,omitempty"`
	Skills              *string       `json:"skills,omitempty"`
	Certifications      *string       `json:"certifications,omitempty"`
	Projects            *string       `json:"projects,omitempty"`
	Languages           *string       `json:"languages,omitempty"`
	Achievements        *string       `json:"achievements,omitempty"`
	AdditionalNotes     *string       `json:"additional_notes,omitempty"`
	Status              RequestStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt           time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

func (ResumeBuild) TableName() string { return "resume_builds" }

const (
	updateDisplayPrefix = "UPD-"
	buildDisplayPrefix  = "BUILD-"
)

// DisplayID renders the back-office identifier of an order, e.g. UPD-12.
func DisplayID(kind RequestKind, id int64) string {
	if kind == RequestKindBuild {
		return fmt.Sprintf("%s%d", buildDisplayPrefix, id)
	}
	return fmt.Sprintf("%s%d", updateDisplayPrefix, id)
}

// ParseDisplayID is the inverse of DisplayID. The prefix must match kind.
func ParseDisplayID(kind RequestKind, displayID string) (int64, error) {
	prefix := updateDisplayPrefix
	if kind == RequestKindBuild {
		prefix = buildDisplayPrefix
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(displayID, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidRequestID
	}
	return id, nil
}

// Order numbers carry the submission time in unix milliseconds.
func NewUpdateOrderID(now time.Time) string {
	return fmt.Sprintf("UPD-%d", now.UnixMilli())
}

func NewBuildOrderID(now time.Time) string {
	return fmt.Sprintf("BUILD-%d", now.UnixMilli())
}
