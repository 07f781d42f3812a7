package domain

import "time"

type RequestPriority string

const (
	PriorityHigh   RequestPriority = "high"
	PriorityMedium RequestPriority = "medium"
	PriorityLow    RequestPriority = "low"
)

// RequestRow is one order as listed in the back office.
type RequestRow struct {
	ID          string          `json:"id"`
	Customer    string          `json:"customer"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Type        string          `json:"type"`
	Status      RequestStatus   `json:"status"`
	Priority    RequestPriority `json:"priority"`
	SubmittedAt time.Time       `json:"submittedAt"`
	Details     string          `json:"details"`
	HasFile     bool            `json:"hasFile"`
	FileURL     *string         `json:"fileUrl"`
	OrderID     string          `json:"orderId"`
	RequestType RequestKind     `json:"requestType"`
}

type RequestFilter struct {
	Search string
	Status string
	Type   string
	Page   int
	Limit  int
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type RequestPage struct {
	Requests   []RequestRow `json:"requests"`
	Pagination Pagination   `json:"pagination"`
}

type CustomerStatus string

const (
	CustomerStatusLead     CustomerStatus = "lead"
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// CustomerHistoryEntry is one order in a customer's history.
type CustomerHistoryEntry struct {
	ID     string        `json:"id"`
	Type   string        `json:"type"`
	Status RequestStatus `json:"status"`
	Date   time.Time     `json:"date"`
}

type Customer struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	Phone          string                 `json:"phone"`
	TotalRequests  int                    `json:"totalRequests"`
	LastRequest    *time.Time             `json:"lastRequest"`
	JoinedDate     time.Time              `json:"joinedDate"`
	Status         CustomerStatus         `json:"status"`
	RequestHistory []CustomerHistoryEntry `json:"requestHistory"`
}

type CustomerStats struct {
	TotalCustomers  int     `json:"totalCustomers"`
	ActiveCustomers int     `json:"activeCustomers"`
	RepeatCustomers int     `json:"repeatCustomers"`
	AvgRequests     float64 `json:"avgRequests"`
}

type CustomerFilter struct {
	Search string
	Page   int
	Limit  int
}

type CustomerPage struct {
	Customers  []Customer    `json:"customers"`
	Stats      CustomerStats `json:"stats"`
	Pagination Pagination    `json:"pagination"`
}

// StoredObject is an entry in the object store listing.
type StoredObject struct {
	Key          string
	Name         string
	Size         int64
	LastModified time.Time
}

type FileStatus string

const (
	FileStatusActive   FileStatus = "active"
	FileStatusArchived FileStatus = "archived"
)

// ResumeFile is an uploaded resume joined with its order.
type ResumeFile struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Customer    string     `json:"customer"`
	Email       string     `json:"email"`
	Type        string     `json:"type"`
	Size        string     `json:"size"`
	SizeBytes   int64      `json:"sizeBytes"`
	UploadDate  time.Time  `json:"uploadDate"`
	RequestID   string     `json:"requestId"`
	Status      FileStatus `json:"status"`
	DownloadURL string     `json:"downloadUrl"`
}

type FileStats struct {
	TotalFiles int    `json:"totalFiles"`
	TotalSize  string `json:"totalSize"`
	PDFFiles   int    `json:"pdfFiles"`
	DocFiles   int    `json:"docFiles"`
}

type FileFilter struct {
	Search string
	Type   string
	Status string
}

type FileListing struct {
	Files []ResumeFile `json:"files"`
	Stats FileStats    `json:"stats"`
}
