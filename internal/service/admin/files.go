package admin

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/internal/service/intake"
)

// placeholderObject is the marker some buckets keep in empty folders.
const placeholderObject = ".emptyFolderPlaceholder"

type fileOwner struct {
	customer  string
	email     string
	requestID string
	status    domain.RequestStatus
}

// ListFiles joins the uploaded resumes with the update orders that
// reference them by file name.
func (s *Service) ListFiles(ctx context.Context, filter domain.FileFilter) (*domain.FileListing, error) {
	objects, err := s.store.List(ctx, intake.UploadPrefix)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	updates, err := s.updates.FindAll(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("fetch resume updates: %w", err)
	}

	owners := make(map[string]fileOwner, len(updates))
	for _, u := range updates {
		fileURL := domain.StringValue(u.ResumeFileURL)
		if fileURL == "" {
			continue
		}
		owners[path.Base(fileURL)] = fileOwner{
			customer:  u.CustomerName,
			email:     u.Email,
			requestID: domain.DisplayID(domain.RequestKindUpdate, u.ID),
			status:    u.Status,
		}
	}

	files := make([]domain.ResumeFile, 0, len(objects))
	for _, obj := range objects {
		if obj.Name == placeholderObject {
			continue
		}
		owner, ok := owners[obj.Name]
		if !ok {
			owner = fileOwner{customer: "Unknown", email: "unknown@example.com", requestID: "N/A"}
		}

		ext := strings.ToLower(strings.TrimPrefix(path.Ext(obj.Name), "."))
		if ext == "" {
			ext = "unknown"
		}
		status := domain.FileStatusActive
		if owner.status == domain.RequestStatusCompleted {
			status = domain.FileStatusArchived
		}

		files = append(files, domain.ResumeFile{
			ID:          fileID(obj.Name),
			Name:        obj.Name,
			Customer:    owner.customer,
			Email:       owner.email,
			Type:        ext,
			Size:        FormatFileSize(obj.Size),
			SizeBytes:   obj.Size,
			UploadDate:  obj.LastModified,
			RequestID:   owner.requestID,
			Status:      status,
			DownloadURL: s.store.PublicURL(obj.Key),
		})
	}

	files = filterFiles(files, filter)

	stats := domain.FileStats{TotalFiles: len(files)}
	var total int64
	for _, f := range files {
		total += f.SizeBytes
		switch f.Type {
		case "pdf":
			stats.PDFFiles++
		case "doc", "docx":
			stats.DocFiles++
		}
	}
	stats.TotalSize = FormatFileSize(total)

	return &domain.FileListing{Files: files, Stats: stats}, nil
}

func fileID(name string) string {
	var b strings.Builder
	for _, r := range name {
		if b.Len() == 8 {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return "FILE-" + b.String()
}

func filterFiles(files []domain.ResumeFile, filter domain.FileFilter) []domain.ResumeFile {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := files[:0]
	for _, f := range files {
		if filter.Type != "" && filter.Type != "all" && f.Type != filter.Type {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(f.Status) != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(f.Name), search) &&
			!strings.Contains(strings.ToLower(f.Customer), search) &&
			!strings.Contains(strings.ToLower(f.RequestID), search) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// DeleteFile removes updates/<name>. Names containing a path separator
// are rejected.
func (s *Service) DeleteFile(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return &domain.ValidationError{Issues: []domain.FieldIssue{
			{Field: "file", Message: "must be a file name"},
		}}
	}
	key := intake.UploadPrefix + "/" + name
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.log.Info("Resume file deleted", zap.String("key", key))
	return nil
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize renders bytes with one decimal in binary units, trimming
// a trailing ".0" (1536 -> "1.5 KB", 2048 -> "2 KB").
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return strconv.FormatFloat(roundTo1(size), 'f', -1, 64) + " " + sizeUnits[unit]
}

func roundTo1(f float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 1, 64), 64)
	return v
}
