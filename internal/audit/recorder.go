// Package audit ghi lại các thao tác thay đổi dữ liệu vào bảng audit_logs.
// Ghi log là side effect: lỗi được log và nuốt, không ảnh hưởng thao tác chính.
package audit

import (
	"context"
	"log"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"

	"gopkg.in/guregu/null.v4"
)

type Recorder struct {
	repo repository.AuditLogRepository
}

func NewRecorder(repo repository.AuditLogRepository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, userID int, tableName string, recordID int, action string, detail string) {
	entry := &domain.AuditLog{
		TableName: tableName,
		RecordID:  recordID,
		Action:    action,
	}
	if userID != 0 {
		entry.UserID = null.IntFrom(int64(userID))
	}
	if detail != "" {
		entry.Detail = null.StringFrom(detail)
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		log.Printf("AuditRecorder: lỗi ghi audit log (%s/%d %s): %v", tableName, recordID, action, err)
	}
}
