package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type AuditLog struct {
	ID        int         `json:"id"`
	UserID    null.Int    `json:"user_id"`
	TableName string      `json:"table_name"`
	RecordID  int         `json:"record_id"`
	Action    string      `json:"action"` // "create", "update", "delete", "status_change", ...
	Detail    null.String `json:"detail"`
	Timestamp time.Time   `json:"timestamp"`
}

type AuditLogFilterDTO struct {
	TableName *string    `form:"tableName"`
	RecordID  *int       `form:"-"` // Chỉ đặt qua path param, không qua query
	Action    *string    `form:"action"`
	UserID    *int       `form:"userId"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}
