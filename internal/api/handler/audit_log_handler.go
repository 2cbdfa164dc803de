package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/service"
)

type AuditLogHandler struct {
	auditService *service.AuditService
}

func NewAuditLogHandler(as *service.AuditService) *AuditLogHandler {
	return &AuditLogHandler{auditService: as}
}

func (h *AuditLogHandler) respond(c *gin.Context, filter domain.AuditLogFilterDTO) {
	var q domain.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q.Normalize()

	logs, total, err := h.auditService.Find(c.Request.Context(), filter, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy audit logs"})
		return
	}

	totalPages := total / q.Limit
	if total%q.Limit != 0 {
		totalPages++
	}
	// Envelope của audit log dùng key "logs" thay vì "data"
	c.JSON(http.StatusOK, gin.H{
		"total":      total,
		"page":       q.Page,
		"totalPages": totalPages,
		"logs":       logs,
	})
}

// GET /api/v1/audit-logs (admin)
func (h *AuditLogHandler) ListAuditLogs(c *gin.Context) {
	h.respond(c, domain.AuditLogFilterDTO{})
}

// GET /api/v1/audit-logs/table/:tableName (admin)
func (h *AuditLogHandler) ListAuditLogsByTable(c *gin.Context) {
	tableName := c.Param("tableName")
	h.respond(c, domain.AuditLogFilterDTO{TableName: &tableName})
}

// GET /api/v1/audit-logs/table/:tableName/record/:recordId (admin)
func (h *AuditLogHandler) ListAuditLogsByRecord(c *gin.Context) {
	tableName := c.Param("tableName")
	recordID, err := strconv.Atoi(c.Param("recordId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Record ID không hợp lệ"})
		return
	}
	h.respond(c, domain.AuditLogFilterDTO{TableName: &tableName, RecordID: &recordID})
}

// GET /api/v1/audit-logs/search (admin)
func (h *AuditLogHandler) SearchAuditLogs(c *gin.Context) {
	var filter domain.AuditLogFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if recordIDStr := c.Query("record_id"); recordIDStr != "" {
		recordID, err := strconv.Atoi(recordIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "record_id không hợp lệ"})
			return
		}
		filter.RecordID = &recordID
	}
	h.respond(c, filter)
}
