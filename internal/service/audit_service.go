package service

import (
	"context"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

type AuditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) Find(ctx context.Context, filter domain.AuditLogFilterDTO, q domain.PageQuery) ([]domain.AuditLog, int, error) {
	return s.auditRepo.Find(ctx, filter, q)
}
