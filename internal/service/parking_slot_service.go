package service

import (
	"context"

	"github.com/Chiesa14/pvms-ne/internal/audit"
	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

type ParkingSlotService struct {
	slotRepo repository.ParkingSlotRepository
	auditor  *audit.Recorder
}

func NewParkingSlotService(slotRepo repository.ParkingSlotRepository, auditor *audit.Recorder) *ParkingSlotService {
	return &ParkingSlotService{slotRepo: slotRepo, auditor: auditor}
}

func (s *ParkingSlotService) Create(ctx context.Context, adminID int, dto domain.ParkingSlotDTO) (*domain.ParkingSlot, error) {
	slot := &domain.ParkingSlot{
		SlotNumber: dto.SlotNumber,
		Floor:      dto.Floor,
		Type:       dto.Type,
		Status:     domain.SlotAvailable,
	}
	if dto.Status != "" {
		slot.Status = domain.SlotStatus(dto.Status)
	}
	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		return nil, err
	}
	s.auditor.Record(ctx, adminID, "parking_slots", created.ID, "create", created.SlotNumber)
	return created, nil
}

func (s *ParkingSlotService) List(ctx context.Context, filter domain.ParkingSlotFilterDTO, q domain.PageQuery) ([]domain.ParkingSlot, int, error) {
	return s.slotRepo.Find(ctx, filter, q)
}

func (s *ParkingSlotService) Get(ctx context.Context, slotID int) (*domain.ParkingSlot, error) {
	return s.slotRepo.FindByID(ctx, slotID)
}

func (s *ParkingSlotService) Update(ctx context.Context, adminID, slotID int, dto domain.ParkingSlotDTO) (*domain.ParkingSlot, error) {
	slot, err := s.slotRepo.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	slot.SlotNumber = dto.SlotNumber
	slot.Floor = dto.Floor
	slot.Type = dto.Type
	if dto.Status != "" {
		slot.Status = domain.SlotStatus(dto.Status)
	}
	updated, err := s.slotRepo.Update(ctx, slot)
	if err != nil {
		return nil, err
	}
	s.auditor.Record(ctx, adminID, "parking_slots", updated.ID, "update", updated.SlotNumber)
	return updated, nil
}

func (s *ParkingSlotService) UpdateStatus(ctx context.Context, adminID, slotID int, status domain.SlotStatus) error {
	if err := s.slotRepo.UpdateStatus(ctx, slotID, status); err != nil {
		return err
	}
	s.auditor.Record(ctx, adminID, "parking_slots", slotID, "status_change", string(status))
	return nil
}

func (s *ParkingSlotService) Delete(ctx context.Context, adminID, slotID int) error {
	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		return err
	}
	s.auditor.Record(ctx, adminID, "parking_slots", slotID, "delete", "")
	return nil
}
