package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Chiesa14/pvms-ne/internal/api/middleware"
	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
	"github.com/Chiesa14/pvms-ne/internal/service"
)

type ParkingSlotHandler struct {
	slotService *service.ParkingSlotService
}

func NewParkingSlotHandler(ss *service.ParkingSlotService) *ParkingSlotHandler {
	return &ParkingSlotHandler{slotService: ss}
}

// POST /api/v1/parking-slots (admin)
func (h *ParkingSlotHandler) CreateParkingSlot(c *gin.Context) {
	adminID, _ := middleware.CurrentUserID(c)

	var dto domain.ParkingSlotDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.slotService.Create(c.Request.Context(), adminID, dto)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo chỗ đỗ xe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// GET /api/v1/parking-slots
func (h *ParkingSlotHandler) ListParkingSlots(c *gin.Context) {
	var filter domain.ParkingSlotFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var q domain.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q.Normalize()

	slots, total, err := h.slotService.List(c.Request.Context(), filter, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách chỗ đỗ xe"})
		return
	}
	c.JSON(http.StatusOK, domain.NewPage(total, q.Page, q.Limit, slots))
}

// GET /api/v1/parking-slots/:id
func (h *ParkingSlotHandler) GetParkingSlot(c *gin.Context) {
	slotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slot ID không hợp lệ"})
		return
	}

	slot, err := h.slotService.Get(c.Request.Context(), slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy chỗ đỗ xe"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy thông tin chỗ đỗ xe"})
		return
	}
	c.JSON(http.StatusOK, slot)
}

// PUT /api/v1/parking-slots/:id (admin)
func (h *ParkingSlotHandler) UpdateParkingSlot(c *gin.Context) {
	adminID, _ := middleware.CurrentUserID(c)

	slotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slot ID không hợp lệ"})
		return
	}

	var dto domain.ParkingSlotDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.slotService.Update(c.Request.Context(), adminID, slotID, dto)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy chỗ đỗ xe để cập nhật"})
			return
		}
		if errors.Is(err, repository.ErrDuplicateEntry) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật chỗ đỗ xe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slot)
}

// PATCH /api/v1/parking-slots/:id/status (admin) — đổi nhanh trạng thái
// (ví dụ đưa slot vào maintenance) mà không cần gửi cả DTO.
func (h *ParkingSlotHandler) UpdateParkingSlotStatus(c *gin.Context) {
	adminID, _ := middleware.CurrentUserID(c)

	slotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slot ID không hợp lệ"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required,oneof=available reserved occupied maintenance"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.slotService.UpdateStatus(c.Request.Context(), adminID, slotID, domain.SlotStatus(body.Status)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy chỗ đỗ xe"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái chỗ đỗ xe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": slotID, "status": body.Status})
}

// DELETE /api/v1/parking-slots/:id (admin)
func (h *ParkingSlotHandler) DeleteParkingSlot(c *gin.Context) {
	adminID, _ := middleware.CurrentUserID(c)

	slotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slot ID không hợp lệ"})
		return
	}

	if err := h.slotService.Delete(c.Request.Context(), adminID, slotID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy chỗ đỗ xe để xóa"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa chỗ đỗ xe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
