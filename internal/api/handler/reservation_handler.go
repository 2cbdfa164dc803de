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

type ReservationHandler struct {
	reservationService *service.ReservationService
}

func NewReservationHandler(rs *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

// POST /api/v1/reservations
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được người dùng"})
		return
	}

	var dto domain.CreateReservationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), userID, dto)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrSlotUnavailable), errors.Is(err, repository.ErrSlotConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo reservation", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// GET /api/v1/reservations/mine
func (h *ReservationHandler) ListMyReservations(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được người dùng"})
		return
	}

	var filter domain.ReservationFilterDTO
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

	reservations, total, err := h.reservationService.ListByUser(c.Request.Context(), userID, filter, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách reservation"})
		return
	}
	c.JSON(http.StatusOK, domain.NewPage(total, q.Page, q.Limit, reservations))
}

// GET /api/v1/reservations (admin)
func (h *ReservationHandler) ListAllReservations(c *gin.Context) {
	var filter domain.ReservationFilterDTO
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

	reservations, total, err := h.reservationService.ListAll(c.Request.Context(), filter, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách reservation"})
		return
	}
	c.JSON(http.StatusOK, domain.NewPage(total, q.Page, q.Limit, reservations))
}

// PATCH /api/v1/reservations/:id/acknowledge (admin)
func (h *ReservationHandler) AcknowledgeReservation(c *gin.Context) {
	adminID, _ := middleware.CurrentUserID(c)

	reservationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation ID không hợp lệ"})
		return
	}

	reservation, ticket, err := h.reservationService.Acknowledge(c.Request.Context(), reservationID, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy reservation"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xác nhận reservation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": reservation, "ticket": ticket})
}

// PATCH /api/v1/reservations/:id/revoke (admin)
func (h *ReservationHandler) RevokeReservation(c *gin.Context) {
	adminID, _ := middleware.CurrentUserID(c)

	reservationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation ID không hợp lệ"})
		return
	}

	reservation, err := h.reservationService.Revoke(c.Request.Context(), reservationID, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy reservation"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể thu hồi reservation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// PATCH /api/v1/reservations/:id/cancel
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được người dùng"})
		return
	}

	reservationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation ID không hợp lệ"})
		return
	}

	reservation, err := h.reservationService.Cancel(c.Request.Context(), reservationID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy reservation"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể hủy reservation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reservation)
}
