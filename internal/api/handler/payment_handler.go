package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chiesa14/pvms-ne/internal/api/middleware"
	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
	"github.com/Chiesa14/pvms-ne/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(ps *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// POST /api/v1/payments/initiate
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được người dùng"})
		return
	}

	var dto domain.InitiatePaymentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentService.Initiate(c.Request.Context(), userID, dto)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy reservation"})
		case errors.Is(err, service.ErrReservationAlreadyPaid), errors.Is(err, service.ErrReservationNotPriced):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrPaymentFailed):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error(), "payment": payment})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xử lý thanh toán", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// POST /api/v1/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var dto domain.VerifyPaymentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentService.Verify(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy giao dịch"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi đối soát giao dịch"})
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GET /api/v1/payments/mine
func (h *PaymentHandler) ListMyPayments(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được người dùng"})
		return
	}

	var filter domain.PaymentFilterDTO
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

	payments, total, err := h.paymentService.ListByUser(c.Request.Context(), userID, filter, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách thanh toán"})
		return
	}
	c.JSON(http.StatusOK, domain.NewPage(total, q.Page, q.Limit, payments))
}

// GET /api/v1/payments (admin)
func (h *PaymentHandler) ListAllPayments(c *gin.Context) {
	var filter domain.PaymentFilterDTO
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

	payments, total, err := h.paymentService.ListAll(c.Request.Context(), filter, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách thanh toán"})
		return
	}
	c.JSON(http.StatusOK, domain.NewPage(total, q.Page, q.Limit, payments))
}
