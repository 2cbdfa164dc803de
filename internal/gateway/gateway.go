package gateway

import (
	"context"

	"github.com/google/uuid"
)

// Result là kết quả trả về từ cổng thanh toán bên ngoài.
type Result struct {
	Success       bool
	TransactionID string
}

// Gateway là capability thanh toán: mọi hiện thực (mock đồng bộ, client
// gateway thật) đều chấp nhận được miễn là trả về cặp {success, transactionId}.
type Gateway interface {
	Charge(ctx context.Context, amount float64, method string) (Result, error)
}

// SimulatedGateway luôn chấp nhận giao dịch và phát transaction id mới.
// Dùng cho môi trường dev/demo khi chưa tích hợp gateway thật.
type SimulatedGateway struct{}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{}
}

func (g *SimulatedGateway) Charge(ctx context.Context, amount float64, method string) (Result, error) {
	return Result{
		Success:       true,
		TransactionID: "TXN-" + uuid.New().String(),
	}, nil
}
