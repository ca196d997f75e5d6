package usecase

import (
	"rentpay/internal/data/repository"
	"rentpay/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Confirmation   ConfirmationService
	Reconciliation ReconciliationService
	Payment        PaymentService
}

func NewService(repo *repository.Repository, provider PaymentProvider, config *utils.Config, log *zap.Logger) *Service {
	policy := CapturePolicy{AcceptProcessing: config.Payments.AcceptProcessingCapture}

	return &Service{
		Confirmation:   NewConfirmationService(repo, provider, policy, log),
		Reconciliation: NewReconciliationService(repo, log),
		Payment:        NewPaymentService(repo, log),
	}
}
