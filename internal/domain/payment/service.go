package payment

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
)

// PaymentService defines plan/actual registration and the delinquency-annotated listing
type PaymentService interface {
	// Upsert merges the request into the row keyed by (subject_kind, subject_id, period)
	Upsert(ctx context.Context, req UpsertPaymentRequest) (PlanActualResponse, error)

	// ListAnnotated classifies every scheduled income row of the period as seen at now
	ListAnnotated(ctx context.Context, p period.Period, now time.Time) (ListPaymentsResponse, error)
}
