package payroll

import "context"

// PayrollService defines business logic for payroll computation and lifecycle
type PayrollService interface {
	// Preview computes the payroll line without persisting it
	Preview(ctx context.Context, req ComputePayrollRequest) (PayrollLineResponse, error)

	// Create computes and persists a pending record; a second call for the
	// same employee and period fails with ErrDuplicatePeriod
	Create(ctx context.Context, req ComputePayrollRequest) (PayrollRecordResponse, error)

	// Generate creates records for all active employees (or the given subset)
	Generate(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)

	Get(ctx context.Context, id string) (PayrollRecordResponse, error)
	List(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)

	// UpdateStatus moves a record through its lifecycle; entering paid books a linked salary expense
	UpdateStatus(ctx context.Context, req UpdatePayrollStatusRequest) (PayrollRecordResponse, error)

	// Delete removes the record and retracts its salary expense on a best-effort basis
	Delete(ctx context.Context, id string) error
}
