package payment

import "errors"

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrProgramNotFound     = errors.New("program not found")
	ErrPlanActualNotFound  = errors.New("plan/actual record not found")
)
