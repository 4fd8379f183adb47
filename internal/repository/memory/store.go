// Package memory is an in-process record store. It enforces the same natural
// keys as the PostgreSQL schema and is safe for concurrent use.
package memory

import (
	"sync"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payroll"
)

type attendanceKey struct {
	employeeID string
	workDate   string
}

type payrollKey struct {
	employeeID string
	month      int
	year       int
}

type planKey struct {
	kind      payment.SubjectKind
	subjectID string
	month     int
	year      int
}

type Store struct {
	mu sync.RWMutex

	employees    map[string]employee.Employee
	attendance   map[attendanceKey]attendance.AttendanceRecord
	payroll      map[string]payroll.PayrollRecord
	payrollKeys  map[payrollKey]string
	plans        map[planKey]payment.PlanActualRecord
	participants map[string]payment.Participant
	programs     map[string]payment.Program
	expenses     map[string]expense.ExpenseRecord
}

func NewStore() *Store {
	return &Store{
		employees:    make(map[string]employee.Employee),
		attendance:   make(map[attendanceKey]attendance.AttendanceRecord),
		payroll:      make(map[string]payroll.PayrollRecord),
		payrollKeys:  make(map[payrollKey]string),
		plans:        make(map[planKey]payment.PlanActualRecord),
		participants: make(map[string]payment.Participant),
		programs:     make(map[string]payment.Program),
		expenses:     make(map[string]expense.ExpenseRecord),
	}
}

// PutEmployee inserts or replaces master data owned by the HR subsystem.
func (s *Store) PutEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

func (s *Store) PutParticipant(p payment.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[p.ID] = p
}

func (s *Store) PutProgram(p payment.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programs[p.ID] = p
}
