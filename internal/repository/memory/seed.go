package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

// Seed is the master data a memory store starts with.
type Seed struct {
	Employees    []SeedEmployee    `json:"employees"`
	Programs     []SeedProgram     `json:"programs"`
	Participants []SeedParticipant `json:"participants"`
}

type SeedEmployee struct {
	ID         string           `json:"id"`
	FullName   string           `json:"full_name"`
	BaseSalary *decimal.Decimal `json:"base_salary"`
	Status     string           `json:"status"`
}

type SeedProgram struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

type SeedParticipant struct {
	ID             string           `json:"id"`
	FullName       string           `json:"full_name"`
	ProgramID      string           `json:"program_id"`
	OverrideTariff *decimal.Decimal `json:"override_tariff"`
	StartPeriod    *string          `json:"start_period"` // YYYY-MM
	EndPeriod      *string          `json:"end_period"`
	Active         *bool            `json:"active"` // defaults to true
}

// LoadSeedFile reads a JSON seed file and applies it to the store.
func (s *Store) LoadSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	return s.ApplySeed(seed)
}

func (s *Store) ApplySeed(seed Seed) error {
	for _, e := range seed.Employees {
		status := employee.EmploymentStatus(e.Status)
		if status == "" {
			status = employee.EmploymentStatusActive
		}
		if !status.IsValid() {
			return fmt.Errorf("employee %s: invalid status %q", e.ID, e.Status)
		}
		s.PutEmployee(employee.Employee{ID: e.ID, FullName: e.FullName, BaseSalary: e.BaseSalary, Status: status})
	}

	for _, p := range seed.Programs {
		s.PutProgram(payment.Program{ID: p.ID, Name: p.Name, DefaultPrice: p.DefaultPrice})
	}

	for _, p := range seed.Participants {
		participant := payment.Participant{
			ID:             p.ID,
			FullName:       p.FullName,
			ProgramID:      p.ProgramID,
			OverrideTariff: p.OverrideTariff,
			Active:         p.Active == nil || *p.Active,
		}
		if p.StartPeriod != nil {
			start, err := period.Parse(*p.StartPeriod)
			if err != nil {
				return fmt.Errorf("participant %s: %w", p.ID, err)
			}
			participant.StartPeriod = &start
		}
		if p.EndPeriod != nil {
			end, err := period.Parse(*p.EndPeriod)
			if err != nil {
				return fmt.Errorf("participant %s: %w", p.ID, err)
			}
			participant.EndPeriod = &end
		}
		s.PutParticipant(participant)
	}
	return nil
}
