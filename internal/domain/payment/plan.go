package payment

import "github.com/shopspring/decimal"

// PlanSource records which tier of the fallback chain priced a row.
type PlanSource string

const (
	PlanSourceExplicit       PlanSource = "explicit"
	PlanSourceOverride       PlanSource = "override_tariff"
	PlanSourceProgramDefault PlanSource = "program_default"
	PlanSourceNone           PlanSource = "none"
)

// PlanResolver prices rows through the chain
// explicit period plan -> participant override tariff -> program default price.
// Report and dashboard share one resolver so both see the same numbers.
type PlanResolver struct {
	participants map[string]Participant
	programs     map[string]Program
}

func NewPlanResolver(participants []Participant, programs []Program) PlanResolver {
	r := PlanResolver{
		participants: make(map[string]Participant, len(participants)),
		programs:     make(map[string]Program, len(programs)),
	}
	for _, p := range participants {
		r.participants[p.ID] = p
	}
	for _, p := range programs {
		r.programs[p.ID] = p
	}
	return r
}

// Resolve returns the plan amount for a record. A nil or non-positive amount
// at one tier defers to the next; with no tier available the plan is zero.
func (r PlanResolver) Resolve(rec PlanActualRecord) (decimal.Decimal, PlanSource) {
	if set(rec.PlanAmount) {
		return *rec.PlanAmount, PlanSourceExplicit
	}
	if rec.SubjectKind != SubjectParticipant {
		return decimal.Zero, PlanSourceNone
	}

	programID := rec.Category
	if participant, ok := r.participants[rec.SubjectID]; ok {
		if set(participant.OverrideTariff) {
			return *participant.OverrideTariff, PlanSourceOverride
		}
		if participant.ProgramID != "" {
			programID = participant.ProgramID
		}
	}
	if program, ok := r.programs[programID]; ok {
		return program.DefaultPrice, PlanSourceProgramDefault
	}
	return decimal.Zero, PlanSourceNone
}

func (r PlanResolver) Participant(id string) (Participant, bool) {
	p, ok := r.participants[id]
	return p, ok
}

func (r PlanResolver) Program(id string) (Program, bool) {
	p, ok := r.programs[id]
	return p, ok
}

// Participants returns every known participant, unordered.
func (r PlanResolver) Participants() []Participant {
	out := make([]Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p)
	}
	return out
}

func set(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}
