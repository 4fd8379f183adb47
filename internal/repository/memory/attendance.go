package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := attendanceKey{employeeID: record.EmployeeID, workDate: record.WorkDate.Format("2006-01-02")}
	if existing, ok := r.store.attendance[key]; ok {
		existing.ShiftCategory = record.ShiftCategory
		existing.UpdatedAt = record.UpdatedAt
		r.store.attendance[key] = existing
		return existing, nil
	}

	r.store.attendance[key] = record
	return record, nil
}

func (r *attendanceRepository) CountByCategory(ctx context.Context, employeeID string, p period.Period, category attendance.ShiftCategory) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, rec := range r.store.attendance {
		if rec.EmployeeID == employeeID && rec.ShiftCategory == category && period.FromTime(rec.WorkDate).Equal(p) {
			count++
		}
	}
	return count, nil
}

func (r *attendanceRepository) ListByEmployeePeriod(ctx context.Context, employeeID string, p period.Period) ([]attendance.AttendanceRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.AttendanceRecord
	for _, rec := range r.store.attendance {
		if rec.EmployeeID == employeeID && period.FromTime(rec.WorkDate).Equal(p) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkDate.Before(out[j].WorkDate) })
	return out, nil
}
