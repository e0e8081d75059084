package repository

import (
	"github.com/escala-acompanhantes/backend/internal/domain"
)

func (r *Repository) GetAllShifts() ([]domain.Shift, error) {
	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	return doc.Shifts, nil
}

// GetShiftsBetween returns the shifts dated within [startDate, endDate], both inclusive.
func (r *Repository) GetShiftsBetween(startDate, endDate string) ([]domain.Shift, error) {
	return r.filterShifts(func(s *domain.Shift) bool {
		return s.Date >= startDate && s.Date <= endDate
	})
}

func (r *Repository) GetShiftsByDate(date string) ([]domain.Shift, error) {
	return r.filterShifts(func(s *domain.Shift) bool {
		return s.Date == date
	})
}

func (r *Repository) GetShiftsByCaregiver(caregiverID int64) ([]domain.Shift, error) {
	return r.filterShifts(func(s *domain.Shift) bool {
		return s.CaregiverID == caregiverID
	})
}

func (r *Repository) filterShifts(keep func(s *domain.Shift) bool) ([]domain.Shift, error) {
	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	shifts := []domain.Shift{}
	for i := range doc.Shifts {
		if keep(&doc.Shifts[i]) {
			shifts = append(shifts, doc.Shifts[i])
		}
	}

	return shifts, nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	i := doc.ShiftIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	return &doc.Shifts[i], nil
}

// CreateShift stores a shift for an existing caregiver; s.ID is set on success.
func (r *Repository) CreateShift(s *domain.Shift) error {
	return r.CreateShifts([]*domain.Shift{s})
}

// CreateShifts stores the whole batch in one write or none of it.
func (r *Repository) CreateShifts(shifts []*domain.Shift) error {
	return r.mutate(func(doc *domain.Document) error {
		for _, s := range shifts {
			if doc.CaregiverIndex(s.CaregiverID) < 0 {
				return ErrCaregiverNotFound
			}
		}

		next := doc.NextShiftID()
		for _, s := range shifts {
			s.ID = next
			next++
			doc.Shifts = append(doc.Shifts, *s)
		}
		return nil
	})
}

func (r *Repository) UpdateShift(s *domain.Shift) error {
	return r.mutate(func(doc *domain.Document) error {
		i := doc.ShiftIndex(s.ID)
		if i < 0 {
			return ErrNotFound
		}
		if doc.CaregiverIndex(s.CaregiverID) < 0 {
			return ErrCaregiverNotFound
		}
		doc.Shifts[i] = *s
		return nil
	})
}

func (r *Repository) DeleteShift(id int64) error {
	return r.mutate(func(doc *domain.Document) error {
		i := doc.ShiftIndex(id)
		if i < 0 {
			return ErrNotFound
		}
		doc.Shifts = append(doc.Shifts[:i], doc.Shifts[i+1:]...)
		return nil
	})
}

// ModifyShift applies fn to the stored shift under the document lock and saves the result.
func (r *Repository) ModifyShift(id int64, fn func(s *domain.Shift) error) (*domain.Shift, error) {
	var updated domain.Shift

	err := r.mutate(func(doc *domain.Document) error {
		i := doc.ShiftIndex(id)
		if i < 0 {
			return ErrNotFound
		}

		s := doc.Shifts[i]
		if err := fn(&s); err != nil {
			return err
		}
		s.ID = id
		if doc.CaregiverIndex(s.CaregiverID) < 0 {
			return ErrCaregiverNotFound
		}

		doc.Shifts[i] = s
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
