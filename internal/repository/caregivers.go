package repository

import (
	"github.com/escala-acompanhantes/backend/internal/domain"
)

func (r *Repository) GetAllCaregivers() ([]domain.Caregiver, error) {
	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	return doc.Caregivers, nil
}

func (r *Repository) GetCaregiverByID(id int64) (*domain.Caregiver, error) {
	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	i := doc.CaregiverIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	return &doc.Caregivers[i], nil
}

// CreateCaregiver assigns the next id and stores the caregiver; c.ID is set on success.
func (r *Repository) CreateCaregiver(c *domain.Caregiver) error {
	return r.mutate(func(doc *domain.Document) error {
		c.ID = doc.NextCaregiverID()
		if c.Availability != nil {
			c.Availability = c.Availability.Normalize()
		}
		doc.Caregivers = append(doc.Caregivers, *c)
		return nil
	})
}

func (r *Repository) UpdateCaregiver(c *domain.Caregiver) error {
	return r.mutate(func(doc *domain.Document) error {
		i := doc.CaregiverIndex(c.ID)
		if i < 0 {
			return ErrNotFound
		}
		if c.Availability != nil {
			c.Availability = c.Availability.Normalize()
		}
		doc.Caregivers[i] = *c
		return nil
	})
}

// DeleteCaregiver removes the caregiver together with every shift assigned to them.
func (r *Repository) DeleteCaregiver(id int64) error {
	return r.mutate(func(doc *domain.Document) error {
		i := doc.CaregiverIndex(id)
		if i < 0 {
			return ErrNotFound
		}
		doc.Caregivers = append(doc.Caregivers[:i], doc.Caregivers[i+1:]...)

		kept := doc.Shifts[:0]
		for _, s := range doc.Shifts {
			if s.CaregiverID != id {
				kept = append(kept, s)
			}
		}
		doc.Shifts = kept

		return nil
	})
}

// ModifyCaregiver applies fn to the stored caregiver under the document lock and saves the
// result, so read-modify-write updates like availability toggles cannot lose each other.
func (r *Repository) ModifyCaregiver(id int64, fn func(c *domain.Caregiver) error) (*domain.Caregiver, error) {
	var updated domain.Caregiver

	err := r.mutate(func(doc *domain.Document) error {
		i := doc.CaregiverIndex(id)
		if i < 0 {
			return ErrNotFound
		}

		c := doc.Caregivers[i]
		if err := fn(&c); err != nil {
			return err
		}
		c.ID = id
		if c.Availability != nil {
			c.Availability = c.Availability.Normalize()
		}

		doc.Caregivers[i] = c
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
