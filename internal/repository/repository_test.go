package repository

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/escala-acompanhantes/backend/internal/config"
	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, *FileStore) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Lock.WaitTimeout = 5

	store, err := NewFileStore(filepath.Join(t.TempDir(), "data", "db.json"))
	require.NoError(t, err)

	repo := NewRepository(cfg, store, NewMemoryLocker())
	repo.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }

	return repo, store
}

func createCaregiver(t *testing.T, repo *Repository, name string) *domain.Caregiver {
	t.Helper()
	c := &domain.Caregiver{Name: name, Phone: "11987654321", Color: "#0D9488"}
	require.NoError(t, repo.CreateCaregiver(c))
	return c
}

func TestEmptyStoreReadsEmptyCollections(t *testing.T) {
	repo, _ := newTestRepository(t)

	caregivers, err := repo.GetAllCaregivers()
	require.NoError(t, err)
	assert.NotNil(t, caregivers)
	assert.Empty(t, caregivers)

	doc, err := repo.ExportDocument()
	require.NoError(t, err)
	assert.Equal(t, domain.NewDocument(), doc)
}

func TestCaregiverLifecycle(t *testing.T) {
	repo, _ := newTestRepository(t)

	ana := createCaregiver(t, repo, "Ana")
	bia := createCaregiver(t, repo, "Bia")
	assert.Equal(t, int64(1), ana.ID)
	assert.Equal(t, int64(2), bia.ID)

	got, err := repo.GetCaregiverByID(bia.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bia", got.Name)

	got.Name = "Beatriz"
	got.Availability = domain.Availability{domain.Monday: {Active: true, Periods: []string{domain.PeriodEvening, domain.PeriodMorning}}}
	require.NoError(t, repo.UpdateCaregiver(got))

	got, err = repo.GetCaregiverByID(bia.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beatriz", got.Name)
	assert.Len(t, got.Availability, 7)
	assert.Equal(t, []string{domain.PeriodMorning, domain.PeriodEvening}, got.Availability[domain.Monday].Periods)

	_, err = repo.GetCaregiverByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.UpdateCaregiver(&domain.Caregiver{ID: 99}), ErrNotFound)
	assert.ErrorIs(t, repo.DeleteCaregiver(99), ErrNotFound)
}

func TestIDsAreNeverReusedWhileTheMaxSurvives(t *testing.T) {
	repo, _ := newTestRepository(t)

	createCaregiver(t, repo, "Ana")
	bia := createCaregiver(t, repo, "Bia")
	carla := createCaregiver(t, repo, "Carla")

	require.NoError(t, repo.DeleteCaregiver(bia.ID))
	duda := createCaregiver(t, repo, "Duda")
	assert.Equal(t, carla.ID+1, duda.ID)
}

func TestDeleteCaregiverCascadesShifts(t *testing.T) {
	repo, _ := newTestRepository(t)

	ana := createCaregiver(t, repo, "Ana")
	bia := createCaregiver(t, repo, "Bia")

	for _, s := range []*domain.Shift{
		{CaregiverID: ana.ID, Date: "2026-10-15", Period: domain.PeriodMorning, StartTime: "07:00", EndTime: "12:00"},
		{CaregiverID: bia.ID, Date: "2026-10-15", Period: domain.PeriodAfternoon, StartTime: "13:00", EndTime: "18:00"},
		{CaregiverID: ana.ID, Date: "2026-10-16", Period: domain.PeriodMorning, StartTime: "07:00", EndTime: "12:00"},
	} {
		require.NoError(t, repo.CreateShift(s))
	}

	require.NoError(t, repo.DeleteCaregiver(ana.ID))

	shifts, err := repo.GetAllShifts()
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, bia.ID, shifts[0].CaregiverID)
}

func TestShiftQueries(t *testing.T) {
	repo, _ := newTestRepository(t)
	ana := createCaregiver(t, repo, "Ana")
	bia := createCaregiver(t, repo, "Bia")

	batch := []*domain.Shift{
		{CaregiverID: ana.ID, Date: "2026-10-11", Period: domain.PeriodMorning},
		{CaregiverID: ana.ID, Date: "2026-10-12", Period: domain.PeriodMorning},
		{CaregiverID: bia.ID, Date: "2026-10-15", Period: domain.PeriodEvening},
		{CaregiverID: bia.ID, Date: "2026-10-18", Period: domain.PeriodOvernight},
		{CaregiverID: ana.ID, Date: "2026-10-19", Period: domain.PeriodMorning},
	}
	require.NoError(t, repo.CreateShifts(batch))
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, []int64{batch[0].ID, batch[1].ID, batch[2].ID, batch[3].ID, batch[4].ID})

	week, err := repo.GetShiftsBetween("2026-10-12", "2026-10-18")
	require.NoError(t, err)
	assert.Len(t, week, 3)

	day, err := repo.GetShiftsByDate("2026-10-15")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, domain.PeriodEvening, day[0].Period)

	byAna, err := repo.GetShiftsByCaregiver(ana.ID)
	require.NoError(t, err)
	assert.Len(t, byAna, 3)

	none, err := repo.GetShiftsByDate("2027-01-01")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestShiftRequiresExistingCaregiver(t *testing.T) {
	repo, _ := newTestRepository(t)
	ana := createCaregiver(t, repo, "Ana")

	err := repo.CreateShift(&domain.Shift{CaregiverID: 42, Date: "2026-10-15", Period: domain.PeriodMorning})
	assert.ErrorIs(t, err, ErrCaregiverNotFound)

	// one bad entry rejects the whole batch
	err = repo.CreateShifts([]*domain.Shift{
		{CaregiverID: ana.ID, Date: "2026-10-15", Period: domain.PeriodMorning},
		{CaregiverID: 42, Date: "2026-10-15", Period: domain.PeriodAfternoon},
	})
	assert.ErrorIs(t, err, ErrCaregiverNotFound)

	shifts, err := repo.GetAllShifts()
	require.NoError(t, err)
	assert.Empty(t, shifts)

	s := &domain.Shift{CaregiverID: ana.ID, Date: "2026-10-15", Period: domain.PeriodMorning}
	require.NoError(t, repo.CreateShift(s))
	s.CaregiverID = 42
	assert.ErrorIs(t, repo.UpdateShift(s), ErrCaregiverNotFound)
}

func TestUpdateAndDeleteShift(t *testing.T) {
	repo, _ := newTestRepository(t)
	ana := createCaregiver(t, repo, "Ana")

	s := &domain.Shift{CaregiverID: ana.ID, Date: "2026-10-15", Period: domain.PeriodMorning, StartTime: "07:00", EndTime: "12:00"}
	require.NoError(t, repo.CreateShift(s))

	s.CheckinTime = "07:05"
	require.NoError(t, repo.UpdateShift(s))

	got, err := repo.GetShiftByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "07:05", got.CheckinTime)

	require.NoError(t, repo.DeleteShift(s.ID))
	_, err = repo.GetShiftByID(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteShift(s.ID), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateShift(s), ErrNotFound)
}

func TestCareLogEntries(t *testing.T) {
	repo, _ := newTestRepository(t)

	e := &domain.CareLogEntry{Date: "2026-10-15", Type: domain.CareLogIncident, Title: "Queda", Severity: domain.SeverityModerate}
	require.NoError(t, repo.CreateCareLogEntry(e))
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC), e.CreatedAt)

	got, err := repo.GetCareLogEntryByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Queda", got.Title)

	require.NoError(t, repo.DeleteCareLogEntry(e.ID))
	assert.ErrorIs(t, repo.DeleteCareLogEntry(e.ID), ErrNotFound)

	entries, err := repo.GetAllCareLogEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRestoreDocumentReplacesEverything(t *testing.T) {
	repo, _ := newTestRepository(t)
	createCaregiver(t, repo, "Ana")

	restored := &domain.Document{
		Caregivers: []domain.Caregiver{{ID: 7, Name: "Gabi"}},
		Shifts:     []domain.Shift{{ID: 3, CaregiverID: 7, Date: "2026-10-20", Period: domain.PeriodMorning}},
	}
	require.NoError(t, repo.RestoreDocument(restored))

	doc, err := repo.ExportDocument()
	require.NoError(t, err)
	assert.Equal(t, restored.Caregivers, doc.Caregivers)
	assert.Equal(t, restored.Shifts, doc.Shifts)
	assert.NotNil(t, doc.CareLogEntries)

	next := createCaregiver(t, repo, "Helena")
	assert.Equal(t, int64(8), next.ID)
}

func TestConcurrentWritesAreSerialized(t *testing.T) {
	repo, _ := newTestRepository(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.CreateCaregiver(&domain.Caregiver{Name: "Acompanhante"}))
		}()
	}
	wg.Wait()

	caregivers, err := repo.GetAllCaregivers()
	require.NoError(t, err)
	require.Len(t, caregivers, writers)

	seen := map[int64]bool{}
	for _, c := range caregivers {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
}

func TestModifyCaregiverIsAtomic(t *testing.T) {
	repo, _ := newTestRepository(t)
	ana := createCaregiver(t, repo, "Ana")

	var wg sync.WaitGroup
	for _, p := range domain.PeriodIDs() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ModifyCaregiver(ana.ID, func(c *domain.Caregiver) error {
				if c.Availability == nil {
					c.Availability = domain.NewAvailability()
				}
				c.Availability.TogglePeriod(domain.Sunday, p)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetCaregiverByID(ana.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DayAvailability{Active: true, Periods: domain.PeriodIDs()}, got.Availability[domain.Sunday])

	_, err = repo.ModifyCaregiver(99, func(c *domain.Caregiver) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModifyShift(t *testing.T) {
	repo, _ := newTestRepository(t)
	ana := createCaregiver(t, repo, "Ana")

	s := &domain.Shift{CaregiverID: ana.ID, Date: "2026-10-15", Period: domain.PeriodMorning, StartTime: "07:00", EndTime: "12:00"}
	require.NoError(t, repo.CreateShift(s))

	updated, err := repo.ModifyShift(s.ID, func(s *domain.Shift) error {
		s.CheckoutTime = "12:10"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "12:10", updated.CheckoutTime)
	assert.Equal(t, s.ID, updated.ID)

	_, err = repo.ModifyShift(s.ID, func(s *domain.Shift) error {
		s.CaregiverID = 42
		return nil
	})
	assert.ErrorIs(t, err, ErrCaregiverNotFound)

	got, err := repo.GetShiftByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.CaregiverID)
	assert.Equal(t, "12:10", got.CheckoutTime)
}
