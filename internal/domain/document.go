package domain

// Document is the whole persisted state of a household.
type Document struct {
	Caregivers     []Caregiver    `json:"acompanhantes"`
	Shifts         []Shift        `json:"turnos"`
	CareLogEntries []CareLogEntry `json:"registrosAcompanhamento"`
}

func NewDocument() *Document {
	return &Document{
		Caregivers:     []Caregiver{},
		Shifts:         []Shift{},
		CareLogEntries: []CareLogEntry{},
	}
}

// EnsureCollections replaces nil collections so the document always serializes arrays.
func (d *Document) EnsureCollections() {
	if d.Caregivers == nil {
		d.Caregivers = []Caregiver{}
	}
	if d.Shifts == nil {
		d.Shifts = []Shift{}
	}
	if d.CareLogEntries == nil {
		d.CareLogEntries = []CareLogEntry{}
	}
}

func (d *Document) NextCaregiverID() int64 {
	var maxID int64
	for _, c := range d.Caregivers {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID + 1
}

func (d *Document) NextShiftID() int64 {
	var maxID int64
	for _, s := range d.Shifts {
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	return maxID + 1
}

func (d *Document) NextCareLogID() int64 {
	var maxID int64
	for _, e := range d.CareLogEntries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

func (d *Document) CaregiverIndex(id int64) int {
	for i := range d.Caregivers {
		if d.Caregivers[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) ShiftIndex(id int64) int {
	for i := range d.Shifts {
		if d.Shifts[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) CareLogIndex(id int64) int {
	for i := range d.CareLogEntries {
		if d.CareLogEntries[i].ID == id {
			return i
		}
	}
	return -1
}
