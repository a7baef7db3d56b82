package db

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"vessels/internal/apperror"
	"vessels/internal/fleet"
	"vessels/models"
)

// MemoryStorage is an in-process store with the same contract as Storage:
// foreign keys are enforced and deletes fan out to dependent rows.
type MemoryStorage struct {
	mu sync.RWMutex

	lastID    map[string]int64
	companies map[int64]models.Company
	persons   map[int64]models.Person
	ships     map[int64]models.Ship
	harbours  map[int64]models.Harbour
	visits    map[int64]models.Visit
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		lastID:    make(map[string]int64),
		companies: make(map[int64]models.Company),
		persons:   make(map[int64]models.Person),
		ships:     make(map[int64]models.Ship),
		harbours:  make(map[int64]models.Harbour),
		visits:    make(map[int64]models.Visit),
	}
}

func (m *MemoryStorage) nextID(table string) int64 {
	m.lastID[table]++
	return m.lastID[table]
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneCompany(c models.Company) models.Company {
	c.Name = clone(c.Name)
	return c
}

func clonePerson(p models.Person) models.Person {
	p.Name = clone(p.Name)
	p.Email = clone(p.Email)
	p.Phone = clone(p.Phone)
	return p
}

func cloneShip(s models.Ship) models.Ship {
	s.Name = clone(s.Name)
	s.Tonnage = clone(s.Tonnage)
	s.MaxLoadDraft = clone(s.MaxLoadDraft)
	s.DryDraft = clone(s.DryDraft)
	s.Flag = clone(s.Flag)
	s.Beam = clone(s.Beam)
	s.Length = clone(s.Length)
	s.YearBuilt = clone(s.YearBuilt)
	s.Type = clone(s.Type)
	return s
}

func cloneHarbour(h models.Harbour) models.Harbour {
	h.Name = clone(h.Name)
	h.MaxBerthDepth = clone(h.MaxBerthDepth)
	h.HarbourMaster = clone(h.HarbourMaster)
	h.City = clone(h.City)
	h.Country = clone(h.Country)
	return h
}

func cloneVisit(v models.Visit) models.Visit {
	v.EntryTime = clone(v.EntryTime)
	v.ExitTime = clone(v.ExitTime)
	return v
}

// sortedValues returns the map values ordered by key.
func sortedValues[V any](rows map[int64]V, copyFn func(V) V) []V {
	out := make([]V, 0, len(rows))
	for _, id := range slices.Sorted(maps.Keys(rows)) {
		out = append(out, copyFn(rows[id]))
	}
	return out
}

// Company

func (m *MemoryStorage) CreateCompany(_ context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID("company")
	m.companies[c.ID] = cloneCompany(*c)
	return nil
}

func (m *MemoryStorage) GetCompany(_ context.Context, id int64) (*models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.companies[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	c = cloneCompany(c)
	return &c, nil
}

func (m *MemoryStorage) ListCompanies(_ context.Context) ([]models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedValues(m.companies, cloneCompany), nil
}

func (m *MemoryStorage) DeleteCompany(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[id]; !ok {
		return apperror.ErrNotFound
	}
	for shipID, s := range m.ships {
		if s.CompanyID == id {
			m.deleteShipLocked(shipID)
		}
	}
	maps.DeleteFunc(m.persons, func(_ int64, p models.Person) bool { return p.CompanyID == id })
	delete(m.companies, id)
	return nil
}

// Person

func (m *MemoryStorage) CreatePerson(_ context.Context, p *models.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[p.CompanyID]; !ok {
		return apperror.ErrReference
	}
	p.ID = m.nextID("person")
	m.persons[p.ID] = clonePerson(*p)
	return nil
}

func (m *MemoryStorage) ListPersons(_ context.Context) ([]models.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedValues(m.persons, clonePerson), nil
}

func (m *MemoryStorage) DeletePerson(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.persons[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(m.persons, id)
	return nil
}

// Ship

func (m *MemoryStorage) CreateShip(_ context.Context, s *models.Ship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[s.CompanyID]; !ok {
		return apperror.ErrReference
	}
	s.ID = m.nextID("ship")
	m.ships[s.ID] = cloneShip(*s)
	return nil
}

func (m *MemoryStorage) GetShip(_ context.Context, id int64) (*models.Ship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.ships[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	s = cloneShip(s)
	return &s, nil
}

func (m *MemoryStorage) UpdateShip(_ context.Context, s *models.Ship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ships[s.ID]; !ok {
		return apperror.ErrNotFound
	}
	if _, ok := m.companies[s.CompanyID]; !ok {
		return apperror.ErrReference
	}
	m.ships[s.ID] = cloneShip(*s)
	return nil
}

func (m *MemoryStorage) ListShips(_ context.Context, f models.ShipFilter) ([]models.Ship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := strings.ToLower(f.Search)
	ships := []models.Ship{}
	for _, s := range sortedValues(m.ships, cloneShip) {
		if f.Type != nil && (s.Type == nil || *s.Type != *f.Type) {
			continue
		}
		if needle != "" && !shipMatches(s, needle) {
			continue
		}
		ships = append(ships, s)
	}
	return ships, nil
}

func shipMatches(s models.Ship, needle string) bool {
	var fields []string
	if s.Name != nil {
		fields = append(fields, *s.Name)
	}
	if s.Type != nil {
		fields = append(fields, string(*s.Type))
	}
	if s.YearBuilt != nil {
		fields = append(fields, *s.YearBuilt)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func (m *MemoryStorage) DeleteShip(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ships[id]; !ok {
		return apperror.ErrNotFound
	}
	m.deleteShipLocked(id)
	return nil
}

func (m *MemoryStorage) deleteShipLocked(id int64) {
	maps.DeleteFunc(m.visits, func(_ int64, v models.Visit) bool { return v.ShipID == id })
	delete(m.ships, id)
}

func (m *MemoryStorage) ListShipVisits(_ context.Context, shipID int64) ([]models.ShipVisit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.ShipVisit{}
	for _, v := range sortedValues(m.visits, cloneVisit) {
		if v.ShipID != shipID {
			continue
		}
		out = append(out, models.ShipVisit{
			HarbourName: clone(m.harbours[v.HarbourID].Name),
			EntryTime:   v.EntryTime,
			ExitTime:    v.ExitTime,
		})
	}
	return out, nil
}

func (m *MemoryStorage) ShipsDockedAt(_ context.Context, harbourID int64, at time.Time) ([]models.Ship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := fleet.DockedShipIDs(sortedValues(m.visits, cloneVisit), harbourID, at)
	ships := make([]models.Ship, 0, len(ids))
	for _, id := range ids {
		ships = append(ships, cloneShip(m.ships[id]))
	}
	slices.SortFunc(ships, func(a, b models.Ship) int { return cmp.Compare(a.ID, b.ID) })
	return ships, nil
}

// Harbour

func (m *MemoryStorage) CreateHarbour(_ context.Context, h *models.Harbour) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.ID = m.nextID("harbour")
	m.harbours[h.ID] = cloneHarbour(*h)
	return nil
}

func (m *MemoryStorage) GetHarbour(_ context.Context, id int64) (*models.Harbour, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.harbours[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	h = cloneHarbour(h)
	return &h, nil
}

func (m *MemoryStorage) ListHarbours(_ context.Context) ([]models.HarbourSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.HarbourSummary{}
	for _, h := range sortedValues(m.harbours, cloneHarbour) {
		out = append(out, h.Summary())
	}
	return out, nil
}

func (m *MemoryStorage) DeleteHarbour(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.harbours[id]; !ok {
		return apperror.ErrNotFound
	}
	maps.DeleteFunc(m.visits, func(_ int64, v models.Visit) bool { return v.HarbourID == id })
	delete(m.harbours, id)
	return nil
}

// Visit

func (m *MemoryStorage) CreateVisit(_ context.Context, v *models.Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ships[v.ShipID]; !ok {
		return apperror.ErrReference
	}
	if _, ok := m.harbours[v.HarbourID]; !ok {
		return apperror.ErrReference
	}
	v.ID = m.nextID("visit")
	m.visits[v.ID] = cloneVisit(*v)
	return nil
}

func (m *MemoryStorage) ListVisits(_ context.Context) ([]models.Visit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedValues(m.visits, cloneVisit), nil
}

func (m *MemoryStorage) DeleteVisit(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.visits[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(m.visits, id)
	return nil
}

func (m *MemoryStorage) Ping(context.Context) error {
	return nil
}
