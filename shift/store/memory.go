// Package store provides in-memory Store implementations for tests and
// development.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jarivatoi/anwh-sub000/roster"
	"github.com/jarivatoi/anwh-sub000/shift"
)

// =============================================================================
// MEMORY STORE - implements shift.Store and roster.Store
// =============================================================================

type Memory struct {
	mu sync.RWMutex

	schedule shift.DaySchedule
	special  shift.SpecialDates
	settings shift.Settings
	salaries map[monthKey]decimal.Decimal
	entries  []roster.Entry
	nextID   int
}

type monthKey struct {
	Year  int
	Month time.Month
}

func NewMemory() *Memory {
	return &Memory{
		schedule: shift.DaySchedule{},
		special:  shift.SpecialDates{},
		settings: shift.DefaultSettings(),
		salaries: make(map[monthKey]decimal.Decimal),
	}
}

// Compile-time interface checks.
var (
	_ shift.Store  = (*Memory)(nil)
	_ roster.Store = (*Memory)(nil)
)

// -----------------------------------------------------------------------------
// shift.Store
// -----------------------------------------------------------------------------

func (m *Memory) LoadSchedule(_ context.Context) (shift.DaySchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.schedule.Clone(), nil
}

func (m *Memory) SaveSchedule(_ context.Context, s shift.DaySchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule = s.Clone()
	return nil
}

func (m *Memory) LoadSpecialDates(_ context.Context) (shift.SpecialDates, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.special.Clone(), nil
}

func (m *Memory) SaveSpecialDates(_ context.Context, s shift.SpecialDates) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.special = s.Clone()
	return nil
}

func (m *Memory) LoadSettings(_ context.Context) (shift.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings, nil
}

func (m *Memory) SaveSettings(_ context.Context, s shift.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}

func (m *Memory) LoadMonthlySalary(_ context.Context, year int, month time.Month) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if amt, ok := m.salaries[monthKey{year, month}]; ok {
		return amt, nil
	}
	return decimal.Zero, nil
}

func (m *Memory) SaveMonthlySalary(_ context.Context, year int, month time.Month, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.salaries[monthKey{year, month}] = amount
	return nil
}

// -----------------------------------------------------------------------------
// roster.Store
// -----------------------------------------------------------------------------

func (m *Memory) FetchAllEntries(_ context.Context) ([]roster.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]roster.Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *Memory) SaveEntry(_ context.Context, e roster.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == "" {
		m.nextID++
		e.ID = fmt.Sprintf("entry-%d", m.nextID)
	}
	for i, existing := range m.entries {
		if existing.ID == e.ID {
			m.entries[i] = e
			return nil
		}
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *Memory) DeleteEntry(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return shift.ErrNotFound
}
