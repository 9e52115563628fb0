// Package repository stores salary package records behind a narrow port so
// the calculation and CLI layers stay storage-agnostic.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/itrgo/itrgo/internal/domain"
)

// ErrNotFound reports a lookup for a record that does not exist.
var ErrNotFound = errors.New("salary package record not found")

// ErrVersionConflict reports a save whose record version no longer matches
// the stored one. The caller should re-read and retry.
var ErrVersionConflict = errors.New("salary package record version conflict")

// PackageRepository is the storage port for salary package records.
type PackageRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.SalaryPackageRecord, error)
	GetByEmployee(ctx context.Context, employeeID string, year domain.TaxYear) (*domain.SalaryPackageRecord, error)
	Save(ctx context.Context, record *domain.SalaryPackageRecord) error
	List(ctx context.Context, organizationID string) ([]*domain.SalaryPackageRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryRepository is an in-memory PackageRepository with optimistic
// concurrency on the record version. Records are deep-copied on both read
// and write so callers can never alias stored state.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.SalaryPackageRecord
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]*domain.SalaryPackageRecord)}
}

// Get returns a copy of the record, or ErrNotFound.
func (r *MemoryRepository) Get(ctx context.Context, id uuid.UUID) (*domain.SalaryPackageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	return record.DeepCopy(), nil
}

// GetByEmployee returns the record for an (employee, tax year) pair.
func (r *MemoryRepository) GetByEmployee(ctx context.Context, employeeID string, year domain.TaxYear) (*domain.SalaryPackageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.EmployeeID == employeeID && record.TaxYear.Label == year.Label {
			return record.DeepCopy(), nil
		}
	}
	return nil, fmt.Errorf("employee %s year %s: %w", employeeID, year.Label, ErrNotFound)
}

// Save inserts or updates a record. An update must carry the version it was
// read at; the stored version then advances by one.
func (r *MemoryRepository) Save(ctx context.Context, record *domain.SalaryPackageRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("cannot save a nil record")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.records[record.ID]
	if exists && stored.Version != record.Version {
		return fmt.Errorf("record %s: stored version %d, submitted version %d: %w",
			record.ID, stored.Version, record.Version, ErrVersionConflict)
	}

	saved := record.DeepCopy()
	saved.Version++
	saved.UpdatedAt = time.Now().UTC()
	r.records[record.ID] = saved

	record.Version = saved.Version
	record.UpdatedAt = saved.UpdatedAt
	return nil
}

// List returns copies of every record for an organization, ordered by
// employee then tax year for stable output.
func (r *MemoryRepository) List(ctx context.Context, organizationID string) ([]*domain.SalaryPackageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.SalaryPackageRecord
	for _, record := range r.records {
		if organizationID == "" || record.OrganizationID == organizationID {
			out = append(out, record.DeepCopy())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].TaxYear.Label < out[j].TaxYear.Label
	})
	return out, nil
}

// Delete removes a record, or returns ErrNotFound.
func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	delete(r.records, id)
	return nil
}
