package db

import (
	"context"
	"sync"

	"github.com/aph138/otpd/internal/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Memory keeps records in a slice in insertion order.
type Memory struct {
	mu      sync.RWMutex
	records []entity.OTP
}

func NewMemory() *Memory {
	return &Memory{}
}

func match(record entity.OTP, filter Filter) bool {
	if len(filter.UserID) > 0 && record.UserID != filter.UserID {
		return false
	}
	if len(filter.Purpose) > 0 && record.Purpose != filter.Purpose {
		return false
	}
	return true
}

func (m *Memory) Insert(_ context.Context, record *entity.OTP) error {
	if record.ID.IsZero() {
		record.ID = bson.NewObjectID()
	}
	m.mu.Lock()
	m.records = append(m.records, *record)
	m.mu.Unlock()
	return nil
}

// FindLatest breaks createdAt ties in favour of the later insert.
func (m *Memory) FindLatest(_ context.Context, filter Filter) (*entity.OTP, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *entity.OTP
	for i := range m.records {
		r := m.records[i]
		if !match(r, filter) {
			continue
		}
		if latest == nil || !r.CreatedAt.Before(latest.CreatedAt) {
			latest = &r
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (m *Memory) DeleteMany(_ context.Context, filter Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	var deleted int64
	for _, r := range m.records {
		if match(r, filter) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted, nil
}

func (m *Memory) Close(_ context.Context) error {
	return nil
}
