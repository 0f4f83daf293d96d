package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostmaster/internal/models"
)

// RecordStore provides access to hosting records. It wraps the database
// handle passed in at construction; no package-level state.
type RecordStore struct {
	db *gorm.DB
}

// NewRecordStore creates a record store
func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// List returns all hosting records ordered by serial number
func (s *RecordStore) List() ([]models.HostingRecord, error) {
	var records []models.HostingRecord
	if err := s.db.Order("serial_number asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return records, nil
}

// Get returns a single record by id
func (s *RecordStore) Get(id string) (models.HostingRecord, error) {
	var rec models.HostingRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return models.HostingRecord{}, err
	}
	return rec, nil
}

// Create assigns an id and the next serial number, then inserts the record
func (s *RecordStore) Create(rec models.HostingRecord) (models.HostingRecord, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()

	var maxSerial int
	s.db.Model(&models.HostingRecord{}).Select("COALESCE(MAX(serial_number), 0)").Scan(&maxSerial)
	rec.SerialNumber = maxSerial + 1

	if err := s.db.Create(&rec).Error; err != nil {
		return models.HostingRecord{}, fmt.Errorf("failed to create record: %w", err)
	}
	return rec, nil
}

// Save writes a full record back
func (s *RecordStore) Save(rec models.HostingRecord) error {
	rec.UpdatedAt = time.Now()
	if err := s.db.Save(&rec).Error; err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Delete removes a record by id
func (s *RecordStore) Delete(id string) error {
	res := s.db.Delete(&models.HostingRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Replace swaps in a new version of the whole collection in one transaction.
// The auto-invoice batch uses this so callers never observe a half-stamped
// collection.
func (s *RecordStore) Replace(records []models.HostingRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			records[i].UpdatedAt = time.Now()
			if err := tx.Save(&records[i]).Error; err != nil {
				return fmt.Errorf("failed to save record %s: %w", records[i].ID, err)
			}
		}
		return nil
	})
}

// Import bulk-inserts records, skipping any that fail. Returns the number
// imported.
func (s *RecordStore) Import(records []models.HostingRecord) (int, error) {
	imported := 0
	for _, rec := range records {
		if rec.ClientName == "" {
			continue
		}
		if _, err := s.Create(rec); err != nil {
			continue
		}
		imported++
	}
	return imported, nil
}
