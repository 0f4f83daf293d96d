package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hostmaster/internal/models"
)

// Row ids inside the settings_blobs table
const (
	settingsRowID = 1
	optionsRowID  = 2
)

// SettingsStore persists AppSettings and DropdownOptions as single-row JSON
// blobs, the same shape the panel has always used.
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore creates a settings store
func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Settings returns the stored app settings, falling back to defaults when
// nothing has been saved yet.
func (s *SettingsStore) Settings() (models.AppSettings, error) {
	settings := models.DefaultSettings()
	if err := s.load(settingsRowID, &settings); err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

// UpdateSettings merges partial fields onto the stored settings. The merge is
// field-level: absent fields keep their current values.
func (s *SettingsStore) UpdateSettings(partial map[string]any) (models.AppSettings, error) {
	settings, err := s.Settings()
	if err != nil {
		return models.AppSettings{}, err
	}
	if err := mergeInto(&settings, partial); err != nil {
		return models.AppSettings{}, err
	}
	if err := s.save(settingsRowID, settings); err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

// Options returns the stored dropdown options, falling back to defaults.
func (s *SettingsStore) Options() (models.DropdownOptions, error) {
	options := models.DefaultOptions()
	if err := s.load(optionsRowID, &options); err != nil {
		return models.DropdownOptions{}, err
	}
	return options, nil
}

// UpdateOptions merges partial option lists onto the stored enumerations
func (s *SettingsStore) UpdateOptions(partial map[string]any) (models.DropdownOptions, error) {
	options, err := s.Options()
	if err != nil {
		return models.DropdownOptions{}, err
	}
	if err := mergeInto(&options, partial); err != nil {
		return models.DropdownOptions{}, err
	}
	if err := s.save(optionsRowID, options); err != nil {
		return models.DropdownOptions{}, err
	}
	return options, nil
}

func (s *SettingsStore) load(id uint, out any) error {
	var row models.SettingsBlob
	err := s.db.First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	return json.Unmarshal([]byte(row.Data), out)
}

func (s *SettingsStore) save(id uint, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	row := models.SettingsBlob{ID: id, Data: string(data)}
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// mergeInto applies a partial JSON object on top of an existing struct by
// round-tripping through its JSON form.
func mergeInto(target any, partial map[string]any) error {
	current, err := json.Marshal(target)
	if err != nil {
		return err
	}
	merged := map[string]any{}
	if err := json.Unmarshal(current, &merged); err != nil {
		return err
	}
	for k, v := range partial {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
