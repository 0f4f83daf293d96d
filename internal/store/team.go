package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostmaster/internal/models"
)

// TeamStore provides access to team members
type TeamStore struct {
	db *gorm.DB
}

// NewTeamStore creates a team store
func NewTeamStore(db *gorm.DB) *TeamStore {
	return &TeamStore{db: db}
}

// List returns all team members, oldest first
func (s *TeamStore) List() ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := s.db.Order("created_at asc").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch team members: %w", err)
	}
	return members, nil
}

// Add inserts a new team member
func (s *TeamStore) Add(member models.TeamMember) (models.TeamMember, error) {
	member.ID = uuid.NewString()
	member.CreatedAt = time.Now()
	if err := s.db.Create(&member).Error; err != nil {
		return models.TeamMember{}, fmt.Errorf("failed to add team member: %w", err)
	}
	return member, nil
}

// Remove deletes a team member by id
func (s *TeamStore) Remove(id string) error {
	res := s.db.Delete(&models.TeamMember{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to remove team member: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
