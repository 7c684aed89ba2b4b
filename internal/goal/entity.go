package goal

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/volition-os/volition-api/internal/user"
)

type Goal struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User       user.User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title      string      `gorm:"not null" json:"title"`
	Status     GoalStatus  `gorm:"not null;index" json:"status"`
	Scope      *Scope      `gorm:"type:jsonb;serializer:json" json:"scope,omitempty"`
	Complexity *Complexity `gorm:"type:jsonb;serializer:json" json:"complexity,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type Scope struct {
	HoursPerWeek     float64         `json:"hours_per_week"`
	TechStack        []string        `json:"tech_stack"`
	DefinitionOfDone string          `json:"definition_of_done"`
	BackgroundLevel  BackgroundLevel `json:"background_level"`
}

var (
	ErrInvalidScope      = errors.New("invalid scope")
	ErrInvalidComplexity = errors.New("invalid complexity")
)

func (s *Scope) Validate() error {
	if s == nil {
		return ErrInvalidScope
	}
	if s.HoursPerWeek <= 0 || math.IsInf(s.HoursPerWeek, 0) || math.IsNaN(s.HoursPerWeek) {
		return ErrInvalidScope
	}
	if s.DefinitionOfDone == "" {
		return ErrInvalidScope
	}
	if !s.BackgroundLevel.IsValid() {
		return ErrInvalidScope
	}
	return nil
}

type Complexity struct {
	Size                ComplexitySize `json:"size"`
	EstimatedTotalHours float64        `json:"estimated_total_hours"`
	ProjectedEndDate    *time.Time     `json:"projected_end_date,omitempty"`
}

// SizeForHours derives the size band from the hour estimate. Size is always
// recomputed from the estimate, never trusted from a producer.
func SizeForHours(hours float64) ComplexitySize {
	switch {
	case hours < 20:
		return SizeSmall
	case hours <= 100:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// Normalize validates the hour estimate and overwrites Size with the derived
// band, correcting any producer that disagrees with the thresholds.
func (c *Complexity) Normalize() error {
	if c == nil {
		return ErrInvalidComplexity
	}
	if c.EstimatedTotalHours <= 0 || math.IsInf(c.EstimatedTotalHours, 0) || math.IsNaN(c.EstimatedTotalHours) {
		return ErrInvalidComplexity
	}
	c.Size = SizeForHours(c.EstimatedTotalHours)
	return nil
}
