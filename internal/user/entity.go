package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email                       string    `gorm:"uniqueIndex;not null" json:"email"`
	Name                        string    `json:"name"`
	AvatarURL                   string    `json:"avatar_url,omitempty"`
	Role                        string    `gorm:"default:user" json:"role"`
	EncryptedGoogleAccessToken  string    `gorm:"type:text" json:"-"`
	EncryptedGoogleRefreshToken string    `gorm:"type:text" json:"-"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}
