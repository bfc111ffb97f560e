package models

import (
	"time"

	"gorm.io/gorm"
)

// Barbershop is the tenant. Slug is immutable once created.
type Barbershop struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
	Timezone string `gorm:"size:64;not null;default:'America/Sao_Paulo'" json:"timezone"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Barbershop) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
