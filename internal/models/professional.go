package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "ADMIN"
	RoleBarber = "BARBER"
)

type Professional struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID string `gorm:"type:uuid;not null;uniqueIndex:idx_professional_shop_email,priority:1" json:"barbershopId"`

	Name           string          `gorm:"size:100;not null" json:"name"`
	Email          string          `gorm:"size:150;not null;uniqueIndex:idx_professional_shop_email,priority:2" json:"email"`
	PasswordHash   string          `gorm:"size:255;not null" json:"-"`
	Role           string          `gorm:"size:20;not null;default:'BARBER'" json:"role"`
	CommissionRate decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"commissionRate"`
	IsActive       bool            `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Professional) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
