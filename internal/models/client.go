package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a customer of the barbershop. Clients never log in.
type Client struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID string `gorm:"type:uuid;not null;uniqueIndex:idx_client_shop_phone,priority:1" json:"barbershopId"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Phone    string  `gorm:"size:20;not null;uniqueIndex:idx_client_shop_phone,priority:2" json:"phone"`
	Email    *string `gorm:"size:150" json:"email"`
	Notes    *string `gorm:"type:text" json:"notes"`
	IsActive bool    `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
