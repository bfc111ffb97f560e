package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Appointment struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID string `gorm:"type:uuid;not null;index" json:"barbershopId"`

	ProfessionalID string        `gorm:"type:uuid;not null;index:idx_appointment_professional_start,priority:1" json:"professionalId"`
	Professional   *Professional `gorm:"foreignKey:ProfessionalID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"professional,omitempty"`

	ClientID string  `gorm:"type:uuid;not null;index" json:"clientId"`
	Client   *Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`

	ServiceID string   `gorm:"type:uuid;not null;index" json:"serviceId"`
	Service   *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	StartTime time.Time `gorm:"type:timestamptz;not null;index:idx_appointment_professional_start,priority:2" json:"startTime"`
	EndTime   time.Time `gorm:"type:timestamptz;not null" json:"endTime"`
	Status    string    `gorm:"size:20;not null;default:'SCHEDULED';index" json:"status"`
	Notes     *string   `gorm:"type:text" json:"notes"`

	// Price is the service price at booking time.
	Price           decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"price"`
	CommissionValue *decimal.Decimal `gorm:"type:numeric(12,2)" json:"commissionValue"`

	CompletedAt *time.Time `json:"completedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
