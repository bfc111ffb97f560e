package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionIncome  = "INCOME"
	TransactionExpense = "EXPENSE"
)

var PaymentMethods = []string{"CASH", "CREDIT_CARD", "DEBIT_CARD", "PIX"}

type Transaction struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID string `gorm:"type:uuid;not null;index:idx_transaction_shop_date,priority:1" json:"barbershopId"`

	Type          string          `gorm:"size:10;not null;index" json:"type"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Category      string          `gorm:"size:100;not null;index" json:"category"`
	Description   *string         `gorm:"type:text" json:"description"`
	Date          time.Time       `gorm:"type:timestamptz;not null;index:idx_transaction_shop_date,priority:2" json:"date"`
	PaymentMethod *string         `gorm:"size:20" json:"paymentMethod"`

	// ProfessionalID is who the entry is attributed to.
	ProfessionalID *string `gorm:"type:uuid;index" json:"professionalId"`

	RelatedAppointmentID *string      `gorm:"type:uuid;uniqueIndex" json:"relatedAppointmentId"`
	RelatedAppointment   *Appointment `gorm:"foreignKey:RelatedAppointmentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

func IsPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}
