package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardAccount is a simulated payment card with a stored available balance.
// A charge matches a card by exact equality on all five card fields.
type CardAccount struct {
	ID               uint            `gorm:"primaryKey"`
	CardNumber       string          `gorm:"not null"`
	ExpiryMonth      int             `gorm:"not null"`
	ExpiryYear       int             `gorm:"not null"`
	CVV              string          `gorm:"not null"`
	CardholderName   string          `gorm:"not null"`
	AvailableBalance decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReceiptItem is a single line item on the shared receipt.
type ReceiptItem struct {
	ID          uint            `gorm:"primaryKey"`
	Description string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Payment records a partial charge applied against the receipt.
type Payment struct {
	ID            uint            `gorm:"primaryKey"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CardAccountID uint            `gorm:"not null"` // FK vers CardAccount
	CardAccount   CardAccount     `gorm:"foreignKey:CardAccountID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
