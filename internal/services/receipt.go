package services

import (
	"strings"

	"github.com/diewo77/ezpay-app/internal/db"
	"github.com/diewo77/ezpay-app/internal/models"
	"github.com/diewo77/ezpay-app/internal/validation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiptService owns the receipt line items and the reconciliation math over
// the payment ledger.
type ReceiptService struct {
	DB *gorm.DB
}

func NewReceiptService(db *gorm.DB) *ReceiptService { return &ReceiptService{DB: db} }

// Summary is the reconciled state of the receipt at read time. Reads are not
// isolated from concurrent writes; callers get best-effort consistency.
type Summary struct {
	Items         []models.ReceiptItem
	Payments      []models.Payment
	Total         decimal.Decimal
	PaymentsTotal decimal.Decimal
	Remaining     decimal.Decimal
	FullyPaid     bool
}

// Summary recomputes totals from the current item and payment sets on every
// call; nothing is cached.
func (s *ReceiptService) Summary() (*Summary, error) {
	sum := &Summary{}
	if err := s.DB.Order("id asc").Find(&sum.Items).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Preload("CardAccount").Order("id asc").Find(&sum.Payments).Error; err != nil {
		return nil, err
	}
	for _, it := range sum.Items {
		sum.Total = sum.Total.Add(it.Price)
	}
	for _, p := range sum.Payments {
		sum.PaymentsTotal = sum.PaymentsTotal.Add(p.Amount)
	}
	sum.Remaining = sum.Total.Sub(sum.PaymentsTotal).Round(2)
	sum.FullyPaid = sum.Remaining.IsZero()
	return sum, nil
}

// AddItem appends a line item. Invalid input (blank name, unparseable or
// non-positive price) is a silent no-op: added is false and err is nil.
// A valid add voids the whole payment ledger, since the receipt total the
// prior payments were made against has changed.
func (s *ReceiptService) AddItem(name, price string) (added bool, err error) {
	name = strings.TrimSpace(name)
	v := validation.Violations{}
	validation.Required("itemName", name, v)
	amount := validation.PositiveAmount("itemPrice", price, v)
	if !v.Empty() {
		return false, nil
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.ReceiptItem{Description: name, Price: amount.Round(2)}).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ResetReceipt deletes every payment and line item.
func (s *ReceiptService) ResetReceipt() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ReceiptItem{}).Error
	})
}

// ResetEZPay deletes every payment and card account, then reseeds the five
// fixed demo cards. The result is the same regardless of prior state.
func (s *ReceiptService) ResetEZPay() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CardAccount{}).Error; err != nil {
			return err
		}
		return db.SeedCards(tx)
	})
}
