package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/diewo77/ezpay-app/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChargeService validates and applies a single charge against a card account
// and the receipt's remaining balance.
type ChargeService struct {
	DB      *gorm.DB
	Receipt *ReceiptService
}

func NewChargeService(db *gorm.DB, receipt *ReceiptService) *ChargeService {
	return &ChargeService{DB: db, Receipt: receipt}
}

// ChargeRequest carries the raw form fields of a charge attempt.
type ChargeRequest struct {
	CardNumber     string
	CardholderName string
	ExpiryMonth    string
	ExpiryYear     string
	CVV            string
	Amount         string
}

// ChargeResult is returned on a successful charge.
type ChargeResult struct {
	Amount    decimal.Decimal
	Remaining decimal.Decimal
	FullyPaid bool
}

// Charge runs the validation gates in order and applies the charge. Gate
// failures return one of the rejection errors in errors.go; anything else is
// a store failure. The apply step (card lookup, funds check, payment insert,
// balance decrement) runs inside one transaction so the card balance can never
// go negative under interleaved requests.
func (s *ChargeService) Charge(req ChargeRequest) (*ChargeResult, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	amount = amount.Round(2)

	sum, err := s.Receipt.Summary()
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(sum.Remaining) {
		return nil, &AmountExceedsRemainingError{Amount: amount, Remaining: sum.Remaining}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		card, err := matchCard(tx, req)
		if err != nil {
			return err
		}
		if card.AvailableBalance.LessThan(amount) {
			return &InsufficientFundsError{Available: card.AvailableBalance}
		}
		if err := tx.Create(&models.Payment{Amount: amount, CardAccountID: card.ID}).Error; err != nil {
			return err
		}
		// Guarded decrement: the balance condition is re-checked in the WHERE
		// clause so two interleaved charges cannot both drain the same funds.
		res := tx.Model(&models.CardAccount{}).
			Where("id = ? AND available_balance >= ?", card.ID, amount).
			Update("available_balance", gorm.Expr("round(available_balance - ?, 2)", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InsufficientFundsError{Available: card.AvailableBalance}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	after, err := s.Receipt.Summary()
	if err != nil {
		return nil, err
	}
	return &ChargeResult{Amount: amount, Remaining: after.Remaining, FullyPaid: after.FullyPaid}, nil
}

// matchCard looks up the account matching all five supplied fields exactly.
// A non-numeric expiry cannot match any stored card.
func matchCard(tx *gorm.DB, req ChargeRequest) (*models.CardAccount, error) {
	month, merr := strconv.Atoi(strings.TrimSpace(req.ExpiryMonth))
	year, yerr := strconv.Atoi(strings.TrimSpace(req.ExpiryYear))
	if merr != nil || yerr != nil {
		return nil, ErrCardNotFound
	}
	var card models.CardAccount
	err := tx.Where(
		"card_number = ? AND cardholder_name = ? AND expiry_month = ? AND expiry_year = ? AND cvv = ?",
		strings.TrimSpace(req.CardNumber), strings.TrimSpace(req.CardholderName), month, year, strings.TrimSpace(req.CVV),
	).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}
