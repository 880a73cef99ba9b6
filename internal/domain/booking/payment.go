package booking

import (
	"fmt"
	"time"
)

// Payment is the immutable record of one received payment. The ledger
// mutation on the booking and this record are persisted in the same
// transaction; the record is never edited afterwards.
type Payment struct {
	id         uint
	sid        string
	bookingID  uint
	agencyID   uint
	amountCAD  int64
	cabinIndex *int
	method     string
	note       string
	receivedAt time.Time
	createdAt  time.Time
}

// NewPayment creates a payment record. A nil cabinIndex marks a general
// payment not yet attributed to a cabin.
func NewPayment(sid string, bookingID, agencyID uint, amountCAD int64, cabinIndex *int, method, note string, receivedAt time.Time) (*Payment, error) {
	if sid == "" {
		return nil, fmt.Errorf("payment sid is required")
	}
	if bookingID == 0 {
		return nil, fmt.Errorf("booking id is required")
	}
	if agencyID == 0 {
		return nil, fmt.Errorf("agency id is required")
	}
	if amountCAD <= 0 {
		return nil, ErrNonPositiveAmount
	}

	return &Payment{
		sid:        sid,
		bookingID:  bookingID,
		agencyID:   agencyID,
		amountCAD:  amountCAD,
		cabinIndex: cabinIndex,
		method:     method,
		note:       note,
		receivedAt: receivedAt,
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructPayment rebuilds a payment record from persistence.
func ReconstructPayment(id uint, sid string, bookingID, agencyID uint, amountCAD int64, cabinIndex *int, method, note string, receivedAt, createdAt time.Time) (*Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	return &Payment{
		id:         id,
		sid:        sid,
		bookingID:  bookingID,
		agencyID:   agencyID,
		amountCAD:  amountCAD,
		cabinIndex: cabinIndex,
		method:     method,
		note:       note,
		receivedAt: receivedAt,
		createdAt:  createdAt,
	}, nil
}

func (p *Payment) ID() uint { return p.id }
func (p *Payment) SID() string { return p.sid }
func (p *Payment) BookingID() uint { return p.bookingID }
func (p *Payment) AgencyID() uint { return p.agencyID }
func (p *Payment) AmountCAD() int64 { return p.amountCAD }
func (p *Payment) Method() string { return p.method }
func (p *Payment) Note() string { return p.note }
func (p *Payment) ReceivedAt() time.Time { return p.receivedAt }
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// SetID sets the payment ID (only for persistence layer use).
func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = id
	return nil
}

// CabinIndex returns the targeted cabin, or nil for a general payment.
func (p *Payment) CabinIndex() *int {
	if p.cabinIndex == nil {
		return nil
	}
	idx := *p.cabinIndex
	return &idx
}

// IsGeneral reports whether the payment is unattributed.
func (p *Payment) IsGeneral() bool {
	return p.cabinIndex == nil
}
