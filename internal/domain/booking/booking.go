package booking

import (
	"fmt"
	"strings"
	"time"
)

// Booking is a payer family scoped to one agency and one cruise group,
// holding one or more cabin ledgers. The aggregate maintains the global
// amounts as derived sums over its cabins, plus an unattributed "general"
// paid amount that has not been assigned to any cabin yet.
//
// Invariants, enforced on every mutation:
//
//	totalCADGlobal   == Σ cabin.TotalCAD
//	paidCADGlobal    == Σ cabin.PaidCAD + generalPaidCAD
//	balanceCADGlobal == totalCADGlobal - paidCADGlobal
//
// A general payment therefore makes Σ cabin.PaidCAD < paidCADGlobal until it
// is explicitly attributed to a cabin. That divergence is documented
// behavior, not drift.
type Booking struct {
	id               uint
	sid              string
	agencyID         uint
	groupName        string
	familyName       string
	contactEmail     string
	cabins           []CabinAccount
	totalCADGlobal   int64
	paidCADGlobal    int64
	balanceCADGlobal int64
	generalPaidCAD   int64
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewBooking creates a booking with its initial cabins. Derived amounts are
// computed immediately.
func NewBooking(sid string, agencyID uint, groupName, familyName, contactEmail string, cabins []CabinAccount) (*Booking, error) {
	if sid == "" {
		return nil, fmt.Errorf("booking sid is required")
	}
	if agencyID == 0 {
		return nil, fmt.Errorf("agency id is required")
	}
	if strings.TrimSpace(familyName) == "" {
		return nil, fmt.Errorf("family name is required")
	}
	if len(cabins) == 0 {
		return nil, fmt.Errorf("at least one cabin is required")
	}
	for i := range cabins {
		if cabins[i].SubtotalCAD < 0 || cabins[i].GratuitiesCAD < 0 || cabins[i].PaidCAD < 0 {
			return nil, fmt.Errorf("cabin %d has negative amounts", i)
		}
	}

	now := time.Now().UTC()
	b := &Booking{
		sid:          sid,
		agencyID:     agencyID,
		groupName:    groupName,
		familyName:   familyName,
		contactEmail: contactEmail,
		cabins:       cabins,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}
	b.recalcAll(now)
	return b, nil
}

// ReconstructBooking rebuilds a booking from persistence without recomputing,
// trusting the stored derived amounts.
func ReconstructBooking(
	id uint,
	sid string,
	agencyID uint,
	groupName, familyName, contactEmail string,
	cabins []CabinAccount,
	totalCADGlobal, paidCADGlobal, balanceCADGlobal, generalPaidCAD int64,
	version int,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if id == 0 {
		return nil, fmt.Errorf("booking ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("booking sid is required")
	}
	if agencyID == 0 {
		return nil, fmt.Errorf("agency id is required")
	}

	return &Booking{
		id:               id,
		sid:              sid,
		agencyID:         agencyID,
		groupName:        groupName,
		familyName:       familyName,
		contactEmail:     contactEmail,
		cabins:           cabins,
		totalCADGlobal:   totalCADGlobal,
		paidCADGlobal:    paidCADGlobal,
		balanceCADGlobal: balanceCADGlobal,
		generalPaidCAD:   generalPaidCAD,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (b *Booking) ID() uint { return b.id }
func (b *Booking) SID() string { return b.sid }
func (b *Booking) AgencyID() uint { return b.agencyID }
func (b *Booking) GroupName() string { return b.groupName }
func (b *Booking) FamilyName() string { return b.familyName }
func (b *Booking) ContactEmail() string { return b.contactEmail }
func (b *Booking) TotalCADGlobal() int64 { return b.totalCADGlobal }
func (b *Booking) PaidCADGlobal() int64 { return b.paidCADGlobal }
func (b *Booking) BalanceCADGlobal() int64 { return b.balanceCADGlobal }
func (b *Booking) GeneralPaidCAD() int64 { return b.generalPaidCAD }
func (b *Booking) Version() int { return b.version }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// SetID sets the booking ID (only for persistence layer use).
func (b *Booking) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("booking ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("booking ID cannot be zero")
	}
	b.id = id
	return nil
}

// Cabins returns a copy of the cabin ledgers.
func (b *Booking) Cabins() []CabinAccount {
	out := make([]CabinAccount, len(b.cabins))
	copy(out, b.cabins)
	for i := range out {
		deadlines := make([]PaymentDeadline, len(b.cabins[i].PaymentDeadlines))
		copy(deadlines, b.cabins[i].PaymentDeadlines)
		out[i].PaymentDeadlines = deadlines
	}
	return out
}

// ApplyPayment applies a received amount to the booking at the given time.
// With a cabin index the amount lands on that cabin's ledger and its
// deadlines are recomputed; with a nil index the payment is recorded as
// general and raises only the global paid amount, deliberately leaving cabin
// ledgers untouched until someone attributes it.
func (b *Booking) ApplyPayment(amountCAD int64, cabinIndex *int, now time.Time) error {
	if amountCAD <= 0 {
		return ErrNonPositiveAmount
	}

	if cabinIndex == nil {
		b.generalPaidCAD += amountCAD
		b.recalcGlobals()
		b.touch()
		return nil
	}

	idx := *cabinIndex
	if idx < 0 || idx >= len(b.cabins) {
		return ErrCabinIndexOutOfRange
	}

	cabin := &b.cabins[idx]
	cabin.PaidCAD += amountCAD
	cabin.recalc(now)
	b.recalcGlobals()
	b.touch()
	return nil
}

// AttributeGeneralPayment moves part of the unattributed general balance onto
// a cabin's ledger. Global paid is unchanged; only the split between general
// and per-cabin moves.
func (b *Booking) AttributeGeneralPayment(amountCAD int64, cabinIndex int, now time.Time) error {
	if amountCAD <= 0 {
		return ErrNonPositiveAmount
	}
	if amountCAD > b.generalPaidCAD {
		return ErrInsufficientGeneralBalance
	}
	if cabinIndex < 0 || cabinIndex >= len(b.cabins) {
		return ErrCabinIndexOutOfRange
	}

	b.generalPaidCAD -= amountCAD
	cabin := &b.cabins[cabinIndex]
	cabin.PaidCAD += amountCAD
	cabin.recalc(now)
	b.recalcGlobals()
	b.touch()
	return nil
}

// AddCabin appends a cabin ledger and refreshes the global amounts.
func (b *Booking) AddCabin(c CabinAccount, now time.Time) error {
	if c.SubtotalCAD < 0 || c.GratuitiesCAD < 0 || c.PaidCAD < 0 {
		return ErrNonPositiveAmount
	}
	c.recalc(now)
	b.cabins = append(b.cabins, c)
	b.recalcGlobals()
	b.touch()
	return nil
}

// SetCabinDeadlines replaces the deadline schedule of one cabin and
// recomputes statuses against the cabin's current paid amount.
func (b *Booking) SetCabinDeadlines(cabinIndex int, deadlines []PaymentDeadline, now time.Time) error {
	if cabinIndex < 0 || cabinIndex >= len(b.cabins) {
		return ErrCabinIndexOutOfRange
	}
	cabin := &b.cabins[cabinIndex]
	cabin.PaymentDeadlines = deadlines
	cabin.recalcDeadlines(now)
	b.touch()
	return nil
}

// RefreshDeadlines recomputes every cabin's deadline statuses against a new
// reference time. Paid flags never change here; only Upcoming can flip to
// Overdue as time passes.
func (b *Booking) RefreshDeadlines(now time.Time) {
	for i := range b.cabins {
		b.cabins[i].recalcDeadlines(now)
	}
	b.touch()
}

// recalcAll recomputes each cabin and then the globals.
func (b *Booking) recalcAll(now time.Time) {
	for i := range b.cabins {
		b.cabins[i].recalc(now)
	}
	b.recalcGlobals()
}

// recalcGlobals rebuilds the booking-level aggregates from the cabins plus
// the unattributed general amount.
func (b *Booking) recalcGlobals() {
	var total, paid int64
	for i := range b.cabins {
		total += b.cabins[i].TotalCAD
		paid += b.cabins[i].PaidCAD
	}
	b.totalCADGlobal = total
	b.paidCADGlobal = paid + b.generalPaidCAD
	b.balanceCADGlobal = b.totalCADGlobal - b.paidCADGlobal
}

func (b *Booking) touch() {
	b.updatedAt = time.Now().UTC()
	b.version++
}
