package booking

import "time"

// DeadlineStatus is the derived state of a payment deadline.
type DeadlineStatus string

const (
	DeadlinePaid     DeadlineStatus = "Paid"
	DeadlineUpcoming DeadlineStatus = "Upcoming"
	DeadlineOverdue  DeadlineStatus = "Overdue"
)

// PaymentDeadline is an installment threshold on a cabin. Amount is the
// installment due at this deadline; a deadline counts as Paid once the
// cabin's cumulative paid amount reaches the cumulative threshold up to and
// including it (>= at the boundary).
type PaymentDeadline struct {
	Label      string         `json:"label"`
	DueDate    time.Time      `json:"due_date"`
	AmountCAD  int64          `json:"amount_cad"`
	Status     DeadlineStatus `json:"status"`
}

// CabinAccount is the per-cabin financial ledger. All amounts are CAD cents.
// Total and Balance are derived and recomputed on every mutation.
type CabinAccount struct {
	CabinNumber      string            `json:"cabin_number"`
	SubtotalCAD      int64             `json:"subtotal_cad"`
	GratuitiesCAD    int64             `json:"gratuities_cad"`
	TotalCAD         int64             `json:"total_cad"`
	PaidCAD          int64             `json:"paid_cad"`
	BalanceCAD       int64             `json:"balance_cad"`
	PaymentDeadlines []PaymentDeadline `json:"payment_deadlines"`
}

// recalc refreshes the cabin's derived amounts and deadline statuses.
// now is the reference time for overdue detection.
func (c *CabinAccount) recalc(now time.Time) {
	c.TotalCAD = c.SubtotalCAD + c.GratuitiesCAD
	c.BalanceCAD = c.TotalCAD - c.PaidCAD
	c.recalcDeadlines(now)
}

// recalcDeadlines walks the deadlines in order, accumulating the threshold.
// A deadline is Paid once cumulative paid covers the cumulative threshold;
// otherwise it is Overdue when its due date has passed and Upcoming until then.
func (c *CabinAccount) recalcDeadlines(now time.Time) {
	var cumulative int64
	for i := range c.PaymentDeadlines {
		d := &c.PaymentDeadlines[i]
		cumulative += d.AmountCAD

		switch {
		case c.PaidCAD >= cumulative:
			d.Status = DeadlinePaid
		case now.After(d.DueDate):
			d.Status = DeadlineOverdue
		default:
			d.Status = DeadlineUpcoming
		}
	}
}
