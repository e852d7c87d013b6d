package ledger

import (
	"time"

	"github.com/rentfolio/backend/internal/domain/leasing"
)

// GenerateSchedule derives one RentPayment per calendar month of the
// lease term, from the start date through the end date. A partial
// trailing month is prorated by active days; a partial leading month is
// billed in full. The due date is the first day of each billing period.
//
// Generation is pure: it never touches persistence. Idempotent
// re-generation (skipping periods that already exist) is handled by the
// schedule service.
func GenerateSchedule(lease *leasing.Lease) ([]*RentPayment, error) {
	if !lease.EndDate.After(lease.StartDate) {
		return nil, ErrInvalidLeaseTerm
	}

	var payments []*RentPayment

	periodStart := lease.StartDate
	for !periodStart.After(lease.EndDate) {
		monthEnd := endOfMonth(periodStart)
		periodEnd := monthEnd
		if periodEnd.After(lease.EndDate) {
			periodEnd = lease.EndDate
		}

		amountDue := lease.MonthlyRent
		if periodEnd.Before(monthEnd) {
			amountDue = prorate(lease.MonthlyRent, periodStart, periodEnd)
		}

		payment, err := NewRentPayment(
			lease.TenantID,
			lease.ID,
			periodStart,
			periodEnd,
			periodStart, // due on the first day of the period
			amountDue,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)

		periodStart = startOfNextMonth(periodStart)
	}

	return payments, nil
}

// prorate computes the rent share for a partial month using the actual
// day count of that calendar month. Integer division truncates toward
// zero, so a prorated period never exceeds the full monthly rent.
func prorate(monthlyRent int64, periodStart, periodEnd time.Time) int64 {
	daysInMonth := int64(endOfMonth(periodStart).Day())
	activeDays := int64(periodEnd.Day()-periodStart.Day()) + 1
	return monthlyRent * activeDays / daysInMonth
}

// endOfMonth returns the last day of t's calendar month at t's clock time
func endOfMonth(t time.Time) time.Time {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
	return firstOfMonth.AddDate(0, 1, -1)
}

// startOfNextMonth returns the first day of the month after t
func startOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), 0, t.Location()).AddDate(0, 1, 0)
}
