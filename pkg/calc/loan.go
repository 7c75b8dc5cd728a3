package calc

import "math"

// LoanKind selects the repayment scheme.
type LoanKind string

const (
	// LoanAnnuity repays with equal payments every month.
	LoanAnnuity LoanKind = "annuity"
	// LoanDifferentiated repays a fixed principal share plus interest on the remaining balance.
	LoanDifferentiated LoanKind = "differentiated"
)

// LoanInput is the loan form. The rate is nominal per year, in percent.
type LoanInput struct {
	Principal         float64 `json:"principal" validate:"finite,gt=0"`
	AnnualRatePercent float64 `json:"annual_rate_percent" validate:"finite,gte=0,lte=100"`
	Months            int     `json:"months" validate:"gt=0,lte=1200"`
}

// Payment is one row of a repayment schedule.
type Payment struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// LoanSchedule is a full repayment plan.
type LoanSchedule struct {
	Kind          LoanKind  `json:"kind"`
	Payments      []Payment `json:"payments"`
	TotalPaid     float64   `json:"total_paid"`
	TotalInterest float64   `json:"total_interest"`
}

// MonthlyPayment returns the first payment of the schedule: the fixed payment
// for annuities, the largest one for differentiated loans.
func (s LoanSchedule) MonthlyPayment() float64 {
	if len(s.Payments) == 0 {
		return 0
	}
	return s.Payments[0].Payment
}

// Annuity builds an equal-payment schedule:
// payment = P·r / (1 − (1+r)^−n), with r the monthly rate. A zero rate splits
// the principal evenly.
func Annuity(in LoanInput) (LoanSchedule, error) {
	if err := check(in); err != nil {
		return LoanSchedule{}, err
	}

	r := in.AnnualRatePercent / 12 / 100
	n := in.Months

	payment := in.Principal / float64(n)
	if r > 0 {
		payment = in.Principal * r / (1 - math.Pow(1+r, -float64(n)))
	}

	sched := LoanSchedule{Kind: LoanAnnuity, Payments: make([]Payment, 0, n)}
	balance := in.Principal
	for period := 1; period <= n; period++ {
		interest := balance * r
		principal := payment - interest
		amount := payment
		if period == n {
			// Absorb accumulated rounding so the loan closes at exactly zero.
			principal = balance
			amount = principal + interest
		}
		balance -= principal
		if period == n {
			balance = 0
		}

		sched.Payments = append(sched.Payments, Payment{
			Period:    period,
			Payment:   amount,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})
		sched.TotalPaid += amount
		sched.TotalInterest += interest
	}
	return sched, nil
}

// Differentiated builds a schedule where each month repays P/n of principal
// plus interest on the balance still owed.
func Differentiated(in LoanInput) (LoanSchedule, error) {
	if err := check(in); err != nil {
		return LoanSchedule{}, err
	}

	r := in.AnnualRatePercent / 12 / 100
	n := in.Months
	share := in.Principal / float64(n)

	sched := LoanSchedule{Kind: LoanDifferentiated, Payments: make([]Payment, 0, n)}
	balance := in.Principal
	for period := 1; period <= n; period++ {
		principal := share
		if period == n {
			principal = balance
		}
		interest := balance * r
		balance -= principal
		if period == n {
			balance = 0
		}

		sched.Payments = append(sched.Payments, Payment{
			Period:    period,
			Payment:   principal + interest,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})
		sched.TotalPaid += principal + interest
		sched.TotalInterest += interest
	}
	return sched, nil
}

// Loan dispatches to Annuity or Differentiated.
func Loan(kind LoanKind, in LoanInput) (LoanSchedule, error) {
	switch kind {
	case LoanAnnuity, "":
		return Annuity(in)
	case LoanDifferentiated:
		return Differentiated(in)
	default:
		return LoanSchedule{}, invalid("kind", "must be annuity or differentiated, got %q", kind)
	}
}
