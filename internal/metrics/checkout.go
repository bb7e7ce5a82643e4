package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const (
	OutcomeComplete = "complete"
	OutcomePartial  = "partial"
	OutcomeFailed   = "failed"
	OutcomeError    = "error"
)

var (
	checkoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_total",
		Help: "Finalize-purchase calls by outcome.",
	}, []string{"outcome"})

	checkoutAmountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_amount_total",
		Help: "Sum of ticket amounts issued.",
	})

	checkoutUnfulfilledItems = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_unfulfilled_items_total",
		Help: "Line items left in carts because stock was short or the product was gone.",
	})
)

// RecordCheckout counts one finalize call and adds amount to the running total.
func RecordCheckout(outcome string, amount decimal.Decimal) {
	checkoutTotal.WithLabelValues(outcome).Inc()

	if amount.IsPositive() {
		checkoutAmountTotal.Add(amount.InexactFloat64())
	}
}

func RecordUnfulfilled(n int) {
	if n > 0 {
		checkoutUnfulfilledItems.Add(float64(n))
	}
}
