package features

// CustomerRow is one row of the evolving customer table threaded through the
// feature stages. The field set is the explicit retained schema: raw PII
// attributes (phone, device, IP, billing address) are consumed by the base
// builder and never appear here.
type CustomerRow struct {
	CustomerEmail string
	Fraudulent    bool

	// Base features
	EmailCount             int
	IsBillingAddressShared bool

	// Related-table aggregates, merged in by the aggregators. The zero values
	// are exactly the documented left-join defaults.
	OrderAggregates
	PaymentAggregates
	TransactionAggregates
}

// OrderAggregates holds the per-customer order features.
type OrderAggregates struct {
	TotalOrders             int
	AverageOrderAmount      float64
	FailedOrders            int
	FailedOrderRatio        float64
	UniqueShippingAddresses int
}

// PaymentAggregates holds the per-customer payment-method features.
type PaymentAggregates struct {
	HasCard                      bool
	HasApplePay                  bool
	HasPaypal                    bool
	HasBitcoin                   bool
	UniquePaymentMethodTypes     int
	NumberOfUniquePaymentMethods int
	PaymentRegistrationFailures  int
	FailureRatio                 float64
}

// TransactionAggregates holds the per-customer transaction features.
type TransactionAggregates struct {
	NumberOfTransactions       int
	AverageTransactionAmount   float64
	NumberOfFailedTransactions int
	FailedTransactionFraction  float64
}
