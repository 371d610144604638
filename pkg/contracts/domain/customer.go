package domain

// RawRecord is one nested per-customer input record as it appears on a single
// line of the NDJSON source: the customer sub-record, an optional fraud label,
// and the related order/payment/transaction lists.
type RawRecord struct {
	Customer       *Customer       `json:"customer"`
	Fraudulent     *bool           `json:"fraudulent,omitempty"`
	Orders         []Order         `json:"orders,omitempty"`
	PaymentMethods []PaymentMethod `json:"paymentMethods,omitempty"`
	Transactions   []Transaction   `json:"transactions,omitempty"`
}

// Customer holds the raw customer attributes. CustomerEmail is the natural key
// joining all four relational tables; the remaining attributes are PII that the
// base feature builder consumes and then drops.
type Customer struct {
	CustomerEmail          string `json:"customerEmail" validate:"required"`
	CustomerPhone          string `json:"customerPhone,omitempty"`
	CustomerDevice         string `json:"customerDevice,omitempty"`
	CustomerIPAddress      string `json:"customerIPAddress,omitempty"`
	CustomerBillingAddress string `json:"customerBillingAddress,omitempty"`
}

// CustomerRecord is a customer row after normalization: the raw attributes plus
// the record-level fraud label pulled down from the enclosing RawRecord.
type CustomerRecord struct {
	Customer
	Fraudulent bool `json:"fraudulent"`
}

// Order is a single order row. CustomerEmail is stamped by the normalizer from
// the owning record and is empty on the wire.
type Order struct {
	CustomerEmail        string  `json:"customerEmail,omitempty"`
	OrderID              string  `json:"orderId,omitempty"`
	OrderAmount          float64 `json:"orderAmount"`
	OrderState           string  `json:"orderState"`
	OrderShippingAddress string  `json:"orderShippingAddress"`
}

// OrderStateFailed is the order state counted as a failure by the orders
// aggregator.
const OrderStateFailed = "failed"

// PaymentMethod is a single registered payment method row.
type PaymentMethod struct {
	CustomerEmail                    string `json:"customerEmail,omitempty"`
	PaymentMethodID                  string `json:"paymentMethodId"`
	PaymentMethodType                string `json:"paymentMethodType"`
	PaymentMethodProvider            string `json:"paymentMethodProvider,omitempty"`
	PaymentMethodRegistrationFailure bool   `json:"paymentMethodRegistrationFailure"`
}

// Known payment method types. The indicator set is a closed world: types
// outside this list produce no indicator column.
const (
	PaymentTypeCard     = "card"
	PaymentTypeApplePay = "apple pay"
	PaymentTypePaypal   = "paypal"
	PaymentTypeBitcoin  = "bitcoin"
)

// Transaction is a single transaction row.
type Transaction struct {
	CustomerEmail     string  `json:"customerEmail,omitempty"`
	TransactionID     string  `json:"transactionId,omitempty"`
	OrderID           string  `json:"orderId,omitempty"`
	TransactionAmount float64 `json:"transactionAmount"`
	TransactionFailed bool    `json:"transactionFailed"`
}
