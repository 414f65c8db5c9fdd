package domain

import (
	"time"
)

// Column names of the sales sample export
const (
	ColumnTransactionID = "transaction_id"
	ColumnTimestamp     = "timestamp"
	ColumnProductID     = "product_id"
	ColumnCategory      = "category"
	ColumnCustomerType  = "customer_type"
	ColumnUnitPrice     = "unit_price"
	ColumnQuantity      = "quantity"
	ColumnTotal         = "total"
	ColumnPaymentType   = "payment_type"
	ColumnHour          = "hour"
)

// TimestampLayout is the fixed layout of the timestamp column (YYYY-MM-DD HH:MM:SS)
const TimestampLayout = "2006-01-02 15:04:05"

// RequiredColumns lists the columns every sales sample must carry after the
// leading index column has been dropped.
var RequiredColumns = []string{
	ColumnTransactionID,
	ColumnTimestamp,
	ColumnProductID,
	ColumnCategory,
	ColumnCustomerType,
	ColumnUnitPrice,
	ColumnQuantity,
	ColumnTotal,
	ColumnPaymentType,
}

// IdentifierColumns are near-unique id columns; they are summarized but never plotted.
var IdentifierColumns = []string{ColumnTransactionID, ColumnProductID}

// CategoricalColumns are low-cardinality columns summarized with count plots.
var CategoricalColumns = []string{ColumnCategory, ColumnCustomerType, ColumnPaymentType, ColumnHour}

// DistributionColumns are numeric columns plotted as histograms.
var DistributionColumns = []string{ColumnUnitPrice, ColumnQuantity, ColumnTotal}

// TransactionRecord represents a single row of the sales table
type TransactionRecord struct {
	TransactionID string    `json:"transaction_id" csv:"transaction_id" validate:"required"`
	Timestamp     time.Time `json:"timestamp" csv:"timestamp" validate:"required"`
	ProductID     string    `json:"product_id" csv:"product_id" validate:"required"`
	Category      string    `json:"category" csv:"category" validate:"required"`
	CustomerType  string    `json:"customer_type" csv:"customer_type" validate:"required"`
	UnitPrice     float64   `json:"unit_price" csv:"unit_price" validate:"gt=0"`
	Quantity      int       `json:"quantity" csv:"quantity" validate:"min=1"`
	Total         float64   `json:"total" csv:"total" validate:"gte=0"`
	PaymentType   string    `json:"payment_type" csv:"payment_type" validate:"required"`
	Hour          int       `json:"hour" csv:"hour" validate:"min=0,max=23"`
}
