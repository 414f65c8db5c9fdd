package dataprocessing

import (
	"math"
	"time"

	"saleseda/pkg/contracts/domain"
)

// ToRecords converts a normalized table into transaction records, one per row.
// The timestamp column must be datetime-typed and the hour column present.
// Missing text becomes "", missing numbers become NaN (floats) or -1 (ints) so
// record validation reports them.
func ToRecords(t *Table) ([]domain.TransactionRecord, error) {
	if err := RequireColumns(t, append(domain.RequiredColumns, domain.ColumnHour)...); err != nil {
		return nil, err
	}

	times, valid, err := t.Times(domain.ColumnTimestamp)
	if err != nil {
		return nil, err
	}

	text := make(map[string][]string)
	for _, column := range []string{
		domain.ColumnTransactionID,
		domain.ColumnProductID,
		domain.ColumnCategory,
		domain.ColumnCustomerType,
		domain.ColumnPaymentType,
	} {
		values, missing, err := t.Strings(column)
		if err != nil {
			return nil, err
		}
		for i := range values {
			if missing[i] {
				values[i] = ""
			}
		}
		text[column] = values
	}

	numbers := make(map[string][]float64)
	for _, column := range []string{
		domain.ColumnUnitPrice,
		domain.ColumnQuantity,
		domain.ColumnTotal,
		domain.ColumnHour,
	} {
		values, err := t.Floats(column)
		if err != nil {
			return nil, err
		}
		numbers[column] = values
	}

	records := make([]domain.TransactionRecord, t.Nrow())
	for i := range records {
		var ts time.Time
		if valid[i] {
			ts = times[i]
		}
		records[i] = domain.TransactionRecord{
			TransactionID: text[domain.ColumnTransactionID][i],
			Timestamp:     ts,
			ProductID:     text[domain.ColumnProductID][i],
			Category:      text[domain.ColumnCategory][i],
			CustomerType:  text[domain.ColumnCustomerType][i],
			UnitPrice:     numbers[domain.ColumnUnitPrice][i],
			Quantity:      toInt(numbers[domain.ColumnQuantity][i]),
			Total:         numbers[domain.ColumnTotal][i],
			PaymentType:   text[domain.ColumnPaymentType][i],
			Hour:          toInt(numbers[domain.ColumnHour][i]),
		}
	}
	return records, nil
}

func toInt(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	return int(v)
}
