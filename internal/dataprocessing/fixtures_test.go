package dataprocessing

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"saleseda/pkg/contracts/domain"
)

const (
	sampleRows     = 7829
	sampleProducts = 300
)

var (
	sampleCategories    = []string{"fruit", "vegetables", "packaged foods", "baked goods", "canned foods", "refrigerated items", "kitchen", "meat", "dairy", "beverages", "cleaning products", "baking", "snacks", "frozen", "seafood", "medicine", "baby products", "condiments and sauces", "personal care", "pets", "cheese", "spices and herbs"}
	sampleCustomerTypes = []string{"non-member", "standard", "premium", "basic", "gold"}
	samplePaymentTypes  = []string{"cash", "credit card", "e-wallet", "debit card"}
	sampleHeader        = []string{"", "transaction_id", "timestamp", "product_id", "category", "customer_type", "unit_price", "quantity", "total", "payment_type"}
)

// sampleRecords builds a deterministic sales sample shaped like the original
// export: a leading index column, then the nine transaction columns. The first
// row is timestamped 2022-03-01 10:00:45.
func sampleRecords(rows int) [][]string {
	rng := rand.New(rand.NewSource(7))
	start := time.Date(2022, 3, 1, 9, 0, 0, 0, time.UTC)

	records := [][]string{sampleHeader}
	for i := 0; i < rows; i++ {
		ts := start.Add(time.Duration(rng.Intn(7))*24*time.Hour +
			time.Duration(rng.Intn(11*3600))*time.Second)
		if i == 0 {
			ts = time.Date(2022, 3, 1, 10, 0, 45, 0, time.UTC)
		}

		r := rng.Float64()
		price := math.Round((0.19+19.8*r*r*r)*100) / 100
		quantity := 1 + rng.Intn(4)
		total := math.Round(price*float64(quantity)*100) / 100

		records = append(records, []string{
			strconv.Itoa(i),
			fmt.Sprintf("tx-%05d-%04x", i, rng.Intn(1<<16)),
			ts.Format(domain.TimestampLayout),
			fmt.Sprintf("prod-%03d", i%sampleProducts),
			sampleCategories[rng.Intn(len(sampleCategories))],
			sampleCustomerTypes[rng.Intn(len(sampleCustomerTypes))],
			strconv.FormatFloat(price, 'f', 2, 64),
			strconv.Itoa(quantity),
			strconv.FormatFloat(total, 'f', 2, 64),
			samplePaymentTypes[rng.Intn(len(samplePaymentTypes))],
		})
	}
	return records
}

// writeCSV writes records as a CSV file in a temp dir and returns its path
func writeCSV(t *testing.T, records [][]string) string {
	t.Helper()
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(strings.Join(rec, ","))
		b.WriteString("\n")
	}
	return writeText(t, "sample.csv", b.String())
}

func writeText(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// normalizedSample loads the sample through the full normalization chain
func normalizedSample(t *testing.T, rows int) *Table {
	t.Helper()
	table, err := NewTableFromRecords(sampleRecords(rows))
	require.NoError(t, err)
	table, err = DropLeadingColumn(table)
	require.NoError(t, err)
	table, err = ParseDatetime(table, domain.ColumnTimestamp, domain.TimestampLayout)
	require.NoError(t, err)
	table, err = DeriveHour(table, domain.ColumnTimestamp)
	require.NoError(t, err)
	return table
}

// mustTable builds a table from inline records
func mustTable(t *testing.T, records [][]string) *Table {
	t.Helper()
	table, err := NewTableFromRecords(records)
	require.NoError(t, err)
	return table
}

func isNaN(v float64) bool {
	return math.IsNaN(v)
}
