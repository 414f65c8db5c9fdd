package validation

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"saleseda/pkg/contracts/domain"
)

// Finding kinds
const (
	FindingInvalidField  = "invalid_field"
	FindingDuplicateID   = "duplicate_id"
	FindingTotalMismatch = "total_mismatch"
)

// Finding is a non-fatal observation about one row
type Finding struct {
	Kind          string `json:"kind"`
	Row           int    `json:"row"`
	TransactionID string `json:"transaction_id"`
	Field         string `json:"field,omitempty"`
	Message       string `json:"message"`
}

// QualityReport collects the findings of a record check. Rows are never altered.
type QualityReport struct {
	Checked  int       `json:"checked"`
	Findings []Finding `json:"findings"`
}

// Counts returns the number of findings per kind
func (r QualityReport) Counts() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.Findings {
		counts[f.Kind]++
	}
	return counts
}

// Kinds returns the finding kinds present, sorted
func (r QualityReport) Kinds() []string {
	counts := r.Counts()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Clean reports whether no findings were raised
func (r QualityReport) Clean() bool {
	return len(r.Findings) == 0
}

// RecordValidator checks transaction records against their field rules and
// the cross-row checks of the sample
type RecordValidator struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewRecordValidator creates a record validator
func NewRecordValidator(logger *slog.Logger) *RecordValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordValidator{
		logger:   logger,
		validate: validator.New(),
	}
}

// CheckQuality validates every record, flags repeated transaction ids and rows
// whose total differs from unit_price x quantity once both are rounded to cents.
// Rows are numbered from 1.
func (v *RecordValidator) CheckQuality(records []domain.TransactionRecord) QualityReport {
	report := QualityReport{Checked: len(records)}
	firstSeen := make(map[string]int)

	for i, rec := range records {
		row := i + 1

		if err := v.validate.Struct(rec); err != nil {
			var verrs validator.ValidationErrors
			if stderrors.As(err, &verrs) {
				for _, fe := range verrs {
					report.Findings = append(report.Findings, Finding{
						Kind:          FindingInvalidField,
						Row:           row,
						TransactionID: rec.TransactionID,
						Field:         fe.Field(),
						Message:       fmt.Sprintf("%s fails %s", fe.Field(), ruleText(fe)),
					})
				}
			}
		}

		if rec.TransactionID != "" {
			if first, ok := firstSeen[rec.TransactionID]; ok {
				report.Findings = append(report.Findings, Finding{
					Kind:          FindingDuplicateID,
					Row:           row,
					TransactionID: rec.TransactionID,
					Field:         "TransactionID",
					Message:       fmt.Sprintf("transaction id already used on row %d", first),
				})
			} else {
				firstSeen[rec.TransactionID] = row
			}
		}

		if expected, ok := expectedTotal(rec); ok {
			actual := decimal.NewFromFloat(rec.Total).Round(2)
			if !actual.Equal(expected) {
				report.Findings = append(report.Findings, Finding{
					Kind:          FindingTotalMismatch,
					Row:           row,
					TransactionID: rec.TransactionID,
					Field:         "Total",
					Message: fmt.Sprintf("total %s differs from unit_price x quantity %s",
						actual.StringFixed(2), expected.StringFixed(2)),
				})
			}
		}
	}

	v.logger.Info("Record quality checked",
		slog.Int("records", report.Checked),
		slog.Int("findings", len(report.Findings)))

	return report
}

// expectedTotal is unit_price x quantity rounded to cents. ok is false when
// either operand is unusable.
func expectedTotal(rec domain.TransactionRecord) (decimal.Decimal, bool) {
	if !finite(rec.UnitPrice) || !finite(rec.Total) || rec.Quantity < 0 {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(rec.UnitPrice).
		Mul(decimal.NewFromInt(int64(rec.Quantity))).
		Round(2), true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func ruleText(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
