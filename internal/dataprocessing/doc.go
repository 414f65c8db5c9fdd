// Package dataprocessing loads a sales-transaction sample into a typed table and
// computes the descriptive views of an exploratory analysis over it.
//
// # Architecture
//
// The package is organized into four parts:
//
// 1. Loader: reads CSV or XLSX files into a Table backed by a gota DataFrame
// 2. Normalizer: drops the index column, parses timestamps, derives the hour
// 3. Summaries: describe()-style statistics, unique-value reports, info and head
// 4. Correlation and insights: Pearson matrix and the narrative findings
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger)
//	table, err := loader.Load(ctx, "sample_sales_data.csv")
//	if err != nil {
//	    return err
//	}
//	table, _ = dataprocessing.DropLeadingColumn(table)
//	table, err = dataprocessing.ParseDatetime(table, "timestamp", domain.TimestampLayout)
//	table, err = dataprocessing.DeriveHour(table, "timestamp")
//
//	stats := dataprocessing.SummaryStatistics(table)
//	corr := dataprocessing.CorrelationMatrix(table)
//
// # Data Flow
//
//	File → Loader → Table → Normalizer → Table → {Statistics, Reports, Correlation} → Insights
//
// Every transformation returns a new Table; the input is left untouched.
//
// # Error Handling
//
// Errors are internal/errors AppErrors: READ for unreadable or malformed files,
// PARSE for timestamp values that do not match the layout (with column, row and
// value in the context) and COLUMN for absent or mistyped columns.
package dataprocessing
