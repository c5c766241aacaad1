package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/logger"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

const (
	holdingsHeader      = "Symbol"
	holdingsMarker      = "Day's Gain $"
	accountMarker       = "Net Account Value"
	minHoldingColumns   = 13
	holdingColumnsCount = 14
)

// holdingRow is one line of the holdings section, in column order.
type holdingRow struct {
	Symbol              string
	DaysGainDollar      string
	DaysGainPercent     string
	Quantity            string
	TotalGainDollar     string
	TotalGainPercent    string
	LastPrice           string
	Value               string
	PortfolioPercentage string
	DividendYield       string
	PeRatio             string
	Eps                 string
	MarketCap           string
	Beta                string
}

var accountSummaryColumns = []string{
	"Account",
	"Net Account Value",
	"Total Gain $",
	"Total Gain %",
	"Day's Gain Unrealized $",
	"Day's Gain Unrealized %",
	"Available For Withdrawal",
	"Cash Purchasing Power",
}

type ParsedCsv struct {
	AccountSummary map[string]any
	Holdings       []domain.EnrichedHolding
	// Warnings lists cells that could not be read as numbers. They are kept
	// as zero.
	Warnings []string
}

// ParsePortfolioCsv reads a brokerage export. The file holds an account
// summary section and a holdings section with different widths; TOTAL, CASH,
// blank and short holding rows are ignored.
func ParsePortfolioCsv(r io.Reader) (*ParsedCsv, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio csv: %w", err)
	}

	out := &ParsedCsv{
		AccountSummary: map[string]any{},
		Holdings:       []domain.EnrichedHolding{},
	}

	holdingsStart := -1
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if row[0] == holdingsHeader && slices.Contains(row, holdingsMarker) {
			holdingsStart = i
		} else if strings.Contains(row[0], "Account") && slices.Contains(row, accountMarker) && i+1 < len(rows) {
			summary, err := parseAccountSummary(rows[i+1])
			if err == nil {
				out.AccountSummary = summary
			}
		}
	}
	if holdingsStart < 0 {
		return out, nil
	}

	section := [][]string{}
	for _, row := range rows[holdingsStart+1:] {
		if len(row) < minHoldingColumns {
			continue
		}
		symbol := strings.TrimSpace(row[0])
		if symbol == "" || symbol == "TOTAL" || symbol == "CASH" {
			continue
		}
		fixed := make([]string, holdingColumnsCount)
		copy(fixed, row)
		section = append(section, fixed)
	}
	if len(section) == 0 {
		return out, nil
	}

	buf := &bytes.Buffer{}
	if err := csv.NewWriter(buf).WriteAll(section); err != nil {
		return nil, err
	}
	holdingRows := []holdingRow{}
	if err := gocsv.UnmarshalCSVWithoutHeaders(csv.NewReader(buf), &holdingRows); err != nil {
		return nil, fmt.Errorf("failed to decode holdings: %w", err)
	}

	for _, row := range holdingRows {
		h, badCells := row.toHolding()
		if len(badCells) > 0 {
			warning := fmt.Sprintf("%s: unreadable %s read as 0", h.Symbol, strings.Join(badCells, ", "))
			logger.Warn("%s", warning)
			out.Warnings = append(out.Warnings, warning)
		}
		out.Holdings = append(out.Holdings, h)
	}

	return out, nil
}

func parseAccountSummary(row []string) (map[string]any, error) {
	summary := map[string]any{}
	for i, col := range accountSummaryColumns {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		if i == 0 {
			summary[col] = strings.Trim(value, `"`)
			continue
		}
		f, err := parseNumber(value)
		if err != nil {
			return nil, err
		}
		summary[col] = f
	}
	return summary, nil
}

// toHolding reads every numeric cell; a cell that does not parse is zero and
// its column is returned in badCells.
func (r holdingRow) toHolding() (h domain.EnrichedHolding, badCells []string) {
	nums := map[string]float64{}
	for name, raw := range map[string]string{
		"days_gain_dollar":     r.DaysGainDollar,
		"days_gain_percent":    r.DaysGainPercent,
		"quantity":             r.Quantity,
		"total_gain_dollar":    r.TotalGainDollar,
		"total_gain_percent":   r.TotalGainPercent,
		"last_price":           r.LastPrice,
		"value":                r.Value,
		"portfolio_percentage": r.PortfolioPercentage,
		"dividend_yield":       r.DividendYield,
		"pe_ratio":             r.PeRatio,
		"eps":                  r.Eps,
		"beta":                 r.Beta,
	} {
		f, err := parseNumber(raw)
		if err != nil {
			badCells = append(badCells, name)
			f = 0
		}
		nums[name] = f
	}
	slices.Sort(badCells)

	h = domain.EnrichedHolding{
		Symbol:              strings.TrimSpace(r.Symbol),
		DaysGainDollar:      nums["days_gain_dollar"],
		DaysGainPercent:     nums["days_gain_percent"],
		Quantity:            nums["quantity"],
		TotalGainDollar:     nums["total_gain_dollar"],
		TotalGainPercent:    domain.FloatPointer(nums["total_gain_percent"]),
		LastPrice:           nums["last_price"],
		Value:               domain.FloatPointer(nums["value"]),
		PortfolioPercentage: domain.FloatPointer(nums["portfolio_percentage"]),
		DividendYield:       nums["dividend_yield"],
		PeRatio:             nums["pe_ratio"],
		Eps:                 nums["eps"],
		MarketCap:           domain.StringPointer(strings.TrimSpace(r.MarketCap)),
		Beta:                domain.FloatPointer(nums["beta"]),
	}
	return h, badCells
}

// parseNumber reads an empty cell as zero.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", "$", "", "%", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// BuildRawPortfolio wraps parsed rows in the document written to the uploads
// area.
func BuildRawPortfolio(parsed *ParsedCsv, sourceFile string, now time.Time) domain.RawPortfolio {
	accountValue, _ := parsed.AccountSummary[accountMarker].(float64)
	return domain.RawPortfolio{
		Metadata: domain.PortfolioMetadata{
			ProcessedAt:   now.UTC(),
			SourceFile:    sourceFile,
			TotalHoldings: len(parsed.Holdings),
			AccountValue:  accountValue,
		},
		AccountSummary: parsed.AccountSummary,
		Holdings:       parsed.Holdings,
	}
}

// UploadDestinationKey maps an upload named "{id}-{name}.csv" to
// "csv-uploads/{id}/{name}.json".
func UploadDestinationKey(sourceKey string) (string, error) {
	filename := path.Base(sourceKey)
	identifier, original, ok := strings.Cut(filename, "-")
	if !ok || identifier == "" || original == "" {
		return "", domain.NewValidationError("upload %q is not named {id}-{name}.csv", sourceKey)
	}
	base := strings.TrimSuffix(original, path.Ext(original))
	return fmt.Sprintf("csv-uploads/%s/%s.json", identifier, base), nil
}

// SplitObjectKey reads "{area}/{id}/{file}.json" into the portfolio id and
// the file's base name. An "upload_" prefix on the id folder is dropped.
func SplitObjectKey(key string) (portfolioID string, baseName string, err error) {
	parts := strings.Split(key, "/")
	if len(parts) < 3 {
		return "", "", domain.NewValidationError("invalid object key format: %s", key)
	}
	portfolioID = strings.TrimPrefix(parts[1], "upload_")
	if portfolioID == "" {
		return "", "", domain.NewValidationError("invalid object key format: %s", key)
	}
	file := parts[len(parts)-1]
	baseName = strings.TrimSuffix(file, path.Ext(file))
	return portfolioID, baseName, nil
}

func ProcessedKey(portfolioID, baseName string) string {
	return fmt.Sprintf("processed/%s/%s.json", portfolioID, baseName)
}
