// Package statements parses uploaded bank statements and persists the
// extracted transactions.
package statements

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/finobai/finobai/internal/domain"
	"github.com/rs/zerolog"
)

// ErrUnreadable is returned when the input has no usable structure at all.
var ErrUnreadable = errors.New("statement is unreadable")

const maxDescriptionRunes = 100

// ParseResult holds extracted rows plus bookkeeping about skipped ones.
type ParseResult struct {
	Transactions []domain.Transaction `json:"transactions"`
	RowsParsed   int                  `json:"rows_parsed"`
	RowsSkipped  int                  `json:"rows_skipped"`
}

// Parser extracts expense transactions from CSV and plain-text statements.
type Parser struct {
	log zerolog.Logger
}

// NewParser creates a new statement parser
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{
		log: log.With().Str("component", "statement_parser").Logger(),
	}
}

// Header synonyms used by Turkish banks, lowercased.
var (
	dateHeaders   = []string{"tarih", "date", "islem_tarihi"}
	descHeaders   = []string{"aciklama", "açıklama", "description", "desc", "merchant", "is_yeri"}
	amountHeaders = []string{"tutar", "amount", "miktar"}
	typeHeaders   = []string{"islem_tipi", "tip", "type"}
)

// Transaction types that are not expenses (payments into the card,
// refunds, interest, fees).
var nonExpenseTypes = []string{
	"ödeme", "iade", "faiz", "ucret",
	"payment", "refund", "interest", "fee",
}

var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
	"02-01-2006",
	"2006/01/02",
	"02/01/06",
	"02.01.06",
}

var amountCleaner = regexp.MustCompile(`[^\d,.\-]`)

// textLine matches "date description amount" rows in plain-text statements.
var textLine = regexp.MustCompile(`(\d{1,2}[/.]\d{1,2}[/.]\d{2,4})\s+(.+?)\s+(\d+[.,]\d{2})`)

// columnMap holds resolved column indexes for a CSV statement.
type columnMap struct {
	date     int
	desc     int
	amount   int
	txType   int // -1 when absent
	merchant int // -1 when absent
}

// ParseCSV extracts expense transactions from a CSV statement.
// Malformed rows are skipped and counted; only a structurally empty
// input is an error.
func (p *Parser) ParseCSV(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnreadable)
	}

	header := records[0]
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrUnreadable)
	}

	cols, headerIsData := resolveColumns(header)
	rows := records[1:]
	if headerIsData {
		// No recognizable header, treat the first row as data
		rows = records
	}

	result := &ParseResult{}
	for _, row := range rows {
		txn, ok := p.parseRow(row, cols)
		if !ok {
			result.RowsSkipped++
			continue
		}
		result.Transactions = append(result.Transactions, txn)
		result.RowsParsed++
	}

	return result, nil
}

// ParseText extracts transactions from a line-oriented text statement.
func (p *Parser) ParseText(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	result := &ParseResult{}
	sawLine := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sawLine = true

		m := textLine.FindStringSubmatch(line)
		if m == nil {
			result.RowsSkipped++
			continue
		}

		date, ok := parseDate(m[1])
		if !ok {
			result.RowsSkipped++
			continue
		}
		amount, ok := normalizeAmount(m[3])
		if !ok {
			result.RowsSkipped++
			continue
		}

		result.Transactions = append(result.Transactions, domain.Transaction{
			Date:        date,
			Description: truncateRunes(strings.TrimSpace(m[2]), maxDescriptionRunes),
			Amount:      amount,
		})
		result.RowsParsed++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if !sawLine {
		return nil, fmt.Errorf("%w: empty file", ErrUnreadable)
	}

	return result, nil
}

// resolveColumns finds column indexes from header synonyms. The second
// return value reports that nothing matched, i.e. the file has no header.
func resolveColumns(header []string) (columnMap, bool) {
	cols := columnMap{date: -1, desc: -1, amount: -1, txType: -1, merchant: -1}
	matched := false

	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case cols.date < 0 && contains(dateHeaders, name):
			cols.date = i
			matched = true
		case cols.desc < 0 && contains(descHeaders, name):
			cols.desc = i
			matched = true
		case cols.amount < 0 && contains(amountHeaders, name):
			cols.amount = i
			matched = true
		case cols.txType < 0 && contains(typeHeaders, name):
			cols.txType = i
			matched = true
		}
	}

	// Positional fallbacks mirror the layouts seen in the wild:
	// date first, description third (or second on narrow files),
	// amount sixth (or last).
	n := len(header)
	if cols.date < 0 {
		cols.date = 0
	}
	if cols.desc < 0 {
		if n > 2 {
			cols.desc = 2
		} else if n > 1 {
			cols.desc = 1
		} else {
			cols.desc = 0
		}
	}
	if cols.amount < 0 {
		if n > 5 {
			cols.amount = 5
		} else {
			cols.amount = n - 1
		}
	}
	// Wide exports carry the merchant in column 12
	if n > 12 {
		cols.merchant = 12
	}

	return cols, !matched
}

// parseRow converts one CSV record into a transaction. Returns false when
// the row should be skipped.
func (p *Parser) parseRow(row []string, cols columnMap) (domain.Transaction, bool) {
	if cols.date >= len(row) || cols.desc >= len(row) || cols.amount >= len(row) {
		return domain.Transaction{}, false
	}

	rawType := ""
	if cols.txType >= 0 && cols.txType < len(row) {
		rawType = strings.TrimSpace(row[cols.txType])
		if isNonExpenseType(rawType) {
			return domain.Transaction{}, false
		}
	}

	date, ok := parseDate(strings.TrimSpace(row[cols.date]))
	if !ok {
		return domain.Transaction{}, false
	}

	amount, ok := normalizeAmount(row[cols.amount])
	if !ok {
		return domain.Transaction{}, false
	}

	description := strings.TrimSpace(row[cols.desc])
	merchant := ""
	if cols.merchant >= 0 && cols.merchant < len(row) {
		merchant = strings.TrimSpace(row[cols.merchant])
		if merchant != "" {
			description = merchant + " " + description
		}
	}
	if description == "" {
		return domain.Transaction{}, false
	}

	return domain.Transaction{
		Date:        date,
		Description: truncateRunes(description, maxDescriptionRunes),
		Amount:      amount,
		Merchant:    merchant,
		RawType:     rawType,
	}, true
}

func isNonExpenseType(rawType string) bool {
	lowered := strings.ToLower(rawType)
	for _, t := range nonExpenseTypes {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

func parseDate(value string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeAmount turns a localized amount string into a positive float.
//
// Rules: strip everything but digits, separators and sign; when both "."
// and "," appear the rightmost one is the decimal separator; a lone ","
// is decimal only when exactly two digits follow it. The sign is
// discarded: statements mix signed conventions and the type-column filter
// is the credit guard, so magnitudes are coerced positive here.
func normalizeAmount(value string) (float64, bool) {
	cleaned := amountCleaner.ReplaceAllString(value, "")
	if cleaned == "" {
		return 0, false
	}

	dotIdx := strings.LastIndex(cleaned, ".")
	commaIdx := strings.LastIndex(cleaned, ",")

	switch {
	case dotIdx >= 0 && commaIdx >= 0:
		if commaIdx > dotIdx {
			// 1.234,56 -> comma is decimal
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// 1,234.56 -> dot is decimal
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case commaIdx >= 0:
		after := len(cleaned) - commaIdx - 1
		if after == 2 && strings.Count(cleaned, ",") == 1 {
			// 123,45 -> decimal comma
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// 1,234 or 1,234,567 -> thousands separators
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}

	amount = math.Abs(amount)
	if amount <= 0 {
		return 0, false
	}
	return amount, true
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
