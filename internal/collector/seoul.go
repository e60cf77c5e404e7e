package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/jgoulah/seoulenergy/internal/log"
	"github.com/jgoulah/seoulenergy/pkg/models"
)

// DefaultBaseURL is the Seoul Open Data API host
const DefaultBaseURL = "http://openapi.seoul.go.kr:8088"

const (
	serviceName = "energyUseDataSummaryInfo"

	// Fixed page window: page 1, five rows. Months with more matching rows
	// are truncated by the API; no pagination follow-up is made.
	pageStart = 1
	pageEnd   = 5
)

// summaryResponse mirrors the parts of the API payload we read. Both the
// wrapper and the row list may be absent.
type summaryResponse struct {
	Info *struct {
		Row []models.RawRecord `json:"row"`
	} `json:"energyUseDataSummaryInfo"`
}

// Result is the accumulated output of a collection run
type Result struct {
	Rows   []models.RawRecord
	Months int // months requested
	Failed int // months that returned a non-200 status
}

// Collector fetches monthly energy usage summaries one month at a time
type Collector struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	logger  *log.Logger
}

// New creates a collector for the given API key using the default HTTP client
func New(apiKey string, logger *log.Logger) *Collector {
	if logger == nil {
		logger = log.Discard()
	}
	return &Collector{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		Client:  http.DefaultClient,
		logger:  logger.WithComponent(log.ComponentCollector),
	}
}

// MonthURL builds the request URL for one month
func (c *Collector) MonthURL(ym models.YearMonth) string {
	return fmt.Sprintf("%s/%s/json/%s/%d/%d/%d/%02d",
		strings.TrimRight(c.BaseURL, "/"), c.APIKey, serviceName, pageStart, pageEnd, ym.Year, ym.Month)
}

// Collect walks every month in [start, end] in order and returns the
// personal-category rows in API response order. A non-200 month is logged
// and skipped; a transport error aborts the run.
func (c *Collector) Collect(ctx context.Context, start, end models.YearMonth) (*Result, error) {
	result := &Result{}

	for ym := start; !end.Before(ym); ym = ym.Next() {
		result.Months++

		rows, status, err := c.fetchMonth(ctx, ym)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", ym, err)
		}
		if status != http.StatusOK {
			result.Failed++
			c.logger.Warn("API request failed",
				log.FieldYear, ym.Year,
				log.FieldMonth, ym.Month,
				log.FieldStatusCode, status)
			continue
		}

		kept := FilterPersonal(rows)
		c.logger.Debug("fetched month",
			log.FieldYear, ym.Year,
			log.FieldMonth, ym.Month,
			log.FieldRows, len(rows),
			log.FieldKept, len(kept))
		result.Rows = append(result.Rows, kept...)
	}

	c.logger.Info("collection finished",
		log.FieldMonths, result.Months,
		log.FieldFailed, result.Failed,
		log.FieldRows, len(result.Rows))

	return result, nil
}

// fetchMonth performs one GET and returns the decoded rows with the status code.
// Rows are only decoded for a 200 response.
func (c *Collector) fetchMonth(ctx context.Context, ym models.YearMonth) ([]models.RawRecord, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.MonthURL(ym), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response: %w", err)
	}

	rows, err := DecodeRows(body)
	if err != nil {
		// Malformed payloads count as an empty month
		c.logger.Warn("could not decode response",
			log.FieldYear, ym.Year,
			log.FieldMonth, ym.Month,
			log.FieldError, err)
		return nil, resp.StatusCode, nil
	}

	return rows, resp.StatusCode, nil
}

// DecodeRows extracts energyUseDataSummaryInfo.row from a response body.
// A missing wrapper or row list yields no rows and no error.
func DecodeRows(body []byte) ([]models.RawRecord, error) {
	var payload summaryResponse
	// Duplicate members resolve to the last value; invalid UTF-8 becomes U+FFFD
	err := json.Unmarshal(body, &payload,
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true))
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if payload.Info == nil {
		return nil, nil
	}
	return payload.Info.Row, nil
}

// FilterPersonal keeps rows whose trimmed MM_TYPE is the personal category
func FilterPersonal(rows []models.RawRecord) []models.RawRecord {
	var kept []models.RawRecord
	for _, r := range rows {
		if strings.TrimSpace(r.String(models.FieldCategory)) == models.CategoryPersonal {
			kept = append(kept, r)
		}
	}
	return kept
}
