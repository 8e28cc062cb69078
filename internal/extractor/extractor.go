// Package extractor turns raw order text into order rows through one call
// to an external language model, then applies the deterministic defaults
// and normalization the rest of the system relies on.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/eshaffer321/orderparser/internal/domain/classifier"
	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

var (
	// ErrMissingAPIKey is returned before any network call when the provider
	// has no credentials.
	ErrMissingAPIKey = errors.New("System Error: API_KEY is missing. Please check your .env.local file or config.yaml and restart the server.")

	// ErrEmptyInput is returned for blank order text.
	ErrEmptyInput = errors.New("Please enter some order text.")

	// ErrNoData is returned when the model answers with an empty body.
	ErrNoData = errors.New("No data returned from AI")
)

// ExtractionError wraps a provider or decoding failure. Its message is
// shown to the operator as is.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "Failed to process orders. " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Generator performs one schema-constrained completion and returns the raw
// JSON text.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	Name() string
}

// Extractor converts raw text to a ParsingResult.
type Extractor struct {
	gen    Generator
	newID  func() string
	logger *slog.Logger
}

// New creates an extractor. A nil generator means no credentials were
// configured; Extract then fails with ErrMissingAPIKey.
func New(gen Generator, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		gen:    gen,
		newID:  uuid.NewString,
		logger: logger,
	}
}

// WithIDFunc overrides row id generation. Intended for tests.
func (e *Extractor) WithIDFunc(fn func() string) *Extractor {
	e.newID = fn
	return e
}

// Ready reports whether a provider is configured.
func (e *Extractor) Ready() bool {
	return e.gen != nil
}

// Extract runs the model over text and post-processes its output.
func (e *Extractor) Extract(ctx context.Context, text string) (orders.ParsingResult, error) {
	if strings.TrimSpace(text) == "" {
		return orders.ParsingResult{}, ErrEmptyInput
	}
	if e.gen == nil {
		return orders.ParsingResult{}, ErrMissingAPIKey
	}

	e.logger.Info("requesting extraction", "provider", e.gen.Name(), "input_chars", len([]rune(text)))

	raw, err := e.gen.Generate(ctx, BuildPrompt(text), ResponseSchema())
	if err != nil {
		e.logger.Error("extraction call failed", "provider", e.gen.Name(), "error", err)
		return orders.ParsingResult{}, &ExtractionError{Err: err}
	}

	parsed, err := decodeResponse(raw)
	if err != nil {
		e.logger.Error("extraction response rejected", "provider", e.gen.Name(), "error", err)
		return orders.ParsingResult{}, &ExtractionError{Err: err}
	}

	result := e.postProcess(parsed)
	e.logger.Info("extraction complete",
		"raw_orders", result.Stats.RawOrderCount,
		"rows", result.Stats.ProcessedRowCount,
		"au_rows", result.Stats.AuRowCount)

	return result, nil
}

// rawExtraction mirrors ResponseSchema.
type rawExtraction struct {
	RawOrderCount flexInt    `json:"rawOrderCount"`
	Orders        []rawOrder `json:"orders"`
}

type rawOrder struct {
	CustomerOrderNo flexString `json:"customerOrderNo"`
	RecipientName   flexString `json:"recipientName"`
	Address1        flexString `json:"address1"`
	Street          flexString `json:"street"`
	City            flexString `json:"city"`
	State           flexString `json:"state"`
	Zip             flexString `json:"zip"`
	Phone           flexString `json:"phone"`
	ProductNameCn   flexString `json:"productNameCn"`
	Quantity        flexString `json:"quantity"`
	Remarks         flexString `json:"remarks"`
	Specs           flexString `json:"specs"`
	IsBlacklisted   flexBool   `json:"isBlacklisted"`
	Warehouse       flexString `json:"warehouse"`
}

func decodeResponse(raw string) (*rawExtraction, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return nil, ErrNoData
	}

	var parsed rawExtraction
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	return &parsed, nil
}

func (e *Extractor) postProcess(parsed *rawExtraction) orders.ParsingResult {
	rows := make([]orders.OrderRow, 0, len(parsed.Orders))
	for i, o := range parsed.Orders {
		address1 := NormalizePunctuation(string(o.Address1))
		rows = append(rows, orders.OrderRow{
			ID:                    e.newID(),
			CustomerOrderNo:       strings.TrimSpace(string(o.CustomerOrderNo)),
			RecipientName:         NormalizePunctuation(string(o.RecipientName)),
			Address1:              address1,
			Street:                NormalizePunctuation(string(o.Street)),
			City:                  NormalizePunctuation(string(o.City)),
			State:                 strings.TrimSpace(string(o.State)),
			Zip:                   strings.TrimSpace(string(o.Zip)),
			Phone:                 NormalizePhone(string(o.Phone)),
			ProductNameCn:         string(o.ProductNameCn),
			Quantity:              or(strings.TrimSpace(string(o.Quantity)), "1"),
			Remarks:               NormalizePunctuation(string(o.Remarks)),
			Specs:                 NormalizePunctuation(string(o.Specs)),
			IsBlacklisted:         bool(o.IsBlacklisted) || ContainsBlacklisted(address1),
			Warehouse:             or(strings.TrimSpace(string(o.Warehouse)), "Other"),
			OriginalRawOrderIndex: i,
		})
	}

	return orders.ParsingResult{
		Orders:    rows,
		Stats:     classifier.ComputeStats(int(parsed.RawOrderCount), rows),
		ChangeLog: []orders.ChangeLogEntry{},
	}
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// stripCodeFence removes a surrounding ```json fence some models add even in
// JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// flexString accepts JSON strings, numbers, booleans and null.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

// flexInt accepts integers, floats and numeric strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return fmt.Errorf("rawOrderCount: %w", err)
	}
	*f = flexInt(n)
	return nil
}

// flexBool accepts booleans, "true"/"false" style strings, 0/1 and null.
// Anything else reads as false.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(string(s))))
	*f = flexBool(err == nil && b)
	return nil
}
