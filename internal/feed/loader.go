package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/tennis-edge/internal/logger"
	"github.com/yourusername/tennis-edge/internal/models"
	"github.com/yourusername/tennis-edge/internal/odds"
	"github.com/yourusername/tennis-edge/internal/oracle"
)

const maxLineSize = 1024 * 1024

// Probabilities supplies estimates for records without one
type Probabilities interface {
	Estimate(ctx context.Context, features oracle.MatchFeatures) (models.ProbabilityEstimate, error)
}

// Options configures a Loader
type Options struct {
	// DefaultFormat applies to records without odds_format
	DefaultFormat odds.Format
	// Oracle fills in missing probabilities; nil means they are required
	Oracle Probabilities
	// SkipInvalid drops malformed records instead of failing the load
	SkipInvalid bool
}

// Result is the outcome of loading one feed
type Result struct {
	Opportunities []models.BetOpportunity
	Skipped       int
}

// RecordError locates a record that could not be converted
type RecordError struct {
	Index   int
	MatchID string
	Err     error
}

func (e *RecordError) Error() string {
	if e.MatchID != "" {
		return fmt.Sprintf("record %d (match %s): %v", e.Index, e.MatchID, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Loader converts feed records into bet opportunities. Records are kept
// in file order; sortedness is checked by the simulator.
type Loader struct {
	opts     Options
	validate *validator.Validate
	logger   *logrus.Entry
}

// NewLoader creates a feed loader
func NewLoader(opts Options, log *logrus.Logger) *Loader {
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = odds.FormatDecimal
	}
	if log == nil {
		log = logger.Discard()
	}

	v := validator.New()
	_ = v.RegisterValidation("oddsformat", func(fl validator.FieldLevel) bool {
		_, err := odds.ParseFormat(fl.Field().String())
		return err == nil
	})

	return &Loader{
		opts:     opts,
		validate: v,
		logger:   log.WithField("component", "feed"),
	}
}

// LoadFile reads a .json array or a .jsonl/.ndjson file
func (l *Loader) LoadFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return l.LoadJSONLines(ctx, f)
	default:
		return l.LoadJSON(ctx, f)
	}
}

// LoadJSON reads a JSON array of records
func (l *Loader) LoadJSON(ctx context.Context, r io.Reader) (*Result, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return l.convertAll(ctx, records)
}

// LoadJSONLines reads one record per line; blank lines are ignored
func (l *Loader) LoadJSONLines(ctx context.Context, r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []Record
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: failed to decode record: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	return l.convertAll(ctx, records)
}

func (l *Loader) convertAll(ctx context.Context, records []Record) (*Result, error) {
	result := &Result{Opportunities: make([]models.BetOpportunity, 0, len(records))}
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		opp, err := l.Convert(ctx, rec)
		if err != nil {
			recErr := &RecordError{Index: i, MatchID: rec.MatchID, Err: err}
			if l.opts.SkipInvalid && isRecordError(err) {
				result.Skipped++
				l.logger.WithFields(logrus.Fields{
					"index":    i,
					"match_id": rec.MatchID,
					"error":    err.Error(),
				}).Warn("Skipping invalid feed record")
				continue
			}
			return result, recErr
		}
		result.Opportunities = append(result.Opportunities, opp)
	}

	l.logger.WithFields(logrus.Fields{
		"records": len(records),
		"loaded":  len(result.Opportunities),
		"skipped": result.Skipped,
	}).Info("Feed loaded")
	return result, nil
}

// Convert validates one record and builds its opportunity
func (l *Loader) Convert(ctx context.Context, rec Record) (models.BetOpportunity, error) {
	if err := l.validate.Struct(rec); err != nil {
		return models.BetOpportunity{}, fmt.Errorf("%w: %s", models.ErrInsufficientData, formatValidationErrors(err))
	}

	date, err := ParseDate(rec.Date)
	if err != nil {
		return models.BetOpportunity{}, err
	}

	format := l.opts.DefaultFormat
	if rec.OddsFormat != "" {
		if format, err = odds.ParseFormat(rec.OddsFormat); err != nil {
			return models.BetOpportunity{}, err
		}
	}
	quoteA, quoteB, err := odds.ParseQuotePair(string(rec.OddsA), string(rec.OddsB), format)
	if err != nil {
		return models.BetOpportunity{}, err
	}

	opp := models.BetOpportunity{
		MatchID: rec.MatchID,
		Date:    date,
		PlayerA: rec.PlayerA,
		PlayerB: rec.PlayerB,
		Surface: rec.Surface,
		QuoteA:  quoteA,
		QuoteB:  quoteB,
	}
	if rec.Outcome != "" {
		opp.RealizedOutcome = models.OutcomePtr(models.Outcome(rec.Outcome))
	}

	switch {
	case rec.ProbabilityA != nil:
		opp.Estimate, err = models.NewProbabilityEstimate(rec.MatchID, *rec.ProbabilityA)
	case l.opts.Oracle != nil:
		opp.Estimate, err = l.opts.Oracle.Estimate(ctx, rec.features(date, quoteA, quoteB))
	default:
		err = fmt.Errorf("%w: no probability_a and no oracle configured", models.ErrInsufficientData)
	}
	if err != nil {
		return models.BetOpportunity{}, err
	}
	return opp, nil
}

func isRecordError(err error) bool {
	return errors.Is(err, models.ErrInvalidProbability) ||
		errors.Is(err, models.ErrInvalidOdds) ||
		errors.Is(err, models.ErrInsufficientData)
}

func formatValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param()))
		case "oddsformat":
			msgs = append(msgs, fmt.Sprintf("%s is not a supported odds format", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", e.Field(), e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
