package stops

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/campusmap/metrics"
)

// NumColumns is the column count of a stop line:
// id,route,name,direction,location,lat,lon
const NumColumns = 7

// ErrMalformedRecord marks a stop line that was skipped during load
var ErrMalformedRecord = errors.New("malformed stop record")

// LineError describes one skipped line
type LineError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *LineError) Unwrap() error { return ErrMalformedRecord }

// LoadReport summarizes a stop load
type LoadReport struct {
	Loaded  int          `json:"loaded"`
	Skipped []*LineError `json:"skipped"`
}

type stopRecord struct {
	ID        string  `validate:"required"`
	Direction string  `validate:"required"`
	Lat       float64 `validate:"gte=-90,lte=90"`
	Lon       float64 `validate:"gte=-180,lte=180"`
}

var validate = validator.New()

// LoadFile opens a stop list and reads it with Load
func LoadFile(path string) ([]Stop, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stops file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load reads comma-separated stop lines without a header.
//
// Malformed lines are skipped, never fatal: a wrong column count, an
// unparsable or out-of-range coordinate, or an empty id or direction. Each
// skipped line is logged and listed in the report. Only read errors fail the
// whole load.
func Load(r io.Reader) ([]Stop, *LoadReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	out := []Stop{}
	report := &LoadReport{Skipped: []*LineError{}}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				skip(report, &LineError{Line: pe.StartLine, Reason: pe.Err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("failed to read stops: %w", err)
		}
		line, _ := cr.FieldPos(0)
		s, lerr := parseStop(line, row)
		if lerr != nil {
			skip(report, lerr)
			continue
		}
		out = append(out, s)
	}
	report.Loaded = len(out)
	slog.Info("stops loaded", "stops", report.Loaded, "skipped", len(report.Skipped))
	return out, report, nil
}

func skip(report *LoadReport, e *LineError) {
	slog.Warn("skipping stop line", "line", e.Line, "reason", e.Reason)
	metrics.StopRowsSkippedTotal.Inc()
	report.Skipped = append(report.Skipped, e)
}

func parseStop(line int, row []string) (Stop, *LineError) {
	if len(row) != NumColumns {
		return Stop{}, &LineError{Line: line, Reason: fmt.Sprintf("expected %d columns, got %d", NumColumns, len(row))}
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}
	lat, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return Stop{}, &LineError{Line: line, Reason: fmt.Sprintf("invalid latitude %q", row[5])}
	}
	lon, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return Stop{}, &LineError{Line: line, Reason: fmt.Sprintf("invalid longitude %q", row[6])}
	}
	rec := stopRecord{ID: row[0], Direction: row[3], Lat: lat, Lon: lon}
	if err := validate.Struct(rec); err != nil {
		return Stop{}, &LineError{Line: line, Reason: validationReason(err)}
	}
	return Stop{
		ID:        row[0],
		Route:     row[1],
		Name:      row[2],
		Direction: row[3],
		Location:  row[4],
		Lat:       lat,
		Lon:       lon,
	}, nil
}

func validationReason(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
