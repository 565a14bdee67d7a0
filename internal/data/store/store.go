package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-temp-monitor/internal/core/model"
	"github.com/penwyp/go-temp-monitor/internal/util"
)

// TimestampLayout is the on-disk timestamp format. The zone offset is mandatory.
const TimestampLayout = "2006-01-02 15:04:05-0700"

// Column names of the persisted file.
const (
	ColumnTimestamp   = "timestamp"
	ColumnTemperature = "temperature"
	ColumnMedication  = "medication"
)

// Header is written at the top of every saved file.
var Header = []string{ColumnTimestamp, ColumnTemperature, ColumnMedication}

// Zone-aware layouts accepted on load besides TimestampLayout. Files written
// by older tooling use an RFC 3339 style offset ("+00:00") and may carry
// fractional seconds.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05Z07:00",
	time.RFC3339,
}

// Store persists the reading log.
type Store interface {
	Load() (model.ReadingLog, error)
	Append(log model.ReadingLog, reading model.Reading) (model.ReadingLog, error)
	Path() string
}

var _ Store = (*FileStore)(nil)

// FileStore keeps the log in a single CSV file that is rewritten in full on
// every append.
type FileStore struct {
	path     string
	location *time.Location
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLocation sets the zone timestamps are written in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *FileStore) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewFileStore creates a store backed by path. The file is not touched until
// the first Load or Append.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:     path,
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the whole log. A missing file yields an empty log.
func (s *FileStore) Load() (model.ReadingLog, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			util.LogDebug("No reading log found, starting empty", util.F("path", s.path))
			return model.ReadingLog{}, nil
		}
		return nil, fmt.Errorf("failed to open reading log: %w", err)
	}
	defer file.Close()

	log, err := s.decode(file)
	if err != nil {
		return nil, err
	}

	util.LogDebug("Loaded reading log", util.F("path", s.path), util.F("rows", len(log)))
	return log, nil
}

type columnIndex struct {
	timestamp   int
	temperature int
	medication  int // -1 when the file predates the medication column
}

func (s *FileStore) decode(r io.Reader) (model.ReadingLog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return model.ReadingLog{}, nil
	}
	if err != nil {
		return nil, s.csvError(err)
	}

	cols, err := s.resolveColumns(header)
	if err != nil {
		return nil, err
	}

	log := model.ReadingLog{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, s.csvError(err)
		}
		row, _ := reader.FieldPos(0)

		reading, err := s.parseRecord(record, cols, row)
		if err != nil {
			return nil, err
		}
		log = append(log, reading)
	}
	return log, nil
}

func (s *FileStore) resolveColumns(header []string) (columnIndex, error) {
	cols := columnIndex{timestamp: -1, temperature: -1, medication: -1}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch name {
		case ColumnTimestamp:
			cols.timestamp = i
		case ColumnTemperature:
			cols.temperature = i
		case ColumnMedication:
			cols.medication = i
		}
	}

	if cols.timestamp < 0 || cols.temperature < 0 {
		return cols, &FormatError{
			Path: s.path,
			Row:  1,
			Err:  fmt.Errorf("header %q must contain %q and %q", strings.Join(header, ","), ColumnTimestamp, ColumnTemperature),
		}
	}
	if cols.medication < 0 {
		util.LogDebug("Reading log has no medication column, treating all rows as unmedicated", util.F("path", s.path))
	}
	return cols, nil
}

func (s *FileStore) parseRecord(record []string, cols columnIndex, row int) (model.Reading, error) {
	field := func(idx int) (string, bool) {
		if idx < 0 || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	rawTS, ok := field(cols.timestamp)
	if !ok {
		return model.Reading{}, &FormatError{Path: s.path, Row: row, Column: ColumnTimestamp, Err: errors.New("missing field")}
	}
	ts, err := ParseTimestamp(rawTS)
	if err != nil {
		return model.Reading{}, &FormatError{Path: s.path, Row: row, Column: ColumnTimestamp, Value: rawTS, Err: err}
	}

	rawTemp, ok := field(cols.temperature)
	if !ok {
		return model.Reading{}, &FormatError{Path: s.path, Row: row, Column: ColumnTemperature, Err: errors.New("missing field")}
	}
	temp, err := strconv.ParseFloat(rawTemp, 64)
	if err == nil && (math.IsNaN(temp) || math.IsInf(temp, 0)) {
		err = errors.New("not a finite number")
	}
	if err != nil {
		return model.Reading{}, &FormatError{Path: s.path, Row: row, Column: ColumnTemperature, Value: rawTemp, Err: err}
	}

	var medication *string
	if med, ok := field(cols.medication); ok && med != "" {
		medication = &med
	}

	return model.NewReading(ts, temp, medication), nil
}

func (s *FileStore) csvError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &FormatError{Path: s.path, Row: parseErr.StartLine, Err: parseErr.Err}
	}
	return fmt.Errorf("failed to read reading log: %w", err)
}

// ParseTimestamp parses a stored timestamp. Values without a zone offset are
// rejected rather than assumed to be in any particular zone.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err == nil {
		return t, nil
	}
	for _, layout := range fallbackLayouts {
		if t, fbErr := time.Parse(layout, value); fbErr == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expected format YYYY-MM-DD HH:MM:SS±HHMM: %w", err)
}

// FormatTimestamp renders t in the on-disk layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Append adds reading to log, persists the whole log sorted by timestamp and
// returns the sorted result. The passed log is not modified.
func (s *FileStore) Append(log model.ReadingLog, reading model.Reading) (model.ReadingLog, error) {
	next := make(model.ReadingLog, 0, len(log)+1)
	next = append(next, log...)
	next = append(next, s.normalize(reading))
	next = next.Sorted()

	if err := s.save(next); err != nil {
		return nil, err
	}

	util.LogInfo("Appended reading",
		util.F("path", s.path),
		util.F("timestamp", FormatTimestamp(reading.Timestamp.In(s.location))),
		util.F("temperature", reading.Temperature),
		util.F("rows", len(next)))
	return next, nil
}

// normalize brings a reading to the precision the file can hold, so the
// returned log matches what a later Load produces.
func (s *FileStore) normalize(r model.Reading) model.Reading {
	r.Timestamp = r.Timestamp.In(s.location).Truncate(time.Second)
	r.Temperature = model.RoundTemperature(r.Temperature)
	if r.HasMedication() {
		r.Medication = model.StringPtr(strings.TrimSpace(*r.Medication))
	} else {
		r.Medication = nil
	}
	return r
}

// save replaces the file with log. Data goes to a temp file in the same
// directory first, so readers see either the old or the new file.
func (s *FileStore) save(log model.ReadingLog) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := s.encode(tmp, log); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync reading log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set reading log permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace reading log: %w", err)
	}
	return nil
}

func (s *FileStore) encode(w io.Writer, log model.ReadingLog) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range log {
		record := []string{
			FormatTimestamp(r.Timestamp.In(s.location)),
			strconv.FormatFloat(model.RoundTemperature(r.Temperature), 'f', 1, 64),
			r.MedicationLabel(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write reading: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write reading log: %w", err)
	}
	return nil
}
