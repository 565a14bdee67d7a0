package store

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-temp-monitor/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "temperature_data.csv"))
}

func writeFile(t *testing.T, s *FileStore, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestLoadMissingFileReturnsEmptyLog(t *testing.T) {
	s := newTestStore(t)

	log, err := s.Load()

	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.Empty(t, log)
}

func TestLoadEmptyFile(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s, "")

	log, err := s.Load()

	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestAppendRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		reading model.Reading
	}{
		{
			name:    "no medication",
			reading: model.Reading{Timestamp: time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC), Temperature: 37.0},
		},
		{
			name: "with medication",
			reading: model.Reading{
				Timestamp:   time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
				Temperature: 38.4,
				Medication:  model.StringPtr("ibuprofen 400mg"),
			},
		},
		{
			name:    "unrounded temperature",
			reading: model.Reading{Timestamp: time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC), Temperature: 36.66},
		},
		{
			name: "non-UTC zone and sub-second precision",
			reading: model.Reading{
				Timestamp:   time.Date(2024, 3, 2, 9, 30, 5, 123456789, time.FixedZone("CET", 3600)),
				Temperature: 37.5,
				Medication:  model.StringPtr("paracetamol, 1g"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)

			initial, err := s.Load()
			require.NoError(t, err)
			_, err = s.Append(initial, tt.reading)
			require.NoError(t, err)

			loaded, err := s.Load()
			require.NoError(t, err)
			require.Len(t, loaded, 1)

			got := loaded[0]
			assert.True(t, tt.reading.Timestamp.Truncate(time.Second).Equal(got.Timestamp),
				"timestamp: got %s want %s", got.Timestamp, tt.reading.Timestamp)
			_, offset := got.Timestamp.Zone()
			assert.Equal(t, 0, offset, "timestamps are stored in UTC")
			assert.InDelta(t, model.RoundTemperature(tt.reading.Temperature), got.Temperature, 1e-9)
			assert.Equal(t, tt.reading.MedicationLabel(), got.MedicationLabel())
		})
	}
}

func TestAppendReturnsWhatLoadReturns(t *testing.T) {
	s := newTestStore(t)
	ts := time.Date(2024, 3, 1, 8, 15, 0, 999, time.FixedZone("", -5*3600))

	appended, err := s.Append(nil, model.Reading{Timestamp: ts, Temperature: 37.25, Medication: model.StringPtr(" aspirin ")})
	require.NoError(t, err)
	loaded, err := s.Load()
	require.NoError(t, err)

	require.Len(t, appended, 1)
	require.Len(t, loaded, 1)
	assert.True(t, appended[0].Timestamp.Equal(loaded[0].Timestamp))
	assert.Equal(t, loaded[0].Temperature, appended[0].Temperature)
	assert.Equal(t, "aspirin", appended[0].MedicationLabel())
	assert.Equal(t, "aspirin", loaded[0].MedicationLabel())
}

func TestAppendEmptyMedicationIsAbsent(t *testing.T) {
	s := newTestStore(t)

	appended, err := s.Append(nil, model.Reading{
		Timestamp:   time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Temperature: 36.9,
		Medication:  model.StringPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, appended[0].Medication)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded[0].Medication)
	assert.False(t, loaded[0].HasMedication())
}

func TestAppendKeepsFileSorted(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	offsets := []time.Duration{5 * time.Hour, time.Hour, 3 * time.Hour, 0, 4 * time.Hour, 2 * time.Hour}

	log, err := s.Load()
	require.NoError(t, err)
	for i, off := range offsets {
		log, err = s.Append(log, model.Reading{Timestamp: base.Add(off), Temperature: 36.0 + float64(i)/10})
		require.NoError(t, err)
	}

	rows := readRows(t, s.Path())
	require.Len(t, rows, len(offsets)+1)
	assert.Equal(t, Header, rows[0])

	var prev time.Time
	for i, row := range rows[1:] {
		ts, err := ParseTimestamp(row[0])
		require.NoError(t, err)
		if i > 0 {
			assert.False(t, ts.Before(prev), "row %d out of order", i+1)
		}
		prev = ts
	}

	require.Len(t, log, len(offsets))
	for i := 1; i < len(log); i++ {
		assert.False(t, log[i].Timestamp.Before(log[i-1].Timestamp))
	}
}

func TestAppendDoesNotMutateInput(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	input := model.ReadingLog{
		{Timestamp: base, Temperature: 37.0},
	}

	out, err := s.Append(input, model.Reading{Timestamp: base.Add(-time.Hour), Temperature: 36.5})

	require.NoError(t, err)
	require.Len(t, input, 1)
	assert.Equal(t, 37.0, input[0].Temperature)
	require.Len(t, out, 2)
	assert.Equal(t, 36.5, out[0].Temperature)
	assert.Equal(t, 37.0, out[1].Temperature)
}

func TestAppendWritesExactFormat(t *testing.T) {
	s := newTestStore(t)
	warsaw := time.FixedZone("CEST", 2*3600)

	_, err := s.Append(nil, model.Reading{
		Timestamp:   time.Date(2024, 6, 1, 10, 0, 0, 0, warsaw),
		Temperature: 37,
		Medication:  model.StringPtr("ibuprofen"),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "timestamp,temperature,medication\n2024-06-01 08:00:00+0000,37.0,ibuprofen\n", string(data))
}

func TestAppendWithStorageLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	s := NewFileStore(filepath.Join(t.TempDir(), "data.csv"), WithLocation(tokyo))

	_, err := s.Append(nil, model.Reading{Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Temperature: 36.8})
	require.NoError(t, err)

	rows := readRows(t, s.Path())
	assert.Equal(t, "2024-06-01 09:00:00+0900", rows[1][0])
}

func TestAppendLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	var log model.ReadingLog
	var err error
	for i := 0; i < 3; i++ {
		log, err = s.Append(log, model.Reading{Timestamp: base.Add(time.Duration(i) * time.Hour), Temperature: 37})
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(s.Path()), entries[0].Name())

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestAppendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "readings.csv")
	s := NewFileStore(path)

	_, err := s.Append(nil, model.Reading{Timestamp: time.Now(), Temperature: 37})

	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestAppendFailsWhenDirectoryIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	s := NewFileStore(filepath.Join(blocker, "readings.csv"))

	out, err := s.Append(nil, model.Reading{Timestamp: time.Now(), Temperature: 37})

	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestLoadLegacyFileWithoutMedication(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s, "timestamp,temperature\n"+
		"2024-03-01 08:00:00+0000,36.8\n"+
		"2024-03-01 20:00:00+0000,38.1\n")

	log, err := s.Load()

	require.NoError(t, err)
	require.Len(t, log, 2)
	for _, r := range log {
		assert.Nil(t, r.Medication)
	}
	assert.Equal(t, 38.1, log[1].Temperature)

	// Next write upgrades the header
	_, err = s.Append(log, model.Reading{Timestamp: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), Temperature: 37.4})
	require.NoError(t, err)
	rows := readRows(t, s.Path())
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"2024-03-01 08:00:00+0000", "36.8", ""}, rows[1])
}

func TestLoadReorderedColumns(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s, "medication,temperature,timestamp\n"+
		"aspirin,38.0,2024-03-01 08:00:00+0100\n")

	log, err := s.Load()

	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "aspirin", log[0].MedicationLabel())
	assert.True(t, time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC).Equal(log[0].Timestamp))
}

func TestLoadAcceptsRFC3339Offsets(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s, "timestamp,temperature\n"+
		"2024-03-01 08:00:00.123456+00:00,36.8\n"+
		"2024-03-01T09:00:00Z,37.0\n")

	log, err := s.Load()

	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.True(t, time.Date(2024, 3, 1, 8, 0, 0, 123456000, time.UTC).Equal(log[0].Timestamp))
	assert.True(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC).Equal(log[1].Timestamp))
}

func TestAppendRewritesLenientTimestampsInFixedLayout(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s, "timestamp,temperature\n2024-03-01T09:00:00+01:00,37.0\n")

	log, err := s.Load()
	require.NoError(t, err)
	_, err = s.Append(log, model.NewReading(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), 37.4, nil))
	require.NoError(t, err)

	rows := readRows(t, s.Path())
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2024-03-01 08:00:00+0000", "37.0", ""}, rows[1])
	assert.Equal(t, []string{"2024-03-01 10:00:00+0000", "37.4", ""}, rows[2])
}

func TestLoadRoundsTemperatures(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s, "timestamp,temperature,medication\n2024-03-01 08:00:00+0000,37.26,\n")

	log, err := s.Load()

	require.NoError(t, err)
	assert.Equal(t, 37.3, log[0].Temperature)
}

func TestLoadFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		row     int
		column  string
	}{
		{
			name:    "naive timestamp",
			content: "timestamp,temperature,medication\n2024-03-01 08:00:00,37.0,\n",
			row:     2,
			column:  ColumnTimestamp,
		},
		{
			name:    "garbage timestamp",
			content: "timestamp,temperature,medication\n2024-03-01 08:00:00+0000,37.0,\nyesterday,37.0,\n",
			row:     3,
			column:  ColumnTimestamp,
		},
		{
			name:    "bad temperature",
			content: "timestamp,temperature,medication\n2024-03-01 08:00:00+0000,warm,\n",
			row:     2,
			column:  ColumnTemperature,
		},
		{
			name:    "NaN temperature",
			content: "timestamp,temperature,medication\n2024-03-01 08:00:00+0000,NaN,\n",
			row:     2,
			column:  ColumnTemperature,
		},
		{
			name:    "short row",
			content: "temperature,timestamp\n37.0\n",
			row:     2,
			column:  ColumnTimestamp,
		},
		{
			name:    "missing temperature column",
			content: "timestamp,medication\n2024-03-01 08:00:00+0000,aspirin\n",
			row:     1,
		},
		{
			name:    "unterminated quote",
			content: "timestamp,temperature,medication\n2024-03-01 08:00:00+0000,37.0,\"aspirin\n",
			row:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			writeFile(t, s, tt.content)

			log, err := s.Load()

			require.Error(t, err)
			assert.Nil(t, log)
			assert.True(t, errors.Is(err, ErrFormat))

			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.row, formatErr.Row)
			assert.Equal(t, tt.column, formatErr.Column)
			assert.Equal(t, s.Path(), formatErr.Path)
			assert.True(t, strings.Contains(err.Error(), s.Path()))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2024-03-01 08:00:00-0500")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC).Equal(ts))
	_, offset := ts.Zone()
	assert.Equal(t, -5*3600, offset)

	_, err = ParseTimestamp("2024-03-01 08:00:00")
	assert.Error(t, err)
	_, err = ParseTimestamp("")
	assert.Error(t, err)
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 8, 0, 0, 0, time.FixedZone("", 5*3600+30*60))
	assert.Equal(t, "2024-03-01 08:00:00+0530", FormatTimestamp(ts))
}
