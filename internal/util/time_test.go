package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetTimeProvider() {
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()
}

func TestInitializeTimeProvider(t *testing.T) {
	resetTimeProvider()
	defer resetTimeProvider()

	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local timezone", timezone: "Local"},
		{name: "UTC timezone", timezone: "UTC"},
		{name: "valid timezone Europe/Warsaw", timezone: "Europe/Warsaw"},
		{name: "valid timezone America/New_York", timezone: "America/New_York"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
		{name: "empty timezone defaults to Local", timezone: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, globalTimeProvider)
			}
		})
	}
}

func TestGetTimeProviderDefaultsToLocal(t *testing.T) {
	resetTimeProvider()
	defer resetTimeProvider()

	provider := GetTimeProvider()
	require.NotNil(t, provider)
	assert.Equal(t, time.Local, provider.Location())
	assert.Same(t, provider, GetTimeProvider())
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	_, err = LoadLocation("Mars/Olympus")
	assert.Error(t, err)
}

func TestTimeProviderConversions(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("Asia/Tokyo"))

	instant := time.Date(2024, 1, 15, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, 9, tp.In(instant).Hour())
	assert.Equal(t, "2024-01-15 09:30", tp.Format(instant, "2006-01-02 15:04"))
	assert.Equal(t, "Asia/Tokyo", tp.Now().Location().String())
}

func TestTimeProviderParseLocal(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("Asia/Tokyo"))

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "with seconds", input: "2024-01-15 09:30:15", want: time.Date(2024, 1, 15, 0, 30, 15, 0, time.UTC)},
		{name: "without seconds", input: "2024-01-15 09:30", want: time.Date(2024, 1, 15, 0, 30, 0, 0, time.UTC)},
		{name: "T separator", input: " 2024-01-15T09:30 ", want: time.Date(2024, 1, 15, 0, 30, 0, 0, time.UTC)},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tp.ParseLocal(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			assert.Equal(t, "Asia/Tokyo", got.Location().String())
		})
	}
}
