package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"30s"`, want: 30 * time.Second},
		{name: "compound string", in: `"1m30s"`, want: 90 * time.Second},
		{name: "nanoseconds", in: `1000000000`, want: time.Second},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-14"`), &d))
	assert.Equal(t, "2025-03-14", d.String())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-14"`, string(b))

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())

	b, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	require.Error(t, json.Unmarshal([]byte(`"14/03/2025"`), &d))
}

func TestNewDate_TruncatesClock(t *testing.T) {
	d := NewDate(time.Date(2025, time.July, 4, 23, 59, 1, 0, time.UTC))
	assert.Equal(t, "2025-07-04", d.String())
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2024, Month: time.February}, m)
	assert.Equal(t, "2024-02", m.String())

	_, err = ParseMonth("2024-13")
	require.Error(t, err)

	assert.True(t, Month{}.IsZero())
	assert.Equal(t, Month{Year: 2026, Month: time.October}, CurrentMonth(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
}
