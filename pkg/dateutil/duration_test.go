package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_ParseCompactDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "minutes only", input: "45m", want: 45 * time.Minute},
		{name: "hours and minutes", input: "2h30m", want: 2*time.Hour + 30*time.Minute},
		{name: "full form", input: "1d6h15m", want: 30*time.Hour + 15*time.Minute},
		{name: "days only", input: "7d", want: 7 * day},
		{name: "empty", input: "", wantErr: true},
		{name: "no unit", input: "90", wantErr: true},
		{name: "no digits", input: "dhm", wantErr: true},
		{name: "unknown unit", input: "10s", wantErr: true},
		{name: "duplicated unit", input: "1h2h", wantErr: true},
		{name: "zero", input: "0m", wantErr: true},
		{name: "trailing digits", input: "1h30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompactDuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_FormatCompact(t *testing.T) {
	require.Equal(t, "0m", FormatCompact(0))
	require.Equal(t, "0m", FormatCompact(30*time.Second))
	require.Equal(t, "59m", FormatCompact(59*time.Minute+59*time.Second))
	require.Equal(t, "2h30m", FormatCompact(2*time.Hour+30*time.Minute))
	require.Equal(t, "1d6h", FormatCompact(30*time.Hour))
	require.Equal(t, "3d", FormatCompact(3*day))
}
