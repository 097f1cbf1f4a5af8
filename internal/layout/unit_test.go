package layout

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{in: "120px", want: Px(120)},
		{in: " 7.5px ", want: Px(7.5)},
		{in: "35%", want: Pct(0.35)},
		{in: "0px", want: Px(0)},
		{in: "120", wantErr: true},
		{in: "1fr", wantErr: true},
		{in: "12em", wantErr: true},
		{in: "px", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnit(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidUnit), "want ErrInvalidUnit, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.InDelta(t, tt.want.Value, got.Value, 1e-12)
		})
	}
}

func TestParseMaxAcceptsFill(t *testing.T) {
	got, err := ParseMax("1fr")
	require.NoError(t, err)
	assert.Equal(t, FillUnit, got)

	got, err = ParseMax("300px")
	require.NoError(t, err)
	assert.Equal(t, Px(300), got)
}

func TestUnitConversion(t *testing.T) {
	assert.Equal(t, 40.0, ToPixels(500, Px(40)))
	assert.Equal(t, 125.0, ToPixels(500, Pct(0.25)))
	assert.Equal(t, 500.0, ToPixels(500, FillUnit))
	assert.Equal(t, 0.0, ToPixels(500, Unit{}))

	assert.Equal(t, 0.25, ToPercent(400, Px(100)))
	assert.Equal(t, 0.4, ToPercent(400, Pct(0.4)))
	assert.Equal(t, 0.0, ToPercent(0, Px(100)))
}

func TestUnitString(t *testing.T) {
	assert.Equal(t, "245px", Px(245).String())
	assert.Equal(t, "50%", Pct(0.5).String())
	assert.Equal(t, "1fr", FillUnit.String())
	assert.Equal(t, "0px", Px(-0.0).String())
}

func TestUnitTextRoundTrip(t *testing.T) {
	var u Unit
	require.NoError(t, u.UnmarshalText([]byte("30%")))
	assert.Equal(t, Pct(0.3), u)

	require.NoError(t, u.UnmarshalText([]byte("")))
	assert.False(t, u.IsSet())

	err := u.UnmarshalText([]byte("abc"))
	assert.ErrorIs(t, err, ErrInvalidUnit)
}

func TestUnitJSONKeepsFractions(t *testing.T) {
	in := Pct(1.0 / 3.0)
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Unit
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"em","value":1}`), &out))
}
