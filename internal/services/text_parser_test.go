package services

import (
	"coordinate-converter-service/internal/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-4

func TestParseTextCascade(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		format domain.Format
		lat    float64
		lon    float64
	}{
		{"dms suffix", `40°26'46"N 79°58'56"W`, domain.FormatDMS, 40.4461, -79.9822},
		{"dms suffix with comma", `33°51'54"S, 151°12'34"E`, domain.FormatDMS, -33.865, 151.2094},
		{"dms typographic marks", `40°26′46″N 79°58’56”W`, domain.FormatDMS, 40.4461, -79.9822},
		{"dms direction first", `N 40°26'46" W 79°58'56"`, domain.FormatDMSDirectionFirst, 40.4461, -79.9822},
		{"dms direction first reordered", `W 79°58'56" N 40°26'46"`, domain.FormatDMSDirectionFirst, 40.4461, -79.9822},
		{"decimal", `-33.8688, 151.2093`, domain.FormatDecimal, -33.8688, 151.2093},
		{"decimal no comma", `48.8584 2.2945`, domain.FormatDecimal, 48.8584, 2.2945},
		{"labeled", `Lat: 40.7128, Long: -74.0060`, domain.FormatLabeled, 40.7128, -74.006},
		{"labeled words", `latitude 5 longitude 7`, domain.FormatLabeled, 5, 7},
		{"decimal minutes", `40.26'30.5"N 79.58'56"W`, domain.FormatDecimalMinutes, 40 + 26.30/60, -(79 + 58.56/60)},
		{"decimal minutes lon first", `79.58'56"W 40.26'30.5"N`, domain.FormatDecimalMinutes, 40 + 26.30/60, -(79 + 58.56/60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseText(tt.in)
			require.NoError(t, err)
			require.Len(t, got, 1)

			assert.Equal(t, tt.format, got[0].Format)
			assert.InDelta(t, tt.lat, got[0].Coordinate.Lat, tolerance)
			assert.InDelta(t, tt.lon, got[0].Coordinate.Lon, tolerance)
		})
	}
}

func TestParseTextDMSSuppressesDecimal(t *testing.T) {
	got, err := ParseText(`Meet at 40°26'46"N 79°58'56"W, not 12.5, 13.5`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.FormatDMS, got[0].Format)
	assert.Equal(t, `40°26'46"N 79°58'56"W`, got[0].Source)
}

func TestParseTextEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t", "no coordinates here"} {
		got, err := ParseText(in)
		require.NoError(t, err, "input %q", in)
		assert.NotNil(t, got, "input %q", in)
		assert.Empty(t, got, "input %q", in)
	}
}

func TestParseTextDecimalRangeFiltering(t *testing.T) {
	got, err := ParseText("200.5, 50.2")
	require.NoError(t, err)
	assert.Empty(t, got)

	// In-range pairs survive next to an out-of-range one.
	got, err = ParseText("200.5, 50.2 and 10.5, 20.25")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "10.5, 20.25", got[0].Source)
}

func TestParseTextMultipleMatches(t *testing.T) {
	got, err := ParseText("start 51.5074, -0.1278 end 48.8566, 2.3522")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 51.5074, got[0].Coordinate.Lat, tolerance)
	assert.InDelta(t, 48.8566, got[1].Coordinate.Lat, tolerance)
}

func TestParseTextFailure(t *testing.T) {
	in := `99999999999999999999°1'1"N 1°1'1"E`
	got, err := ParseText(in)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrUnableToParse))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, domain.FormatDMS, perr.Format)
	assert.Equal(t, in, perr.Text)
}

func TestMatchDecimalMinutesNeedsPair(t *testing.T) {
	got, err := matchDecimalMinutes(`40.26'30.5"N`)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ParseText(`40.26'30.5"N`)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = matchDecimalMinutes(`40.26'30.5"N 79.58'56"W 10.1'1"N`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `40.26'30.5"N 79.58'56"W`, got[0].Source)
}

func TestMatchDMSDirectionFirst(t *testing.T) {
	got, err := matchDMSDirectionFirst(`E 2°17'40" N 48°51'30"`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 48.8583, got[0].Coordinate.Lat, tolerance)
	assert.InDelta(t, 2.2944, got[0].Coordinate.Lon, tolerance)
}

func TestParseTextDMSOutOfRangeStillClaimsText(t *testing.T) {
	got, err := ParseText(`95°0'0"N 10°0'0"E near 12.5, 13.5`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.FormatDMS, got[0].Format)
	assert.InDelta(t, 95, got[0].Coordinate.Lat, tolerance)
	assert.False(t, got[0].Coordinate.Valid())

	got, err = ParseText(`W 190°0'0" N 10°0'0" or 12.5, 13.5`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.FormatDMSDirectionFirst, got[0].Format)
	assert.InDelta(t, -190, got[0].Coordinate.Lon, tolerance)

	// Converting the parsed point reports the degrees, as manual entry would.
	err = Validate(FieldsFromCoordinate(domain.Coordinate{Lat: 95, Lon: 10}))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, LatitudeDegreesOutOfRange, verr.Kind)
}

func TestMatchLabeled(t *testing.T) {
	got, err := matchLabeled("lat: 40.7 and then long: -74.0")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "lat: 40.7 and then long: -74.0", got[0].Source)
	assert.InDelta(t, -74.0, got[0].Coordinate.Lon, tolerance)

	// A lone longitude has no partner.
	got, err = matchLabeled("longitude: 12")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = matchLabeled("LATITUDE: 95 LONGITUDE: 10")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatchDecimalKeepsNumbersWhole(t *testing.T) {
	for _, in := range []string{
		"Lat: 40.7128, Long: -74.0060",
		"A1.5, 2.5",
		"v1.40.7, 10.2",
		"10.2, 3.4.5",
	} {
		got, err := matchDecimal(in)
		require.NoError(t, err, "input %q", in)
		assert.Empty(t, got, "input %q", in)
	}

	got, err := matchDecimal("(40.7, -74.0) and x 1.5, 2.5")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "40.7, -74.0", got[0].Source)
	assert.Equal(t, "1.5, 2.5", got[1].Source)
}
