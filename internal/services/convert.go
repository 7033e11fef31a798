package services

import (
	"coordinate-converter-service/internal/domain"
	"errors"
	"math"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("invalid coordinate input")

// ValidationKind names the manual-input rule that rejected a conversion.
type ValidationKind string

const (
	NegativeComponent          ValidationKind = "NegativeComponent"
	LatitudeDegreesOutOfRange  ValidationKind = "LatitudeDegreesOutOfRange"
	LongitudeDegreesOutOfRange ValidationKind = "LongitudeDegreesOutOfRange"
	MinutesOutOfRange          ValidationKind = "MinutesOutOfRange"
	SecondsOutOfRange          ValidationKind = "SecondsOutOfRange"
	PoleOverflowLatitude       ValidationKind = "PoleOverflowLatitude"
	PoleOverflowLongitude      ValidationKind = "PoleOverflowLongitude"
)

var validationMessages = map[ValidationKind]string{
	NegativeComponent:          "Degrees, minutes, and seconds must be positive. Use the direction selector for North/South and East/West.",
	LatitudeDegreesOutOfRange:  "Latitude degrees cannot exceed 90°.",
	LongitudeDegreesOutOfRange: "Longitude degrees cannot exceed 180°.",
	MinutesOutOfRange:          "Minutes must be less than 60.",
	SecondsOutOfRange:          "Seconds must be less than 60.",
	PoleOverflowLatitude:       "Latitude cannot exceed 90°. When degrees is 90, minutes and seconds must be 0.",
	PoleOverflowLongitude:      "Longitude cannot exceed 180°. When degrees is 180, minutes and seconds must be 0.",
}

// ValidationError reports the first violated rule together with its user-facing message.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func newValidationError(kind ValidationKind) *ValidationError {
	return &ValidationError{Kind: kind, Message: validationMessages[kind]}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Raw magnitudes and directions for both axes, as entered in the DMS form fields.
type DMSInput struct {
	LatDeg float64
	LatMin float64
	LatSec float64
	LatDir domain.Hemisphere
	LonDeg float64
	LonMin float64
	LonSec float64
	LonDir domain.Hemisphere
}

// ToDecimal combines degrees, minutes and seconds into signed decimal degrees.
// Bounds are not checked here; see Validate.
func ToDecimal(degrees, minutes, seconds float64, h domain.Hemisphere) float64 {
	decimal := degrees + minutes/60 + seconds/3600
	if h == domain.South || h == domain.West {
		decimal = -decimal
	}
	return decimal
}

// ToDMS decomposes the magnitude of decimal into degrees, minutes and seconds.
// The hemisphere is left empty; the caller owns the sign. Seconds keep full precision.
func ToDMS(decimal float64) domain.DMS {
	decimal = math.Abs(decimal)

	degrees := math.Floor(decimal)
	minutesFloat := (decimal - degrees) * 60
	minutes := math.Floor(minutesFloat)
	seconds := (minutesFloat - minutes) * 60

	return domain.DMS{
		Degrees: int(degrees),
		Minutes: int(minutes),
		Seconds: seconds,
	}
}

// Validate applies the manual-input rules in order and returns the first failure.
// Parsed text does not go through this path; it is only range-checked.
func Validate(in DMSInput) error {
	if in.LatDeg < 0 || in.LatMin < 0 || in.LatSec < 0 ||
		in.LonDeg < 0 || in.LonMin < 0 || in.LonSec < 0 {
		return newValidationError(NegativeComponent)
	}

	if in.LatDeg > 90 {
		return newValidationError(LatitudeDegreesOutOfRange)
	}

	if in.LonDeg > 180 {
		return newValidationError(LongitudeDegreesOutOfRange)
	}

	if in.LatMin >= 60 || in.LonMin >= 60 {
		return newValidationError(MinutesOutOfRange)
	}

	if in.LatSec >= 60 || in.LonSec >= 60 {
		return newValidationError(SecondsOutOfRange)
	}

	if in.LatDeg == 90 && (in.LatMin > 0 || in.LatSec > 0) {
		return newValidationError(PoleOverflowLatitude)
	}

	if in.LonDeg == 180 && (in.LonMin > 0 || in.LonSec > 0) {
		return newValidationError(PoleOverflowLongitude)
	}

	return nil
}

// Convert validates the manual DMS input and returns the decimal coordinate.
// No coordinate is produced when validation fails.
func Convert(in DMSInput) (domain.Coordinate, error) {
	if err := Validate(in); err != nil {
		return domain.Coordinate{}, err
	}

	return domain.Coordinate{
		Lat: ToDecimal(in.LatDeg, in.LatMin, in.LatSec, in.LatDir),
		Lon: ToDecimal(in.LonDeg, in.LonMin, in.LonSec, in.LonDir),
	}, nil
}
