package domain

// Format names the text recognizer that produced a ParsedMatch.
type Format string

const (
	FormatDMS               Format = "DMS"
	FormatDMSDirectionFirst Format = "DMS Direction First"
	FormatDecimal           Format = "Decimal"
	FormatLabeled           Format = "Labeled"
	FormatDecimalMinutes    Format = "Decimal Minutes"
)

// Represents one coordinate recognized in free-form text.
// Source holds the original matched substring for display; it is never reparsed.
// DMS formats are not range-checked, so Coordinate may fail Valid.
type ParsedMatch struct {
	Coordinate Coordinate
	Format     Format
	Source     string
}
