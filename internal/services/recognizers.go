package services

import (
	"coordinate-converter-service/internal/domain"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// 40°26'46"N 79°58'56"W (symbols optional, comma between groups optional)
var dmsRx = regexp.MustCompile(`(\d+)°?\s*(\d+)'?\s*(\d+(?:\.\d+)?)"?\s*([NSEW])\s*,?\s*(\d+)°?\s*(\d+)'?\s*(\d+(?:\.\d+)?)"?\s*([NSEW])`)

// N 40°26'46" W 79°58'56"
var dmsDirectionFirstRx = regexp.MustCompile(`([NSEW])\s*(\d+)°?\s*(\d+)'?\s*(\d+(?:\.\d+)?)"?\s*,?\s*([NSEW])\s*(\d+)°?\s*(\d+)'?\s*(\d+(?:\.\d+)?)"?`)

// -33.8688, 151.2093
// Word boundaries keep a single number like 40.7128 from being split in two.
var decimalPairRx = regexp.MustCompile(`(-?\b\d+(?:\.\d+)?)\b,?\s*(-?\b\d+(?:\.\d+)?)\b`)

// Latitude: 40.7128° Longitude: -74.0060°
var labeledRx = regexp.MustCompile(`(?i)lat(?:itude)?[:\s]*(-?\d+(?:\.\d+)?)°?\s*(?:[,;]?\s*long(?:itude)?[:\s]*(-?\d+(?:\.\d+)?)°?)?|long(?:itude)?[:\s]*(-?\d+(?:\.\d+)?)°?`)

// 40.26'30.5"N
var decimalMinutesRx = regexp.MustCompile(`(\d+)\.(\d+)'(\d+(?:\.\d+)?)"?([NSEW])`)

// matchDMS keeps pairs outside the geographic range. The text is unmistakably
// DMS, so the family still claims it and conversion reports the bad degrees.
func matchDMS(text string) ([]domain.ParsedMatch, error) {
	var out []domain.ParsedMatch
	for _, m := range dmsRx.FindAllStringSubmatch(text, -1) {
		lat, err := dmsGroup(m[1], m[2], m[3], m[4])
		if err != nil {
			return nil, err
		}
		lon, err := dmsGroup(m[5], m[6], m[7], m[8])
		if err != nil {
			return nil, err
		}

		out = append(out, domain.ParsedMatch{
			Coordinate: domain.Coordinate{Lat: lat, Lon: lon},
			Format:     domain.FormatDMS,
			Source:     m[0],
		})
	}
	return out, nil
}

// matchDMSDirectionFirst assigns axes by hemisphere letter, not by textual order.
// Like matchDMS it does not range-check.
func matchDMSDirectionFirst(text string) ([]domain.ParsedMatch, error) {
	var out []domain.ParsedMatch
	for _, m := range dmsDirectionFirstRx.FindAllStringSubmatch(text, -1) {
		first, err := dmsGroup(m[2], m[3], m[4], m[1])
		if err != nil {
			return nil, err
		}
		second, err := dmsGroup(m[6], m[7], m[8], m[5])
		if err != nil {
			return nil, err
		}

		lat, lon := first, second
		if !domain.Hemisphere(m[1]).IsLatitude() {
			lat, lon = second, first
		}

		out = append(out, domain.ParsedMatch{
			Coordinate: domain.Coordinate{Lat: lat, Lon: lon},
			Format:     domain.FormatDMSDirectionFirst,
			Source:     m[0],
		})
	}
	return out, nil
}

// matchDecimal drops pairs outside the geographic range without reporting them.
// Numbers that are only the tail or head of a dotted token (v1.40.7, 1.2.3) are not coordinates.
func matchDecimal(text string) ([]domain.ParsedMatch, error) {
	var out []domain.ParsedMatch
	for _, m := range decimalPairRx.FindAllStringSubmatchIndex(text, -1) {
		if continuesToken(text, m[2]-1) || dottedTail(text, m[5]) {
			continue
		}

		lat, err := parseNumber(text[m[2]:m[3]])
		if err != nil {
			return nil, err
		}
		lon, err := parseNumber(text[m[4]:m[5]])
		if err != nil {
			return nil, err
		}

		if !domain.IsValidCoordinate(lat, lon) {
			continue
		}
		out = append(out, domain.ParsedMatch{
			Coordinate: domain.Coordinate{Lat: lat, Lon: lon},
			Format:     domain.FormatDecimal,
			Source:     text[m[0]:m[1]],
		})
	}
	return out, nil
}

// matchLabeled pairs a latitude label with the longitude label that follows it,
// either inside one match or in the next match.
func matchLabeled(text string) ([]domain.ParsedMatch, error) {
	idx := labeledRx.FindAllStringSubmatchIndex(text, -1)

	group := func(m []int, n int) string {
		if m[2*n] < 0 {
			return ""
		}
		return text[m[2*n]:m[2*n+1]]
	}

	var out []domain.ParsedMatch
	for i := 0; i < len(idx); i++ {
		m := idx[i]
		latStr := group(m, 1)
		if latStr == "" {
			// Longitude without a preceding latitude.
			continue
		}

		start, end := m[0], m[1]
		lonStr := group(m, 2)
		if lonStr == "" && i+1 < len(idx) {
			next := idx[i+1]
			if lonStr = group(next, 3); lonStr != "" {
				end = next[1]
				i++
			}
		}
		if lonStr == "" {
			continue
		}

		lat, err := parseNumber(latStr)
		if err != nil {
			return nil, err
		}
		lon, err := parseNumber(lonStr)
		if err != nil {
			return nil, err
		}

		if !domain.IsValidCoordinate(lat, lon) {
			continue
		}
		out = append(out, domain.ParsedMatch{
			Coordinate: domain.Coordinate{Lat: lat, Lon: lon},
			Format:     domain.FormatLabeled,
			Source:     strings.TrimSpace(text[start:end]),
		})
	}
	return out, nil
}

// matchDecimalMinutes needs at least two matches; consecutive matches are paired and
// the N/S member of each pair becomes the latitude. A trailing odd match is ignored.
func matchDecimalMinutes(text string) ([]domain.ParsedMatch, error) {
	ms := decimalMinutesRx.FindAllStringSubmatch(text, -1)
	if len(ms) < 2 {
		return nil, nil
	}

	var out []domain.ParsedMatch
	for i := 0; i+1 < len(ms); i += 2 {
		a, err := decimalMinutesValue(ms[i])
		if err != nil {
			return nil, err
		}
		b, err := decimalMinutesValue(ms[i+1])
		if err != nil {
			return nil, err
		}

		lat, lon := a, b
		if !domain.Hemisphere(ms[i][4]).IsLatitude() {
			lat, lon = b, a
		}

		if !domain.IsValidCoordinate(lat, lon) {
			continue
		}
		out = append(out, domain.ParsedMatch{
			Coordinate: domain.Coordinate{Lat: lat, Lon: lon},
			Format:     domain.FormatDecimalMinutes,
			Source:     ms[i][0] + " " + ms[i+1][0],
		})
	}
	return out, nil
}

// dmsGroup converts one matched degrees/minutes/seconds group to signed decimal degrees.
func dmsGroup(deg, min, sec, dir string) (float64, error) {
	d, err := strconv.Atoi(deg)
	if err != nil {
		return 0, fmt.Errorf("degrees %q: %w", deg, err)
	}
	m, err := strconv.Atoi(min)
	if err != nil {
		return 0, fmt.Errorf("minutes %q: %w", min, err)
	}
	s, err := parseNumber(sec)
	if err != nil {
		return 0, fmt.Errorf("seconds: %w", err)
	}

	return ToDecimal(float64(d), float64(m), s, domain.Hemisphere(dir)), nil
}

// decimalMinutesValue reads 40.26'30.5"N as 40 degrees and 26.30 minutes:
// the digits after the apostrophe continue the minute fraction up to any second dot.
func decimalMinutesValue(m []string) (float64, error) {
	deg, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("degrees %q: %w", m[1], err)
	}

	frac, _, _ := strings.Cut(m[3], ".")
	minutes, err := parseNumber(m[2] + "." + frac)
	if err != nil {
		return 0, fmt.Errorf("minutes: %w", err)
	}

	decimal := float64(deg) + minutes/60
	return decimal * domain.Hemisphere(m[4]).Sign(), nil
}

// continuesToken reports whether the byte at i joins a number to the word or dotted run before it.
func continuesToken(text string, i int) bool {
	if i < 0 {
		return false
	}
	b := text[i]
	return b == '.' || b == '_' ||
		('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// dottedTail reports whether a number ending at i is followed by another .digit group.
func dottedTail(text string, i int) bool {
	return i+1 < len(text) && text[i] == '.' && '0' <= text[i+1] && text[i+1] <= '9'
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("number %q: %w", s, err)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("number %q: out of range", s)
	}
	return v, nil
}
