package handlers

import (
	"context"
	"coordinate-converter-service/internal/api/dto"
	"coordinate-converter-service/internal/domain"
	"coordinate-converter-service/internal/platform/obs"
	"coordinate-converter-service/internal/ports"
	"coordinate-converter-service/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
)

const parseFailedMessage = "Unable to parse the coordinate format. Please check your input."

// CoordinateHandler exposes DMS conversion and free-text parsing.
// Every successful result also moves the client's map view.
type CoordinateHandler struct {
	Map     ports.MapView
	MinZoom int
}

// Convert validates the DMS form fields and converts them to decimal degrees.
func (h *CoordinateHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ConvertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in, err := dmsInputFromRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.convertAndShow(r.Context(), viewID(req.View, r), in)
	if err != nil {
		if writeValidationError(w, r, err) {
			return
		}
		log.Printf("convert failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Parse extracts coordinates from free text. A single result is converted and
// shown in full; with several results the map moves to the first one.
func (h *CoordinateHandler) Parse(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ParseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx := r.Context()
	view := viewID(req.View, r)

	matches, err := parseText(ctx, req.Text)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, parseFailedMessage)
		return
	}

	res := dto.ParseResponse{Matches: make([]dto.MatchResponse, 0, len(matches))}
	for _, m := range matches {
		res.Matches = append(res.Matches, dto.MatchResponse{
			Latitude:  m.Coordinate.Lat,
			Longitude: m.Coordinate.Lon,
			Format:    string(m.Format),
			Original:  m.Source,
		})
	}

	if len(matches) == 0 {
		writeJSON(w, r, http.StatusOK, res)
		return
	}

	first := matches[0].Coordinate
	if first.Valid() {
		links := toLinksResponse(services.MapLinks(first))
		res.Links = &links
	}

	if len(matches) == 1 {
		conv, err := convertFields(services.FieldsFromCoordinate(first))
		if err != nil {
			if writeValidationError(w, r, err) {
				return
			}
			log.Printf("convert parsed coordinate failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		res.Conversion = &conv
	}

	// The map shows the exact parsed point, not the display-rounded DMS fields.
	// DMS text can carry degrees past the poles; such a point is listed but not shown.
	if h.Map != nil && first.Valid() {
		if state, err := h.Map.FlyTo(ctx, view, first, h.MinZoom); err != nil {
			log.Printf("map fly to failed: view=%s err=%v", view, err)
		} else {
			res.Map = toMapStateResponse(state)
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func parseText(ctx context.Context, text string) (_ []domain.ParsedMatch, err error) {
	defer obs.Time(ctx, "services.ParseText")(&err)
	return services.ParseText(text)
}

// convertAndShow runs the manual conversion path and moves the map to the result.
// A map failure is logged and leaves Map unset; the conversion itself still succeeds.
func (h *CoordinateHandler) convertAndShow(
	ctx context.Context,
	view string,
	in services.DMSInput,
) (dto.ConvertResponse, error) {
	res, err := convertFields(in)
	if err != nil {
		return dto.ConvertResponse{}, err
	}

	if h.Map == nil {
		return res, nil
	}
	c := domain.Coordinate{Lat: res.Latitude, Lon: res.Longitude}
	state, err := h.Map.FlyTo(ctx, view, c, h.MinZoom)
	if err != nil {
		log.Printf("map fly to failed: view=%s err=%v", view, err)
		return res, nil
	}
	res.Map = toMapStateResponse(state)

	return res, nil
}

func convertFields(in services.DMSInput) (dto.ConvertResponse, error) {
	c, err := services.Convert(in)
	if err != nil {
		return dto.ConvertResponse{}, err
	}

	return dto.ConvertResponse{
		Latitude:  c.Lat,
		Longitude: c.Lon,
		LatDMS:    services.FormatDMS(axisDMS(c.Lat, true)),
		LonDMS:    services.FormatDMS(axisDMS(c.Lon, false)),
		Summary:   services.FormatSummary(in, c),
		Fields:    toFieldsResponse(in),
		Links:     toLinksResponse(services.MapLinks(c)),
	}, nil
}

func axisDMS(decimal float64, isLat bool) domain.DMS {
	d := services.ToDMS(decimal)
	d.Hemisphere = domain.HemisphereFor(decimal, isLat)
	return d
}

func dmsInputFromRequest(req dto.ConvertRequest) (services.DMSInput, error) {
	latDir, err := direction(req.LatDir, domain.North, true)
	if err != nil {
		return services.DMSInput{}, err
	}
	lonDir, err := direction(req.LonDir, domain.East, false)
	if err != nil {
		return services.DMSInput{}, err
	}

	return services.DMSInput{
		LatDeg: req.LatDeg,
		LatMin: req.LatMin,
		LatSec: req.LatSec,
		LatDir: latDir,
		LonDeg: req.LonDeg,
		LonMin: req.LonMin,
		LonSec: req.LonSec,
		LonDir: lonDir,
	}, nil
}

func direction(s string, fallback domain.Hemisphere, isLat bool) (domain.Hemisphere, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}

	h, err := domain.ParseHemisphere(s)
	if err != nil {
		return "", err
	}
	if h.IsLatitude() != isLat {
		if isLat {
			return "", errors.New("lat_dir must be N or S")
		}
		return "", errors.New("lon_dir must be E or W")
	}
	return h, nil
}

// MapHandler exposes the map view state and map clicks.
type MapHandler struct {
	Coordinates *CoordinateHandler
}

// View returns the current map state on GET and resets it on DELETE.
func (h *MapHandler) View(w http.ResponseWriter, r *http.Request) {
	view := viewID("", r)
	mv := h.Coordinates.Map

	switch r.Method {
	case http.MethodGet:
		state, err := mv.Current(r.Context(), view)
		if err != nil {
			log.Printf("get map view failed: view=%s err=%v", view, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, r, http.StatusOK, toMapStateResponse(state))

	case http.MethodDelete:
		if err := mv.Reset(r.Context(), view); err != nil {
			log.Printf("reset map view failed: view=%s err=%v", view, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, r, http.StatusOK, toMapStateResponse(domain.DefaultMapState()))

	default:
		w.Header().Set("Allow", fmt.Sprintf("%s, %s", http.MethodGet, http.MethodDelete))
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Click fills the DMS fields from the clicked point and converts them.
func (h *MapHandler) Click(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.MapClickRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := services.FieldsFromCoordinate(domain.Coordinate{Lat: req.Lat, Lon: req.Lon})
	res, err := h.Coordinates.convertAndShow(r.Context(), viewID(req.View, r), in)
	if err != nil {
		if writeValidationError(w, r, err) {
			return
		}
		log.Printf("map click failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}
