package handlers

import (
	"coordinate-converter-service/internal/api/dto"
	"coordinate-converter-service/internal/domain"
	"coordinate-converter-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
)

const defaultView = "default"

// Largest request body accepted; free text beyond this is not a coordinate paste.
const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeJSON reads exactly one JSON object from the body and reports failures itself.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func viewID(body string, r *http.Request) string {
	if v := strings.TrimSpace(body); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.URL.Query().Get("view")); v != "" {
		return v
	}
	return defaultView
}

// writeValidationError reports a rejected manual input with its rule kind.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) bool {
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeJSON(w, r, http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
		Error: verr.Message,
		Kind:  string(verr.Kind),
	})
	return true
}

func toFieldsResponse(in services.DMSInput) dto.FieldsResponse {
	return dto.FieldsResponse{
		LatDeg: in.LatDeg,
		LatMin: in.LatMin,
		LatSec: in.LatSec,
		LatDir: string(in.LatDir),
		LonDeg: in.LonDeg,
		LonMin: in.LonMin,
		LonSec: in.LonSec,
		LonDir: string(in.LonDir),
	}
}

func toLinksResponse(l services.Links) dto.LinksResponse {
	return dto.LinksResponse{
		GoogleEarth:   l.GoogleEarth,
		GoogleMaps:    l.GoogleMaps,
		OpenStreetMap: l.OpenStreetMap,
	}
}

func toMapStateResponse(s domain.MapState) *dto.MapStateResponse {
	res := &dto.MapStateResponse{
		Center: dto.PointResponse{Lat: s.Center.Lat, Lon: s.Center.Lon},
		Zoom:   s.Zoom,
	}
	if s.Marker != nil {
		res.Marker = &dto.PointResponse{Lat: s.Marker.Lat, Lon: s.Marker.Lon}
	}
	return res
}
