package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/suspsim/internal/config"
	"github.com/san-kum/suspsim/internal/metrics"
	"github.com/san-kum/suspsim/internal/suspension"
)

const maxBodyBytes = 1 << 16

// EvaluateRequest fields left out of the body keep the server defaults.
type EvaluateRequest struct {
	Vehicle suspension.VehicleConfiguration `json:"vehicle"`
	State   suspension.DynamicState         `json:"state"`
}

type SweepRequest struct {
	Vehicle suspension.VehicleConfiguration `json:"vehicle"`
	State   suspension.DynamicState         `json:"state"`
	Speeds  suspension.Range                `json:"speeds"`
	Radii   suspension.Range                `json:"radii"`
	Steps   int                             `json:"steps"`
}

type SweepResponse struct {
	Samples []suspension.SweepSample `json:"samples"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewEvaluateHandler serves POST /api/evaluate.
func NewEvaluateHandler(defaults *config.Config, rec metrics.Recorder, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req := EvaluateRequest{Vehicle: defaults.Vehicle, State: defaults.State}
		if !decode(w, r, &req) {
			return
		}

		start := time.Now()
		m, err := suspension.Evaluate(req.Vehicle, req.State)
		rec.Observe("evaluate", time.Since(start), err)
		if err != nil {
			log.Debug().Err(err).Msg("evaluate rejected")
			writeModelError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	})
}

// NewSweepHandler serves POST /api/sweep.
func NewSweepHandler(defaults *config.Config, rec metrics.Recorder, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req := SweepRequest{
			Vehicle: defaults.Vehicle,
			State:   defaults.State,
			Speeds:  defaults.Sweep.Speeds,
			Radii:   defaults.Sweep.Radii,
			Steps:   defaults.Sweep.Steps,
		}
		if !decode(w, r, &req) {
			return
		}

		start := time.Now()
		samples, err := suspension.SweepWeightShift(req.Vehicle, req.State, req.Speeds, req.Radii, req.Steps)
		rec.Observe("sweep", time.Since(start), err)
		if err != nil {
			log.Debug().Err(err).Msg("sweep rejected")
			writeModelError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SweepResponse{Samples: samples})
	})
}

// NewPresetsHandler serves GET /api/presets.
func NewPresetsHandler() http.Handler {
	return getJSON(func() any {
		out := make(map[string]*config.Preset, len(config.Presets))
		for _, name := range config.ListPresets() {
			out[name] = config.GetPreset(name)
		}
		return out
	})
}

// NewSlidersHandler serves GET /api/sliders.
func NewSlidersHandler() http.Handler {
	return getJSON(func() any { return config.Sliders() })
}

func getJSON(body func() any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, body())
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "decode request: " + err.Error()})
		return false
	}
	return true
}

func writeModelError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, suspension.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeJSON encodes v before the header goes out so an encoding failure
// still yields a 500 with a body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
