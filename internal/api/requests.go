// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package api

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// PredictRequest is the body of a prediction request.
type PredictRequest struct {
	UserID int `json:"user_id" validate:"min=0" example:"42"`
	K      int `json:"k" validate:"min=0" example:"5"`
}

// EvaluateRequest is the body of an evaluation request. Omitted fields take
// the configured defaults; an explicit zero is used as given.
type EvaluateRequest struct {
	K           *int   `json:"k,omitempty" validate:"omitempty,min=0,max=1000" example:"5"`
	SampleUsers *int   `json:"sample_users,omitempty" validate:"omitempty,min=0,max=1000000" example:"200"`
	Seed        *int64 `json:"seed,omitempty" example:"42"`
}

// readBody reads at most maxBodyBytes from r.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errRequestBodyTooLarge
		}
		return nil, err
	}
	return body, nil
}

// parsePredictRequest decodes a prediction body. On failure it returns the
// client-facing message.
func parsePredictRequest(body []byte) (*PredictRequest, string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, MsgInvalidJSON
	}

	rawUser, ok := fields["user_id"]
	if !ok {
		return nil, MsgMissingUserID
	}
	rawK, ok := fields["k"]
	if !ok {
		return nil, MsgMissingK
	}

	userID, err := parseInteger(rawUser)
	if err != nil {
		return nil, MsgNotIntegers
	}
	k, err := parseInteger(rawK)
	if err != nil {
		return nil, MsgNotIntegers
	}
	return &PredictRequest{UserID: userID, K: k}, ""
}

var errNotInteger = errors.New("not an integer")

// maxExactInteger is the largest integer a float64 represents exactly.
const maxExactInteger = 1 << 53

// parseInteger accepts a JSON number without a fractional part, or a
// string holding a decimal integer.
func parseInteger(raw json.RawMessage) (int, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return 0, errNotInteger
	}

	if text[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, errNotInteger
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, errNotInteger
		}
		return n, nil
	}

	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}

	// 5.0 and 1e2 are integral JSON numbers.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, errNotInteger
	}
	if math.Abs(f) > maxExactInteger {
		return 0, errNotInteger
	}
	return int(f), nil
}

// parseEvaluateRequest decodes an evaluation body. An empty body is valid.
func parseEvaluateRequest(body []byte) (*EvaluateRequest, error) {
	req := &EvaluateRequest{}
	if len(strings.TrimSpace(string(body))) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, err
	}
	return req, nil
}
