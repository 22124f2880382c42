// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors. Every typed error below matches exactly one of these
// with errors.Is.
var (
	// ErrInputValidation is returned for malformed ids, k, alpha or data.
	ErrInputValidation = errors.New("input validation failed")

	// ErrUnknownUser is returned when a user has no training history.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInconsistentCandidateSet is returned when the sub-scorers of a
	// hybrid disagree on the candidate universe.
	ErrInconsistentCandidateSet = errors.New("inconsistent candidate set")

	// ErrPredictionFailure is returned for unexpected scorer faults.
	ErrPredictionFailure = errors.New("prediction failure")

	// ErrModelNotReady is returned when no model has been trained yet.
	ErrModelNotReady = errors.New("model not ready")

	// ErrTrainingInProgress is returned when a second training run is
	// requested while one is already running.
	ErrTrainingInProgress = errors.New("training already in progress")
)

// InputValidationError describes a rejected input.
type InputValidationError struct {
	Field  string
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInputValidation.
func (e *InputValidationError) Is(target error) bool {
	return target == ErrInputValidation
}

// UnknownUserError is returned when userID has no training clicks.
type UnknownUserError struct {
	UserID int
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("unknown user %d: no training history", e.UserID)
}

// Is reports whether target is ErrUnknownUser.
func (e *UnknownUserError) Is(target error) bool {
	return target == ErrUnknownUser
}

// InconsistentCandidateSetError reports which articles one scorer returned
// and the other did not. Both id lists are sorted and truncated to
// maxReportedIDs entries.
type InconsistentCandidateSetError struct {
	ContentCount             int
	CollaborativeCount       int
	MissingFromContent       []int
	MissingFromCollaborative []int
}

const maxReportedIDs = 10

func (e *InconsistentCandidateSetError) Error() string {
	return fmt.Sprintf("inconsistent candidate set: content scored %d articles, collaborative scored %d (missing from content: %v, missing from collaborative: %v)",
		e.ContentCount, e.CollaborativeCount, e.MissingFromContent, e.MissingFromCollaborative)
}

// Is reports whether target is ErrInconsistentCandidateSet.
func (e *InconsistentCandidateSetError) Is(target error) bool {
	return target == ErrInconsistentCandidateSet
}

// PredictionFailure wraps an unexpected fault raised while scoring.
type PredictionFailure struct {
	Scorer string
	Err    error
}

func (e *PredictionFailure) Error() string {
	return fmt.Sprintf("%s prediction failed: %v", e.Scorer, e.Err)
}

// Unwrap returns the underlying fault.
func (e *PredictionFailure) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrPredictionFailure.
func (e *PredictionFailure) Is(target error) bool {
	return target == ErrPredictionFailure
}

// checkCandidateSets returns an InconsistentCandidateSetError when the key
// sets of content and collaborative differ.
func checkCandidateSets(content, collaborative ScoreMap) error {
	var missingFromCollab, missingFromContent []int
	for id := range content {
		if _, ok := collaborative[id]; !ok {
			missingFromCollab = append(missingFromCollab, id)
		}
	}
	for id := range collaborative {
		if _, ok := content[id]; !ok {
			missingFromContent = append(missingFromContent, id)
		}
	}
	if len(missingFromCollab) == 0 && len(missingFromContent) == 0 {
		return nil
	}
	return &InconsistentCandidateSetError{
		ContentCount:             len(content),
		CollaborativeCount:       len(collaborative),
		MissingFromContent:       truncateSorted(missingFromContent),
		MissingFromCollaborative: truncateSorted(missingFromCollab),
	}
}

func truncateSorted(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	sort.Ints(ids)
	if len(ids) > maxReportedIDs {
		ids = ids[:maxReportedIDs]
	}
	return ids
}
