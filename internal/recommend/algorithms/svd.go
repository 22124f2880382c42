// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/tomtom215/newsreel/internal/recommend"
)

// SVDConfig contains biased matrix factorization parameters.
type SVDConfig struct {
	// Factors is the latent dimension.
	Factors int

	// Epochs is the number of SGD passes.
	Epochs int

	// LearningRate is the SGD step for biases and factors.
	LearningRate float64

	// Regularization is the L2 penalty for biases and factors.
	Regularization float64

	// InitMean and InitStdDev parameterize the normal factor initialization.
	InitMean   float64
	InitStdDev float64

	// Biased enables the global mean and the user/item bias terms.
	Biased bool

	// Seed for reproducible initialization.
	Seed int64

	// RatingMin and RatingMax bound every estimate.
	RatingMin float64
	RatingMax float64
}

// DefaultSVDConfig returns the standard biased SVD parameters for ratings in
// [0, 1].
func DefaultSVDConfig() SVDConfig {
	return SVDConfig{
		Factors:        100,
		Epochs:         20,
		LearningRate:   0.005,
		Regularization: 0.02,
		InitMean:       0,
		InitStdDev:     0.1,
		Biased:         true,
		Seed:           42,
		RatingMin:      0,
		RatingMax:      1,
	}
}

// Validate checks the configuration for errors.
func (c SVDConfig) Validate() error {
	switch {
	case c.Factors < 1:
		return &recommend.InputValidationError{Field: "factors", Reason: fmt.Sprintf("must be positive, got %d", c.Factors)}
	case c.Epochs < 0:
		return &recommend.InputValidationError{Field: "epochs", Reason: fmt.Sprintf("must be non-negative, got %d", c.Epochs)}
	case c.LearningRate <= 0:
		return &recommend.InputValidationError{Field: "learning_rate", Reason: fmt.Sprintf("must be positive, got %v", c.LearningRate)}
	case c.Regularization < 0:
		return &recommend.InputValidationError{Field: "regularization", Reason: fmt.Sprintf("must be non-negative, got %v", c.Regularization)}
	case c.InitStdDev < 0:
		return &recommend.InputValidationError{Field: "init_std_dev", Reason: fmt.Sprintf("must be non-negative, got %v", c.InitStdDev)}
	case c.RatingMax < c.RatingMin:
		return &recommend.InputValidationError{Field: "rating_scale", Reason: fmt.Sprintf("max %v below min %v", c.RatingMax, c.RatingMin)}
	}
	return nil
}

// SVD is a biased matrix factorization model:
//
//	r(u, i) = mu + b_u + b_i + q_i . p_u
//
// fitted by plain SGD over the ratings in user-grouped order. A fitted model
// is read-only.
type SVD struct {
	config     SVDConfig
	globalMean float64

	userIndex map[int]int
	itemIndex map[int]int
	userIDs   []int
	itemIDs   []int

	userBias    []float64
	itemBias    []float64
	userFactors [][]float64
	itemFactors [][]float64
}

// SVDState is the serializable form of a fitted SVD.
type SVDState struct {
	Config      SVDConfig
	GlobalMean  float64
	UserIDs     []int
	ItemIDs     []int
	UserBias    []float64
	ItemBias    []float64
	UserFactors [][]float64
	ItemFactors [][]float64
}

// FitSVD trains a model on ratings. Duplicate (user, article) rows are kept
// as separate samples. Users are visited in order of first appearance, and
// each user's rows in input order, with no shuffling.
//
//nolint:gocyclo // SGD training loop is inherently branchy
func FitSVD(ctx context.Context, ratings []recommend.Rating, cfg SVDConfig) (*SVD, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &SVD{
		config:    cfg,
		userIndex: make(map[int]int),
		itemIndex: make(map[int]int),
	}

	type sample struct {
		item   int
		rating float64
	}
	var byUser [][]sample
	var sum float64

	for _, r := range ratings {
		u, ok := s.userIndex[r.UserID]
		if !ok {
			u = len(s.userIDs)
			s.userIndex[r.UserID] = u
			s.userIDs = append(s.userIDs, r.UserID)
			byUser = append(byUser, nil)
		}
		i, ok := s.itemIndex[r.ArticleID]
		if !ok {
			i = len(s.itemIDs)
			s.itemIndex[r.ArticleID] = i
			s.itemIDs = append(s.itemIDs, r.ArticleID)
		}
		byUser[u] = append(byUser[u], sample{item: i, rating: r.Score})
		sum += r.Score
	}
	if len(ratings) > 0 {
		s.globalMean = sum / float64(len(ratings))
	}

	numUsers, numItems, numFactors := len(s.userIDs), len(s.itemIDs), cfg.Factors

	//nolint:gosec // G404: math/rand is acceptable for ML initialization (not security)
	rng := rand.New(rand.NewSource(cfg.Seed))
	s.userBias = make([]float64, numUsers)
	s.itemBias = make([]float64, numItems)
	s.userFactors = initFactors(rng, numUsers, numFactors, cfg.InitMean, cfg.InitStdDev)
	s.itemFactors = initFactors(rng, numItems, numFactors, cfg.InitMean, cfg.InitStdDev)

	lr, reg := cfg.LearningRate, cfg.Regularization
	mu := s.globalMean
	if !cfg.Biased {
		mu = 0
	}

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		for u, samples := range byUser {
			pu := s.userFactors[u]
			for _, smp := range samples {
				i := smp.item
				qi := s.itemFactors[i]

				residual := smp.rating - (mu + s.userBias[u] + s.itemBias[i] + dot(qi, pu))

				if cfg.Biased {
					s.userBias[u] += lr * (residual - reg*s.userBias[u])
					s.itemBias[i] += lr * (residual - reg*s.itemBias[i])
				}
				for f := 0; f < numFactors; f++ {
					puf, qif := pu[f], qi[f]
					pu[f] += lr * (residual*qif - reg*puf)
					qi[f] += lr * (residual*puf - reg*qif)
				}
			}
		}
	}

	return s, nil
}

func initFactors(rng *rand.Rand, rows, cols int, mean, stdDev float64) [][]float64 {
	m := make([][]float64, rows)
	for r := range m {
		m[r] = make([]float64, cols)
		for c := range m[r] {
			m[r][c] = rng.NormFloat64()*stdDev + mean
		}
	}
	return m
}

// Predict estimates the rating of articleID by userID, clipped to the rating
// scale. Unknown users or articles fall back to the global mean plus
// whichever bias is known. Predict never fails.
func (s *SVD) Predict(userID, articleID int) float64 {
	u, knownUser := s.userIndex[userID]
	i, knownItem := s.itemIndex[articleID]

	var est float64
	if s.config.Biased {
		est = s.globalMean
		if knownUser {
			est += s.userBias[u]
		}
		if knownItem {
			est += s.itemBias[i]
		}
		if knownUser && knownItem {
			est += dot(s.itemFactors[i], s.userFactors[u])
		}
	} else {
		if knownUser && knownItem {
			est = dot(s.itemFactors[i], s.userFactors[u])
		} else {
			est = s.globalMean
		}
	}

	if math.IsNaN(est) || math.IsInf(est, 0) {
		est = s.globalMean
	}
	return clip(est, s.config.RatingMin, s.config.RatingMax)
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GlobalMean returns the mean training rating.
func (s *SVD) GlobalMean() float64 {
	return s.globalMean
}

// KnowsUser reports whether userID appeared in training.
func (s *SVD) KnowsUser(userID int) bool {
	_, ok := s.userIndex[userID]
	return ok
}

// KnowsItem reports whether articleID appeared in training.
func (s *SVD) KnowsItem(articleID int) bool {
	_, ok := s.itemIndex[articleID]
	return ok
}

// NumUsers returns the number of trained users.
func (s *SVD) NumUsers() int {
	return len(s.userIDs)
}

// NumItems returns the number of trained articles.
func (s *SVD) NumItems() int {
	return len(s.itemIDs)
}

// Config returns the training parameters.
func (s *SVD) Config() SVDConfig {
	return s.config
}

// State returns a deep copy of the fitted parameters.
func (s *SVD) State() SVDState {
	return SVDState{
		Config:      s.config,
		GlobalMean:  s.globalMean,
		UserIDs:     append([]int(nil), s.userIDs...),
		ItemIDs:     append([]int(nil), s.itemIDs...),
		UserBias:    append([]float64(nil), s.userBias...),
		ItemBias:    append([]float64(nil), s.itemBias...),
		UserFactors: copyMatrix(s.userFactors),
		ItemFactors: copyMatrix(s.itemFactors),
	}
}

// NewSVDFromState restores a fitted model. The state's shapes must be
// consistent.
//
//nolint:gocritic // hugeParam: state passed by value, it is copied anyway
func NewSVDFromState(state SVDState) (*SVD, error) {
	if err := state.Config.Validate(); err != nil {
		return nil, err
	}
	if len(state.UserBias) != len(state.UserIDs) || len(state.UserFactors) != len(state.UserIDs) {
		return nil, &recommend.InputValidationError{Field: "svd_state", Reason: "user parameter shapes disagree"}
	}
	if len(state.ItemBias) != len(state.ItemIDs) || len(state.ItemFactors) != len(state.ItemIDs) {
		return nil, &recommend.InputValidationError{Field: "svd_state", Reason: "item parameter shapes disagree"}
	}
	for _, row := range append(append([][]float64(nil), state.UserFactors...), state.ItemFactors...) {
		if len(row) != state.Config.Factors {
			return nil, &recommend.InputValidationError{
				Field:  "svd_state",
				Reason: fmt.Sprintf("factor row has length %d, want %d", len(row), state.Config.Factors),
			}
		}
	}

	s := &SVD{
		config:      state.Config,
		globalMean:  state.GlobalMean,
		userIndex:   make(map[int]int, len(state.UserIDs)),
		itemIndex:   make(map[int]int, len(state.ItemIDs)),
		userIDs:     append([]int(nil), state.UserIDs...),
		itemIDs:     append([]int(nil), state.ItemIDs...),
		userBias:    append([]float64(nil), state.UserBias...),
		itemBias:    append([]float64(nil), state.ItemBias...),
		userFactors: copyMatrix(state.UserFactors),
		itemFactors: copyMatrix(state.ItemFactors),
	}
	for i, id := range s.userIDs {
		s.userIndex[id] = i
	}
	for i, id := range s.itemIDs {
		s.itemIndex[id] = i
	}
	return s, nil
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
