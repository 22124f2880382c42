// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

// BuildRatings converts clicks into implicit ratings. Each click yields one
// Rating, in input order, scored as the share of the user's clicks that fall
// in the click's category:
//
//	score = clicks(user, category) / clicks(user)
//
// Repeated clicks on one article are kept as separate rows. An empty input
// returns an empty, non-nil slice.
func BuildRatings(clicks []ClickEvent) []Rating {
	type userCategory struct {
		user     int
		category int
	}

	perCategory := make(map[userCategory]int)
	perUser := make(map[int]int)
	for _, c := range clicks {
		perCategory[userCategory{c.UserID, c.CategoryID}]++
		perUser[c.UserID]++
	}

	ratings := make([]Rating, len(clicks))
	for i, c := range clicks {
		ratings[i] = Rating{
			UserID:     c.UserID,
			ArticleID:  c.ArticleID,
			CategoryID: c.CategoryID,
			Score:      float64(perCategory[userCategory{c.UserID, c.CategoryID}]) / float64(perUser[c.UserID]),
		}
	}
	return ratings
}
