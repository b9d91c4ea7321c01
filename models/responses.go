package models

// Pagination describes one page of a larger result set. Total is the
// pre-shuffle count of everything that matched.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes page metadata for a total result count.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// Candidate is one discovery card: the swipeable subset of a profile
// with photo keys resolved to viewable URLs.
type Candidate struct {
	UserID    string   `json:"userId"`
	FullName  string   `json:"fullName,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	Age       int      `json:"age,omitempty"`
	PhotoURLs []string `json:"photoUrls,omitempty"`
}

// MatchSummary is one entry of a user's match list: the other
// participant plus when the match happened.
type MatchSummary struct {
	MatchID       string       `json:"matchId"`
	MatchedUser   *UserProfile `json:"matchedUser,omitempty"`
	MatchedUserID string       `json:"matchedUserId"`
	CreatedAt     string       `json:"createdAt"`
}
