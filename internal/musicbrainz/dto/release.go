package dto

// ReleaseGroupSearch is the response of a release-group search.
type ReleaseGroupSearch struct {
	ReleaseGroups []ReleaseGroup `json:"release-groups"`
}

// ReleaseGroup represents one search hit.
//
// PrimaryType distinguishes albums from singles, EPs and broadcasts.
type ReleaseGroup struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PrimaryType string `json:"primary-type"`
}

// ReleaseGroupGenres is the response of a release-group lookup with
// inc=genres.
type ReleaseGroupGenres struct {
	Genres []Genre `json:"genres"`
}

// Genre is a genre name with its vote count.
//
// Count is nil when the service omits it; callers treat that as zero.
type Genre struct {
	Name  string `json:"name"`
	Count *int   `json:"count"`
}

// CountOrZero returns the vote count, or 0 when it is missing.
func (g Genre) CountOrZero() int {
	if g.Count == nil {
		return 0
	}
	return *g.Count
}
