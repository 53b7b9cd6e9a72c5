package dto

// RecordingSearch is the response of a recording search.
type RecordingSearch struct {
	Recordings []Recording `json:"recordings"`
}

// Recording is one search hit along with the releases it appears on.
type Recording struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Releases []RecordingRelease `json:"releases"`
}

// RecordingRelease is a release a recording appears on.
type RecordingRelease struct {
	Title string `json:"title"`
}

// RecordingRating is the response of a recording lookup with inc=ratings.
type RecordingRating struct {
	Rating Rating `json:"rating"`
}

// Rating holds the community rating. Value is nil for unrated recordings.
type Rating struct {
	Value      *float64 `json:"value"`
	VotesCount int      `json:"votes-count"`
}
