package domain

// RatingBucket is one bar of a hotel's rating histogram.
type RatingBucket struct {
	Rating float64 `json:"rating"`
	Count  int64   `json:"count"`
}

// TagCount is one tag with its occurrence count across a hotel's reviews.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// SampleReview is a short excerpt shown alongside an analysis.
type SampleReview struct {
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

// HotelAnalysis aggregates everything the index knows about one hotel's
// reviews: volume, rating shape, recurring tags, and a few excerpts.
type HotelAnalysis struct {
	HotelName          string         `json:"hotel_name"`
	TotalReviews       int64          `json:"total_reviews"`
	AvgRating          float64        `json:"avg_rating"`
	RatingDistribution []RatingBucket `json:"rating_distribution"`
	CommonTags         []TagCount     `json:"common_tags"`
	SampleReviews      []SampleReview `json:"sample_reviews"`
}
