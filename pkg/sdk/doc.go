// Package sdk provides a Go client for the hotelsearch HTTP API.
//
//	client := sdk.New("http://localhost:8080")
//	res, err := client.Search(ctx, sdk.SearchRequest{
//	    Query:    "romantic hotel near city center",
//	    Location: "Paris",
//	    TopK:     5,
//	})
//
// Recommendations go through the fallback-aware endpoint:
//
//	rec, err := client.RecommendWithFallback(ctx, sdk.RecommendRequest{
//	    Destination: "Rome",
//	    Preferences: sdk.Preferences{Atmosphere: "romantic"},
//	})
//	if rec.Relaxed {
//	    // constraints were dropped to fill the result set
//	}
package sdk
