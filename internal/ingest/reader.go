package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/stayfinder/hotelsearch/internal/domain"
)

// maxLineBytes bounds a single JSONL line; long reviews fit comfortably.
const maxLineBytes = 1 << 20

// rawReview mirrors the source export format. Review text may arrive under
// either "text" or "review" depending on the export vintage.
type rawReview struct {
	HotelName string  `json:"hotel_name"`
	Location  string  `json:"location"`
	Text      string  `json:"text"`
	Review    string  `json:"review"`
	Rating    float64 `json:"rating"`
	Title     string  `json:"title"`
}

// ReadFile loads review documents from a line-delimited JSON file. Malformed
// lines are logged and skipped; the skipped count comes back alongside the
// documents. A missing file is the only hard error.
func ReadFile(path string, logger *zap.Logger) ([]domain.ReviewDocument, int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	var (
		docs    []domain.ReviewDocument
		skipped int
		lineNo  int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw rawReview
		if err := json.Unmarshal(line, &raw); err != nil {
			logger.Warn("skipping malformed line",
				zap.Int("line", lineNo), zap.Error(err))
			skipped++
			continue
		}

		text := raw.Text
		if text == "" {
			text = raw.Review
		}
		doc := domain.ReviewDocument{
			DocID:       fmt.Sprintf("review_%d", lineNo-1),
			HotelName:   raw.HotelName,
			Location:    raw.Location,
			ReviewText:  text,
			Rating:      raw.Rating,
			ReviewTitle: raw.Title,
			Tags:        ExtractTags(text),
		}
		if doc.Location == "" {
			doc.Location = "Unknown"
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read source file: %w", err)
	}
	return docs, skipped, nil
}
