package stocks

const (
	newsWeight     = 0.4
	socialWeight   = 0.3
	analystWeight  = 0.3
	sentimentLimit = 0.3
)

// BlendSentiment combines the three sentiment components into one
// score in [-1, 1] labeled POSITIVE/NEGATIVE past the ±0.3 band.
func BlendSentiment(in SentimentInputs) SentimentScore {
	score := in.News*newsWeight + in.Social*socialWeight + in.Analyst*analystWeight
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}

	label := "NEUTRAL"
	if score > sentimentLimit {
		label = "POSITIVE"
	} else if score < -sentimentLimit {
		label = "NEGATIVE"
	}

	return SentimentScore{Score: score, Label: label}
}
