package model

type Sentiment float64

const (
	SentimentNegative Sentiment = 0
	SentimentPositive Sentiment = 1
)

func (s Sentiment) String() string {
	switch s {
	case SentimentPositive:
		return "POSITIVE"
	default:
		return "NEGATIVE"
	}
}
