package reviews

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/syndtr/goleveldb/leveldb"
)

// Reserved token indices. Real vocabulary ranks are shifted up by indexFrom so
// these slots stay free, matching the convention of the tokenized IMDB corpus.
const (
	TokenPadding = 0
	TokenStart   = 1
	TokenUnknown = 2

	indexFrom = 3
)

const wordIndexURL = "https://storage.googleapis.com/tensorflow/tf-keras-datasets/imdb_word_index.json"

var wordIndexKey = []byte("reviews-word-index")

var (
	apiClient = resty.New()
)

// WordIndex maps vocabulary words to token indices and back. Ranks start at 1
// for the most frequent word; tokens are ranks offset by the reserved indices.
type WordIndex struct {
	ranks map[string]int
	words map[int]string
}

// NewWordIndex builds a WordIndex from a word -> frequency rank map.
func NewWordIndex(ranks map[string]int) *WordIndex {
	words := make(map[int]string, len(ranks))
	for word, rank := range ranks {
		words[rank+indexFrom] = word
	}
	return &WordIndex{ranks: ranks, words: words}
}

// GetWordIndex loads the IMDB word index from the leveldb cache, fetching and
// caching it on a cold start.
func GetWordIndex(db *leveldb.DB) (*WordIndex, error) {
	data, err := db.Get(wordIndexKey, nil)
	if err == leveldb.ErrNotFound {
		resp, err := apiClient.R().Get(wordIndexURL)
		if err != nil {
			return nil, fmt.Errorf("error fetching word index: %v", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("api error response fetching word index: %s", resp.Status())
		}
		data = resp.Body()
		if err := db.Put(wordIndexKey, data, nil); err != nil {
			return nil, fmt.Errorf("error caching word index: %v", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("error reading cached word index: %v", err)
	}

	var ranks map[string]int
	if err := json.Unmarshal(data, &ranks); err != nil {
		return nil, fmt.Errorf("error parsing word index: %v", err)
	}

	return NewWordIndex(ranks), nil
}

// Len is the number of real words in the index, excluding reserved slots.
func (idx *WordIndex) Len() int {
	return len(idx.ranks)
}

// Token returns the token index for a word, or TokenUnknown when the word is
// not in the vocabulary.
func (idx *WordIndex) Token(word string) int {
	rank, ok := idx.ranks[word]
	if !ok {
		return TokenUnknown
	}
	return rank + indexFrom
}

// Word is the inverse mapping, used for human-readable decoding only.
func (idx *WordIndex) Word(token int) (string, bool) {
	word, ok := idx.words[token]
	return word, ok
}

// Decode renders a token sequence back to text. Padding and start markers are
// skipped; unknown or out-of-vocabulary tokens render as "?".
func (idx *WordIndex) Decode(tokens []int) string {
	words := make([]string, 0, len(tokens))
	for _, token := range tokens {
		switch token {
		case TokenPadding, TokenStart:
			continue
		case TokenUnknown:
			words = append(words, "?")
		default:
			if word, ok := idx.words[token]; ok {
				words = append(words, word)
			} else {
				words = append(words, "?")
			}
		}
	}
	return strings.Join(words, " ")
}

// Cap replaces tokens at or above vocabSize with TokenUnknown so every token
// the caller sees lies in [0, vocabSize). Reviews are cached untruncated; the
// cap is applied at load time so the vocabulary size can change between runs.
func Cap(tokens []int, vocabSize int) []int {
	out := make([]int, len(tokens))
	for i, token := range tokens {
		if token >= vocabSize {
			out[i] = TokenUnknown
		} else {
			out[i] = token
		}
	}
	return out
}
