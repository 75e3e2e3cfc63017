package reviews_test

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/verdict-ml/verdict/pkg/reviews"
)

var db *leveldb.DB

func TestMain(m *testing.M) {
	path := fmt.Sprintf("%s/verdict-cache.db-test", os.TempDir())
	if err := os.RemoveAll(path); err != nil {
		log.Fatalf("failed to remove %s", path)
	} else if d, err := leveldb.OpenFile(path, nil); err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	} else {
		db = d
	}
	m.Run()
}

func testWordIndex() *reviews.WordIndex {
	return reviews.NewWordIndex(map[string]int{
		"the":   1,
		"movie": 2,
		"was":   3,
		"great": 4,
		"awful": 5,
	})
}

func TestTokenize(t *testing.T) {
	idx := testWordIndex()
	tokens := reviews.Tokenize("The movie was GREAT!", idx)

	// start marker plus the four words, ranks offset by the reserved indices
	expected := []int{reviews.TokenStart, 4, 5, 6, 7}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i := range expected {
		if tokens[i] != expected[i] {
			t.Errorf("token %d: expected %d, got %d", i, expected[i], tokens[i])
		}
	}
}

func TestTokenizeUnknownWord(t *testing.T) {
	idx := testWordIndex()
	tokens := reviews.Tokenize("the zeitgeist", idx)
	if tokens[2] != reviews.TokenUnknown {
		t.Fatalf("expected unknown token, got %d", tokens[2])
	}
}

func TestCap(t *testing.T) {
	capped := reviews.Cap([]int{reviews.TokenStart, 4, 9, 12}, 10)
	expected := []int{reviews.TokenStart, 4, 9, reviews.TokenUnknown}
	for i := range expected {
		if capped[i] != expected[i] {
			t.Errorf("token %d: expected %d, got %d", i, expected[i], capped[i])
		}
	}
	for _, token := range capped {
		if token >= 10 {
			t.Errorf("capped token %d not below vocabulary size", token)
		}
	}
}

func TestDecode(t *testing.T) {
	idx := testWordIndex()
	text := "the movie was great"
	decoded := idx.Decode(reviews.Tokenize(text, idx))
	if decoded != text {
		t.Fatalf("expected %q, got %q", text, decoded)
	}

	withUnknown := idx.Decode([]int{reviews.TokenStart, 4, reviews.TokenUnknown})
	if withUnknown != "the ?" {
		t.Fatalf("expected %q, got %q", "the ?", withUnknown)
	}
}

func TestReviewJSON(t *testing.T) {
	review := reviews.Review{
		ID:     17,
		Split:  reviews.SplitTrain,
		Label:  1,
		Tokens: []int{1, 4, 5, 6},
	}

	b, err := json.Marshal(review)
	if err != nil {
		t.Fatalf("error marshalling review: %v", err)
	}

	var decoded reviews.Review
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("error unmarshalling review: %v", err)
	}

	if decoded.ID != review.ID || decoded.Split != review.Split || decoded.Label != review.Label {
		t.Fatalf("review round trip mismatch: %+v != %+v", decoded, review)
	}
	if len(decoded.Tokens) != len(review.Tokens) {
		t.Fatalf("expected %d tokens, got %d", len(review.Tokens), len(decoded.Tokens))
	}
	for i := range review.Tokens {
		if decoded.Tokens[i] != review.Tokens[i] {
			t.Errorf("token %d: expected %d, got %d", i, review.Tokens[i], decoded.Tokens[i])
		}
	}
}

func TestLoadReviews(t *testing.T) {
	for i := range 5 {
		review := reviews.Review{
			ID:     4 - i,
			Split:  reviews.SplitTest,
			Label:  i % 2,
			Tokens: []int{reviews.TokenStart, 4 + i},
		}
		b, err := json.Marshal(review)
		if err != nil {
			t.Fatalf("error marshalling review: %v", err)
		}
		if err := db.Put(review.Key(), b, nil); err != nil {
			t.Fatalf("error storing review: %v", err)
		}
	}

	loaded, err := reviews.LoadReviews(db, reviews.SplitTest)
	if err != nil {
		t.Fatalf("error loading reviews: %v", err)
	}
	if len(loaded) != 5 {
		t.Fatalf("expected 5 reviews, got %d", len(loaded))
	}
	for i, review := range loaded {
		if review.ID != i {
			t.Errorf("review %d: expected ID %d, got %d", i, i, review.ID)
		}
	}
}
