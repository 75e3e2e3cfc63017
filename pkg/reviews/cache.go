package reviews

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"slices"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// shuffleSeed keeps the pos/neg interleave deterministic across runs so train
// and validation slices stay comparable.
const shuffleSeed = 42

// LoadReviews returns whatever the cache holds for a split, sorted by ID.
func LoadReviews(db *leveldb.DB, split string) ([]Review, error) {
	out := []Review{}

	iter := db.NewIterator(util.BytesPrefix(fmt.Appendf([]byte{}, "reviews-%s-", split)), nil)
	defer iter.Release()
	for iter.Next() {
		var review Review
		if err := json.Unmarshal(iter.Value(), &review); err != nil {
			return nil, fmt.Errorf("error unmarshalling cached review: %v", err)
		}
		out = append(out, review)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("error iterating review cache: %v", err)
	}

	slices.SortFunc(out, func(a, b Review) int {
		return a.ID - b.ID
	})

	return out, nil
}

// GetReviews returns the full split with tokens capped to [0, vocabSize),
// shuffled deterministically so labels interleave. A cold or partial cache
// triggers a fetch of the archive.
func GetReviews(ctx context.Context, db *leveldb.DB, pw progress.Writer, idx *WordIndex, split string, vocabSize int) ([]Review, error) {
	out, err := LoadReviews(db, split)
	if err != nil {
		return nil, err
	}

	if len(out) < reviewsPerSplit {
		out = out[:0]
		for review := range fetchReviews(ctx, db, pw, idx, split) {
			out = append(out, review)
		}
		if len(out) < reviewsPerSplit {
			return nil, fmt.Errorf("incomplete %s split: got %d of %d reviews", split, len(out), reviewsPerSplit)
		}
		slices.SortFunc(out, func(a, b Review) int {
			return a.ID - b.ID
		})
	}

	for i := range out {
		out[i].Tokens = Cap(out[i].Tokens, vocabSize)
	}

	rng := rand.New(rand.NewSource(shuffleSeed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	return out, nil
}
