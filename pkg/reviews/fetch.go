package reviews

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/syndtr/goleveldb/leveldb"
)

const datasetURL = "https://ai.stanford.edu/~amaas/data/sentiment/aclImdb_v1.tar.gz"

// reviewsPerSplit is fixed by the corpus: 12500 positive plus 12500 negative
// labelled documents in each of the train and test splits.
const reviewsPerSplit = 25000

// fetchReviews downloads the review archive, tokenizes every labelled
// document in both splits into the cache, and emits the reviews belonging to
// the requested split.
func fetchReviews(ctx context.Context, db *leveldb.DB, pw progress.Writer, idx *WordIndex, split string) chan Review {
	out := make(chan Review, 100)

	var tracker *progress.Tracker
	if pw != nil {
		tracker = &progress.Tracker{
			Message: "Fetching reviews",
			Total:   2 * reviewsPerSplit,
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)
		tracker.Start()
	}

	go func() {
		defer close(out)

		resp, err := apiClient.R().SetContext(ctx).SetDoNotParseResponse(true).Get(datasetURL)
		if err != nil {
			log.Printf("error fetching review archive: %v", err)
			return
		}
		body := resp.RawBody()
		defer body.Close()

		if resp.IsError() {
			log.Printf("api error response fetching review archive: %s", resp.Status())
			return
		}

		gz, err := gzip.NewReader(body)
		if err != nil {
			log.Printf("error decompressing review archive: %v", err)
			return
		}
		defer gz.Close()

		counters := map[string]int{}
		tr := tar.NewReader(gz)
		for {
			header, err := tr.Next()
			if err == io.EOF {
				break
			} else if err != nil {
				log.Printf("error reading review archive: %v", err)
				return
			}
			if header.Typeflag != tar.TypeReg {
				continue
			}

			reviewSplit, label, ok := classifyEntry(header.Name)
			if !ok {
				continue
			}

			text, err := io.ReadAll(tr)
			if err != nil {
				log.Printf("error reading review %s: %v", header.Name, err)
				return
			}

			review := Review{
				ID:     counters[reviewSplit],
				Split:  reviewSplit,
				Label:  label,
				Tokens: Tokenize(string(text), idx),
			}
			counters[reviewSplit]++

			if b, err := json.Marshal(review); err != nil {
				log.Printf("error marshalling review to json: %v", err)
				return
			} else if err := db.Put(review.Key(), b, nil); err != nil {
				log.Printf("error storing review in db: %v", err)
				return
			}

			if tracker != nil {
				tracker.Increment(1)
			}
			if review.Split == split {
				out <- review
			}
		}

		if tracker != nil {
			tracker.MarkAsDone()
		}
	}()

	return out
}

// classifyEntry maps an archive path like aclImdb/train/pos/0_9.txt to its
// split and label. Unsupervised documents and metadata files are skipped.
func classifyEntry(name string) (string, int, bool) {
	parts := strings.Split(name, "/")
	if len(parts) != 4 || !strings.HasSuffix(parts[3], ".txt") {
		return "", 0, false
	}

	split := parts[1]
	if split != SplitTrain && split != SplitTest {
		return "", 0, false
	}

	switch parts[2] {
	case "pos":
		return split, 1, true
	case "neg":
		return split, 0, true
	default:
		return "", 0, false
	}
}
