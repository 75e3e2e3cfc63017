package reviews

import (
	"encoding/json"
	"fmt"
)

const (
	SplitTrain = "train"
	SplitTest  = "test"
)

type Review struct {
	ID     int    `bson:"id"`
	Split  string `bson:"split"`
	Label  int    `bson:"label"`
	Tokens []int  `bson:"tokens"`
}

// Marshal to an array
func (r Review) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.ID, r.Split, r.Label, r.Tokens})
}

// Unmarshal from an array
func (r *Review) UnmarshalJSON(data []byte) error {
	var arr [4]any
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}

	id, ok := arr[0].(float64)
	if !ok {
		return fmt.Errorf("invalid review id: %v", arr[0])
	}
	split, ok := arr[1].(string)
	if !ok {
		return fmt.Errorf("invalid review split: %v", arr[1])
	}
	label, ok := arr[2].(float64)
	if !ok {
		return fmt.Errorf("invalid review label: %v", arr[2])
	}
	rawTokens, ok := arr[3].([]any)
	if !ok {
		return fmt.Errorf("invalid review tokens: %v", arr[3])
	}

	tokens := make([]int, len(rawTokens))
	for i, t := range rawTokens {
		v, ok := t.(float64)
		if !ok {
			return fmt.Errorf("invalid token at %d: %v", i, t)
		}
		tokens[i] = int(v)
	}

	r.ID = int(id)
	r.Split = split
	r.Label = int(label)
	r.Tokens = tokens
	return nil
}

// Key is the leveldb cache key for this review.
func (r Review) Key() []byte {
	return fmt.Appendf([]byte{}, "reviews-%s-%06d", r.Split, r.ID)
}
