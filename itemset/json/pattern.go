package json

import (
	"encoding/json"
	"fmt"

	"github.com/basketlab/fpgrowth/itemset"
)

type patternEncodeDecoder struct{}

/*
NewPatternEncodeDecoder returns an object with Encode and Decode
methods that serialize patterns as JSON objects with "items" and
"support" fields, for use with stores that keep patterns as slices of
bytes.
*/
func NewPatternEncodeDecoder() *patternEncodeDecoder {
	return &patternEncodeDecoder{}
}

func (ped *patternEncodeDecoder) Encode(p *itemset.Pattern) ([]byte, error) {
	return json.Marshal(p)
}

func (ped *patternEncodeDecoder) Decode(data []byte) (*itemset.Pattern, error) {
	p := &itemset.Pattern{}
	err := json.Unmarshal(data, p)
	if err != nil {
		return nil, err
	}
	if len(p.Items) == 0 {
		return nil, fmt.Errorf("decoding pattern %q: no items", data)
	}
	return p, nil
}
