package bible

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Decode reads a document shaped as
//
//	{ "<chapter>": { "<verse>": "<text>" } }
//
// Only presence is checked: keys must be positive integers, unique once
// parsed, and texts non-empty. Anything after the document is rejected.
func Decode(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)

	var raw map[string]map[string]string
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrDataUnavailable, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrDataUnavailable)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: document has no chapters", ErrDataUnavailable)
	}

	chapters := make(map[int]map[int]string, len(raw))
	for chapterKey, verses := range raw {
		c, err := positiveInt(chapterKey)
		if err != nil {
			return nil, fmt.Errorf("%w: chapter key %q: %v", ErrDataUnavailable, chapterKey, err)
		}
		if _, dup := chapters[c]; dup {
			return nil, fmt.Errorf("%w: chapter key %q repeats chapter %d", ErrDataUnavailable, chapterKey, c)
		}

		parsed := make(map[int]string, len(verses))
		for verseKey, text := range verses {
			v, err := positiveInt(verseKey)
			if err != nil {
				return nil, fmt.Errorf("%w: chapter %d verse key %q: %v", ErrDataUnavailable, c, verseKey, err)
			}
			if _, dup := parsed[v]; dup {
				return nil, fmt.Errorf("%w: chapter %d verse key %q repeats verse %d", ErrDataUnavailable, c, verseKey, v)
			}
			if text == "" {
				return nil, fmt.Errorf("%w: chapter %d verse %d has no text", ErrDataUnavailable, c, v)
			}
			parsed[v] = text
		}
		chapters[c] = parsed
	}

	return NewDataset(chapters), nil
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
