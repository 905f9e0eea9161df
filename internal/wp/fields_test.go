package wp

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFields_SortedAndDeduped(t *testing.T) {
	pt := PostType{
		Schema: map[string]interface{}{
			"properties": map[string]interface{}{
				"zeta":  map[string]interface{}{},
				"title": map[string]interface{}{}, // duplicate of a base field
				"alpha": map[string]interface{}{},
			},
		},
	}

	fields := ExtractFields(pt, nil)

	assert.True(t, sort.StringsAreSorted(fields), "fields must be sorted: %v", fields)
	seen := make(map[string]bool)
	for _, f := range fields {
		assert.False(t, seen[f], "duplicate field %q", f)
		seen[f] = true
	}
	assert.Contains(t, fields, "zeta")
	assert.Contains(t, fields, "alpha")
}

func TestExtractFields_BaseFieldsAlwaysPresent(t *testing.T) {
	for _, pt := range []PostType{
		{},
		{Schema: map[string]interface{}{}},
		{Schema: map[string]interface{}{"properties": "not-a-map"}},
	} {
		fields := ExtractFields(pt, nil)
		for _, base := range BaseFields {
			assert.Contains(t, fields, base)
		}
	}
}

func TestExtractFields_SampledCustomFields(t *testing.T) {
	sample := []byte(`[
		{"id": 1, "meta": {"subtitle": "x", "price": 3},
		 "acf": {"hero_image": "y"}},
		{"id": 2, "meta": {"ignored_second_item": true}}
	]`)

	fields := ExtractFields(PostType{}, sample)

	assert.Contains(t, fields, "subtitle")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "hero_image")
	assert.NotContains(t, fields, "ignored_second_item", "only the first item is sampled")
}

func TestExtractFields_SampleBucketsAbsent(t *testing.T) {
	// No meta/acf buckets, meta of the wrong type, empty list, broken JSON:
	// all degrade to the base + schema fields without error.
	for _, sample := range [][]byte{
		[]byte(`[{"id": 1}]`),
		[]byte(`[{"id": 1, "meta": []}]`),
		[]byte(`[]`),
		[]byte(`{`),
		nil,
	} {
		fields := ExtractFields(PostType{}, sample)
		assert.Equal(t, len(BaseFields), len(fields), "sample %q should add nothing", sample)
	}
}
