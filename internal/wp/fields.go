package wp

import (
	"sort"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// BaseFields are always offered as mapping destinations regardless of what
// the schema declares.
var BaseFields = []string{
	"title", "content", "excerpt", "status", "author",
	"featured_media", "categories", "tags", "slug",
}

// ExtractFields turns a post type's schema into a flat list of mappable
// field names: the base set, plus every schema property, plus any custom
// fields discovered in the first sampled item. The result is deduplicated
// and sorted so it is stable for a given schema snapshot regardless of
// source order.
//
// sampleBody is the raw collection response from FetchSampleItems; it may
// be nil when sampling failed or returned nothing, in which case the
// custom-field step is skipped.
func ExtractFields(pt PostType, sampleBody []byte) []string {
	fields := make([]string, 0, len(BaseFields)+len(pt.Schema))
	fields = append(fields, BaseFields...)

	if props, ok := mapField(pt.Schema, "properties"); ok {
		for name := range props {
			fields = append(fields, name)
		}
	}

	fields = append(fields, sampleCustomFields(sampleBody)...)

	fields = lo.Uniq(fields)
	sort.Strings(fields)
	return fields
}

// sampleCustomFields probes the first sampled item for custom-field
// buckets. WordPress exposes registered meta under "meta"; sites running
// ACF expose fields under "acf". Absent buckets simply contribute nothing.
func sampleCustomFields(sampleBody []byte) []string {
	if len(sampleBody) == 0 {
		return nil
	}
	first := gjson.GetBytes(sampleBody, "0")
	if !first.Exists() {
		return nil
	}
	var names []string
	for _, bucket := range []string{"meta", "acf"} {
		b := first.Get(bucket)
		if !b.IsObject() {
			continue
		}
		b.ForEach(func(key, _ gjson.Result) bool {
			names = append(names, key.String())
			return true
		})
	}
	return names
}

// mapField safely extracts a nested object from a generic map.
func mapField(obj map[string]interface{}, field string) (map[string]interface{}, bool) {
	if obj == nil {
		return nil, false
	}
	m, ok := obj[field].(map[string]interface{})
	return m, ok
}
