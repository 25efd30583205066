package survey

// Record is one raw node entry as a source returned it. There is no fixed
// schema; chains look fields up ad hoc and treat missing values as absent.
type Record map[string]any

// Str returns the string value stored under key, or "" when the field is
// missing or not a string.
func (r Record) Str(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the integer value stored under key. JSON decoding stores
// numbers as float64, so both forms are handled.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Weight returns how many nodes this record stands for. Most sources return
// one record per node; pre-aggregated sources (tzkt stats) set a weight.
func (r Record) Weight() int {
	if w := r.Int("weight"); w > 0 {
		return w
	}
	return 1
}
