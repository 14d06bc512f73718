package dashboard

// Record is one labeled row of a dataset (a month, a day, a sector...).
type Record struct {
	Label  string             `json:"label" yaml:"label"`
	Values map[string]float64 `json:"values" yaml:"values"`
	Tags   map[string]string  `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Value returns the named numeric field, or 0 when absent.
func (r Record) Value(field string) float64 {
	return r.Values[field]
}

// Tag returns the named string attribute, or "" when absent.
func (r Record) Tag(key string) string {
	return r.Tags[key]
}

// Dataset is an ordered, read-only sequence of records backing one visualization.
// Ordering is meaningful (chronological or rank order).
type Dataset struct {
	Name    string   `json:"name" yaml:"name"`
	Fields  []string `json:"fields" yaml:"fields"`
	Records []Record `json:"records" yaml:"records"`
}

// Len reports the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// Column extracts one numeric field across every record.
func (d Dataset) Column(field string) []float64 {
	out := make([]float64, len(d.Records))
	for i, rec := range d.Records {
		out[i] = rec.Value(field)
	}
	return out
}

// Labels returns the record labels in order.
func (d Dataset) Labels() []string {
	out := make([]string, len(d.Records))
	for i, rec := range d.Records {
		out[i] = rec.Label
	}
	return out
}

// Lookup finds a record by label.
func (d Dataset) Lookup(label string) (Record, bool) {
	for _, rec := range d.Records {
		if rec.Label == label {
			return rec, true
		}
	}
	return Record{}, false
}

// At returns the record at i, falling back to the first record when i is out
// of range. An empty dataset yields the zero record.
func (d Dataset) At(i int) Record {
	if i >= 0 && i < len(d.Records) {
		return d.Records[i]
	}
	if len(d.Records) > 0 {
		return d.Records[0]
	}
	return Record{}
}

// Last returns the final record (the zero record when empty).
func (d Dataset) Last() Record {
	return d.At(len(d.Records) - 1)
}

// Head returns up to n leading records.
func (d Dataset) Head(n int) []Record {
	if n > len(d.Records) {
		n = len(d.Records)
	}
	if n < 0 {
		n = 0
	}
	return append([]Record(nil), d.Records[:n]...)
}

// TailReversed returns up to n trailing records, last record first.
func (d Dataset) TailReversed(n int) []Record {
	if n > len(d.Records) {
		n = len(d.Records)
	}
	out := make([]Record, 0, n)
	for i := len(d.Records) - 1; i >= len(d.Records)-n; i-- {
		out = append(out, d.Records[i])
	}
	return out
}
