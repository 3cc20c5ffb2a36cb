package tweets

// Record is one row of a dataset. Text is nil when the row has no value for
// the text column.
type Record struct {
	IDStr string  `json:"id_str,omitempty"`
	Text  *string `json:"text"`
}

// NewRecord returns a Record carrying text.
func NewRecord(text string) Record {
	return Record{Text: &text}
}

// TextOrEmpty returns the record text, or "" when it is absent.
func (r Record) TextOrEmpty() string {
	if r.Text == nil {
		return ""
	}
	return *r.Text
}

// HasText reports whether the record carries a text value.
func (r Record) HasText() bool {
	return r.Text != nil
}

// Dataset is a loaded table of records. HasTextColumn is false when the
// source schema has no text column at all.
type Dataset struct {
	Name          string
	Columns       []string
	HasTextColumn bool
	Records       []Record
}

// FromTexts builds a Dataset with a text column from plain strings.
func FromTexts(name string, texts ...string) *Dataset {
	ds := &Dataset{
		Name:          name,
		Columns:       []string{"text"},
		HasTextColumn: true,
		Records:       make([]Record, 0, len(texts)),
	}
	for _, text := range texts {
		ds.Records = append(ds.Records, NewRecord(text))
	}
	return ds
}
