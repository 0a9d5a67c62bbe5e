package client

// FlatRecord is a record collapsed to field name -> value, always with "id".
type FlatRecord map[string]string

// Flatten collapses a record's name/value pairs into a FlatRecord. The "id"
// key is set first, so a pair named "id" overrides it.
func Flatten(record EntryValue) FlatRecord {
	flat := make(FlatRecord, len(record.NameValueList)+1)
	flat["id"] = record.ID
	for _, nv := range record.NameValueList {
		flat[nv.Name] = nv.Value
	}
	return flat
}

// FlattenAll flattens each record, preserving order and length.
func FlattenAll(records []EntryValue) []FlatRecord {
	out := make([]FlatRecord, len(records))
	for i, r := range records {
		out[i] = Flatten(r)
	}
	return out
}
