package host

// Recorder is an in-memory Directory that keeps every record in call order.
// It stands in for the Emitter wherever the records are inspected rather than
// written, such as in tests of packages that drive a Directory.
type Recorder struct {
	Records []Record
}

// AddDirectoryItem records a directory entry
func (r *Recorder) AddDirectoryItem(url string, item ListItem, folder bool) error {
	r.Records = append(r.Records, Record{Type: RecordDirectoryItem, URL: url, Item: &item, Folder: &folder})
	return nil
}

// SetResolvedURL records the resolved item
func (r *Recorder) SetResolvedURL(succeeded bool, item *ListItem) error {
	r.Records = append(r.Records, Record{Type: RecordResolved, Item: item, Succeeded: &succeeded})
	return nil
}

// EndOfDirectory records the end of the listing
func (r *Recorder) EndOfDirectory() error {
	r.Records = append(r.Records, Record{Type: RecordEndOfDirectory})
	return nil
}

// Items returns the directory items recorded so far
func (r *Recorder) Items() []Record {
	var items []Record
	for _, rec := range r.Records {
		if rec.Type == RecordDirectoryItem {
			items = append(items, rec)
		}
	}
	return items
}

// EndCount counts EndOfDirectory calls
func (r *Recorder) EndCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Type == RecordEndOfDirectory {
			n++
		}
	}
	return n
}
