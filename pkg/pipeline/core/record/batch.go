package record

// Batch is a finite, ordered collection of records delivered to a destination
// stage in a single write call. The framework owns batch boundaries; a stage
// only consumes what it is handed.
type Batch struct {
	sourceOffset string
	records      []*Record
}

// NewBatch creates a batch over the given records. The slice is used as-is;
// callers must not mutate it afterwards.
func NewBatch(sourceOffset string, records []*Record) *Batch {
	return &Batch{sourceOffset: sourceOffset, records: records}
}

// SourceOffset returns the origin offset the batch was read up to.
func (b *Batch) SourceOffset() string {
	return b.sourceOffset
}

// Records returns the batch's records in delivery order.
func (b *Batch) Records() []*Record {
	return b.records
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	return len(b.records)
}
