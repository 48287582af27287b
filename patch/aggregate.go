package patch

// Aggregator flattens an ordered list of patch sources into one logical
// sequence. It never materializes the mapping from global to local indices;
// each lookup rescans the source lengths, which is cheap since sources are
// few relative to the patches they hold.
type Aggregator struct {
	sources []Source
}

// NewAggregator composes sources in the given order. The source list is
// fixed for the life of the aggregator.
func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// Len returns the summed length of all sources.
func (a *Aggregator) Len() int {
	total := 0
	for _, src := range a.sources {
		total += src.Len()
	}
	return total
}

// At forwards global index idx to the owning source. An index beyond the
// last source fails with ErrIndexOutOfRange.
func (a *Aggregator) At(idx int) (Patch, error) {
	which, local, err := resolveLinear(len(a.sources), func(i int) int { return a.sources[i].Len() }, idx)
	if err != nil {
		return Patch{}, err
	}
	return a.sources[which].At(local)
}
