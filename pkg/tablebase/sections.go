package tablebase

// layoutSections reads the index_table, size_table and data sections that follow a run of
// PairsData headers, in the file's declared order: index tables for every sub-stream first, then
// size tables for every sub-stream, then (64-byte aligned) data for every sub-stream. baseOff is
// the absolute file offset s's cursor started at (s.consumed is cumulative from there), so
// baseOff+s.consumed is always s's current absolute position within the full file buffer.
func layoutSections(s *byteStream, baseOff int, streams []*pairsData) error {
	fileOff := baseOff
	indexOffs := make([]int, len(streams))
	sizeOffs := make([]int, len(streams))
	dataOffs := make([]int, len(streams))

	for i, pd := range streams {
		indexLen, _, _ := pd.sizes()
		indexOffs[i] = fileOff + s.consumed
		if _, err := s.take(indexLen); err != nil {
			return err
		}
	}
	for i, pd := range streams {
		_, sizeLen, _ := pd.sizes()
		sizeOffs[i] = fileOff + s.consumed
		if _, err := s.take(sizeLen); err != nil {
			return err
		}
	}
	for i, pd := range streams {
		_, _, dataLen := pd.sizes()
		if rem := (fileOff + s.consumed) % 64; rem != 0 {
			if _, err := s.take(64 - rem); err != nil {
				return err
			}
		}
		dataOffs[i] = fileOff + s.consumed
		if _, err := s.take(dataLen); err != nil {
			return err
		}
	}

	for i, pd := range streams {
		pd.setTables(indexOffs[i], sizeOffs[i], dataOffs[i])
	}
	return nil
}
