package bracket

// GroupFixed splits files into consecutive brackets of exactly size files.
// The count must be a multiple of size; there is no padding or truncation.
func GroupFixed(files []string, size int) ([]Sequence, error) {
	if size <= 0 {
		return nil, &InvalidArgumentError{Name: "interval", Value: size}
	}
	if len(files)%size != 0 {
		return nil, &BracketSizeMismatchError{Expected: size, Actual: len(files)}
	}

	seqs := make([]Sequence, 0, len(files)/size)
	for start := 0; start < len(files); start += size {
		chunk := make([]string, size)
		copy(chunk, files[start:start+size])
		seqs = append(seqs, Sequence{Files: chunk})
	}
	return seqs, nil
}
