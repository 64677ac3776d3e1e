package pwgen

// Assemble fills a buffer of length characters with the seeds of cs followed
// by characters sampled from its alphabet, then shuffles the whole buffer so
// the seeds end up in random positions.
func Assemble(cs Charset, length int, s *Sampler) ([]rune, error) {
	if len(cs.Alphabet) == 0 {
		return nil, ErrNoClassSelected
	}
	if len(cs.Seeds) > length {
		return nil, ErrTooManySeeds
	}

	buf := make([]rune, 0, length)
	buf = append(buf, cs.Seeds...)
	for len(buf) < length {
		idx, err := s.Sample(len(cs.Alphabet))
		if err != nil {
			return nil, err
		}
		buf = append(buf, cs.Alphabet[idx])
	}

	// Fisher-Yates
	for i := len(buf) - 1; i > 0; i-- {
		j, err := s.Sample(i + 1)
		if err != nil {
			return nil, err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf, nil
}
