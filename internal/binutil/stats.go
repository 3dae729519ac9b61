package binutil

import (
	"bufio"
	"io"
	"math"
)

// Stats summarizes byte content: size, Shannon entropy in bits per byte,
// and counts of null and printable-ASCII bytes.
type Stats struct {
	Size      int64
	Entropy   float64
	Nulls     int64
	Printable int64
}

// NullPercent returns the share of null bytes as a percentage.
func (s Stats) NullPercent() float64 {
	if s.Size == 0 {
		return 0
	}
	return float64(s.Nulls) / float64(s.Size) * 100
}

// PrintablePercent returns the share of printable ASCII bytes (0x20-0x7E)
// as a percentage.
func (s Stats) PrintablePercent() float64 {
	if s.Size == 0 {
		return 0
	}
	return float64(s.Printable) / float64(s.Size) * 100
}

// Scan reads r to EOF and computes its statistics.
func Scan(r io.Reader) (Stats, error) {
	var freq [256]int64
	var size int64

	br := bufio.NewReader(r)
	buf := make([]byte, 32<<10)
	for {
		n, err := br.Read(buf)
		for _, b := range buf[:n] {
			freq[b]++
		}
		size += int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Stats{}, err
		}
	}

	s := Stats{
		Size:    size,
		Entropy: entropy(freq, size),
		Nulls:   freq[0],
	}
	for b := 0x20; b <= 0x7E; b++ {
		s.Printable += freq[b]
	}
	return s, nil
}

// ComputeStats computes statistics for in-memory data.
func ComputeStats(data []byte) Stats {
	var freq [256]int64
	for _, b := range data {
		freq[b]++
	}
	s := Stats{
		Size:    int64(len(data)),
		Entropy: entropy(freq, int64(len(data))),
		Nulls:   freq[0],
	}
	for b := 0x20; b <= 0x7E; b++ {
		s.Printable += freq[b]
	}
	return s
}

// entropy is the Shannon entropy of the distribution, in bits per byte.
// Empty input has zero entropy.
func entropy(freq [256]int64, size int64) float64 {
	if size == 0 {
		return 0
	}
	var h float64
	for _, n := range freq {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(size)
		h -= p * math.Log2(p)
	}
	return h
}
