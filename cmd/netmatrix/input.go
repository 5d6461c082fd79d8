package main

import (
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// mappedFile adapts a memory-mapped file to io.ReadCloser.
type mappedFile struct {
	*io.SectionReader
	r *mmap.ReaderAt
}

func (m *mappedFile) Close() error {
	return m.r.Close()
}

// openInput opens the command file, memory-mapped when useMmap is set.
func openInput(path string, useMmap bool) (io.ReadCloser, error) {
	if !useMmap {
		return os.Open(path)
	}
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &mappedFile{SectionReader: io.NewSectionReader(r, 0, int64(r.Len())), r: r}, nil
}
