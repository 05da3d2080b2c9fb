package filefetcher

import (
	"bytes"
	"io"
	"os"
)

type BytesDataSource struct {
	data     []byte
	dataFrom DataFrom
}

var _ DataSource = (*BytesDataSource)(nil)

func NewBytesDataSource(data []byte, dataFrom DataFrom) *BytesDataSource {
	return &BytesDataSource{data, dataFrom}
}

func (s *BytesDataSource) DataFrom() DataFrom {
	return s.dataFrom
}

func (s *BytesDataSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func (s *BytesDataSource) Bytes() []byte {
	return s.data
}

type FileDataSource struct {
	path     string
	dataFrom DataFrom
}

var _ DataSource = (*FileDataSource)(nil)

func NewFileDataSource(path string, dataFrom DataFrom) *FileDataSource {
	return &FileDataSource{path, dataFrom}
}

func (s *FileDataSource) DataFrom() DataFrom {
	return s.dataFrom
}

func (s *FileDataSource) Open() (io.ReadCloser, error) {
	return os.Open(s.path)
}

func (s *FileDataSource) Path() string {
	return s.path
}
