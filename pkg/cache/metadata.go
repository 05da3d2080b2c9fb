package cache

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/request"
)

// Metadata describes a cached image: the source info, the resize that
// produced it and the ordered list of applied transformations.
type Metadata struct {
	ImageInfo   decode.ImageInfo
	Resize      request.Resize
	Transformed []string
	Extras      map[string]string
}

func NewMetadata(result decode.Result) Metadata {
	copied := result.With()
	return Metadata{
		ImageInfo:   copied.ImageInfo,
		Resize:      copied.Resize,
		Transformed: copied.Transformed,
		Extras:      copied.Extras,
	}
}

const (
	metadataWidth           = "width"
	metadataHeight          = "height"
	metadataMimeType        = "mimeType"
	metadataResizeWidth     = "resizeWidth"
	metadataResizeHeight    = "resizeHeight"
	metadataResizePrecision = "resizePrecision"
	metadataResizeScale     = "resizeScale"
	metadataTransformed     = "transformed"
	metadataExtrasPrefix    = "extras."
)

var requiredMetadataKeys = []string{
	metadataWidth,
	metadataHeight,
	metadataMimeType,
	metadataResizeWidth,
	metadataResizeHeight,
	metadataResizePrecision,
	metadataResizeScale,
}

// MarshalText writes one key=value pair per line. Transformed entries keep
// their order; extras are sorted by key.
func (m Metadata) MarshalText() ([]byte, error) {
	var buf bytes.Buffer

	write := func(key, value string) error {
		if strings.ContainsAny(key, "\r\n=") || strings.ContainsAny(value, "\r\n") {
			return fmt.Errorf("%w: %q=%q", ErrMetadataValueNotAllowed, key, value)
		}

		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(value)
		buf.WriteByte('\n')
		return nil
	}

	pairs := [][2]string{
		{metadataWidth, strconv.Itoa(m.ImageInfo.Width)},
		{metadataHeight, strconv.Itoa(m.ImageInfo.Height)},
		{metadataMimeType, m.ImageInfo.MimeType},
		{metadataResizeWidth, strconv.Itoa(m.Resize.Size.Width)},
		{metadataResizeHeight, strconv.Itoa(m.Resize.Size.Height)},
		{metadataResizePrecision, m.Resize.Precision.String()},
		{metadataResizeScale, m.Resize.Scale.String()},
	}

	for _, transformed := range m.Transformed {
		pairs = append(pairs, [2]string{metadataTransformed, transformed})
	}

	extraKeys := make([]string, 0, len(m.Extras))
	for key := range m.Extras {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)

	for _, key := range extraKeys {
		pairs = append(pairs, [2]string{metadataExtrasPrefix + key, m.Extras[key]})
	}

	for _, pair := range pairs {
		if err := write(pair[0], pair[1]); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func (m *Metadata) UnmarshalText(text []byte) error {
	parsed, err := ParseMetadata(text)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// ParseMetadata reads the format written by MarshalText. Unknown keys are
// ignored; a malformed line or a missing required key is an error.
func ParseMetadata(text []byte) (Metadata, error) {
	metadata := Metadata{
		Transformed: []string{},
		Extras:      map[string]string{},
	}
	values := map[string]string{}

	scanner := bufio.NewScanner(bytes.NewReader(text))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found || key == "" {
			return Metadata{}, &MetadataError{Line: lineNumber, Text: line, Reason: "expected key=value"}
		}

		switch {
		case key == metadataTransformed:
			metadata.Transformed = append(metadata.Transformed, value)
		case strings.HasPrefix(key, metadataExtrasPrefix):
			metadata.Extras[strings.TrimPrefix(key, metadataExtrasPrefix)] = value
		default:
			values[key] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return Metadata{}, err
	}

	for _, key := range requiredMetadataKeys {
		if _, ok := values[key]; !ok {
			return Metadata{}, fmt.Errorf("%w: %s", ErrMetadataKeyMissing, key)
		}
	}

	var err error
	ints := map[string]*int{
		metadataWidth:        &metadata.ImageInfo.Width,
		metadataHeight:       &metadata.ImageInfo.Height,
		metadataResizeWidth:  &metadata.Resize.Size.Width,
		metadataResizeHeight: &metadata.Resize.Size.Height,
	}
	for key, target := range ints {
		if *target, err = strconv.Atoi(values[key]); err != nil {
			return Metadata{}, fmt.Errorf("invalid metadata value of %s: %w", key, err)
		}
	}

	metadata.ImageInfo.MimeType = values[metadataMimeType]

	if metadata.Resize.Precision, err = request.ParsePrecision(values[metadataResizePrecision]); err != nil {
		return Metadata{}, err
	}

	if metadata.Resize.Scale, err = request.ParseScale(values[metadataResizeScale]); err != nil {
		return Metadata{}, err
	}

	return metadata, nil
}

type MetadataError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("malformed metadata line %d %q: %s", e.Line, e.Text, e.Reason)
}

var (
	ErrMetadataKeyMissing      = errors.New("required metadata key is missing")
	ErrMetadataValueNotAllowed = errors.New("metadata key or value contains a forbidden character")
)
