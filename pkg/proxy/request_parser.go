package proxy

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/thebartekbanach/imload/pkg/request"
	"github.com/thebartekbanach/imload/pkg/transform"
)

// parseRequest builds a request from the query of rawRequestPath:
// url (required), w and h or size=WxH, precision, scale, transform, depth
// and ignoreExif.
func parseRequest(rawRequestPath string, maxSize request.Size) (request.Request, error) {
	parsedURL, err := url.Parse(rawRequestPath)
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	query := parsedURL.Query()
	sourceURI := query.Get("url")
	if sourceURI == "" {
		return request.Request{}, fmt.Errorf("%w: url query parameter is required", ErrMalformedRequest)
	}

	options := []request.Option{}

	size, err := parseSize(query)
	if err != nil {
		return request.Request{}, err
	}
	if !size.IsEmpty() {
		if !maxSize.IsEmpty() && (size.Width > maxSize.Width || size.Height > maxSize.Height) {
			return request.Request{}, fmt.Errorf("%w: %s exceeds %s", ErrSizeNotAllowed, size, maxSize)
		}
		options = append(options, request.WithSize(size.Width, size.Height))
	}

	if value := query.Get("precision"); value != "" {
		precision, err := request.ParsePrecision(value)
		if err != nil {
			return request.Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		options = append(options, request.WithPrecision(precision))
	}

	if value := query.Get("scale"); value != "" {
		scale, err := request.ParseScale(value)
		if err != nil {
			return request.Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		options = append(options, request.WithScale(scale))
	}

	if value := query.Get("depth"); value != "" {
		depth, err := request.ParseDepth(value)
		if err != nil {
			return request.Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		options = append(options, request.WithDepth(depth))
	}

	if value := query.Get("ignoreExif"); value != "" {
		ignore, err := strconv.ParseBool(value)
		if err != nil {
			return request.Request{}, fmt.Errorf("%w: ignoreExif: %v", ErrMalformedRequest, err)
		}
		options = append(options, request.WithIgnoreExifOrientation(ignore))
	}

	transformations, err := transform.ParseList(strings.Join(query["transform"], ","))
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if len(transformations) > 0 {
		options = append(options, request.WithTransformations(transformations...))
	}

	return request.New(sourceURI, options...), nil
}

func parseSize(query url.Values) (request.Size, error) {
	if value := query.Get("size"); value != "" {
		size, err := request.ParseSize(value)
		if err != nil {
			return request.Size{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		return size, nil
	}

	width, height := query.Get("w"), query.Get("h")
	if width == "" && height == "" {
		return request.Size{}, nil
	}

	if width == "" || height == "" {
		return request.Size{}, fmt.Errorf("%w: w and h must be given together", ErrMalformedRequest)
	}

	size, err := request.ParseSize(width + "x" + height)
	if err != nil {
		return request.Size{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	return size, nil
}
