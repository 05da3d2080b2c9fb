package request

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Context is the per-execution state derived from a Request. It is built
// once when an execution starts and only read afterwards.
type Context struct {
	id      string
	request Request

	size   Size
	resize Resize

	memoryCacheKey string
	resultCacheKey string
}

// NewContext resolves the target size (falling back to defaultSize when the
// request does not name one) and computes the cache keys.
func NewContext(req Request, defaultSize Size) *Context {
	size := req.Size()
	if size.IsEmpty() {
		size = defaultSize
	}

	resize := NewResize(size, req.Precision(), req.Scale())
	key := cacheKey(req, resize)

	return &Context{
		id:             uuid.New().String(),
		request:        req,
		size:           size,
		resize:         resize,
		memoryCacheKey: key,
		resultCacheKey: key,
	}
}

func (c *Context) ID() string             { return c.id }
func (c *Context) Request() Request       { return c.request }
func (c *Context) Size() Size             { return c.size }
func (c *Context) Resize() Resize         { return c.resize }
func (c *Context) MemoryCacheKey() string { return c.memoryCacheKey }
func (c *Context) ResultCacheKey() string { return c.resultCacheKey }

func cacheKey(req Request, resize Resize) string {
	var b strings.Builder
	b.WriteString(req.URI())

	separator := "?"
	if strings.Contains(req.URI(), "?") {
		separator = "&"
	}

	b.WriteString(separator)
	b.WriteString("_resize=")
	b.WriteString(resize.Key())

	if transformations := req.Transformations(); len(transformations) > 0 {
		keys := make([]string, len(transformations))
		for i, transformation := range transformations {
			keys[i] = transformation.Key()
		}

		b.WriteString("&_transformations=")
		b.WriteString(strings.Join(keys, ","))
	}

	if req.IgnoreExifOrientation() {
		b.WriteString("&_ignoreExifOrientation=")
		b.WriteString(strconv.FormatBool(true))
	}

	parameters := req.Parameters()
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.WriteString("&")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(parameters[name])
	}

	return b.String()
}
