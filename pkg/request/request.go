package request

import (
	"context"
	"image"
)

// Transformation is a post-decode image operation. Key must be stable: it
// takes part in cache keys and in the transformed tags of results.
type Transformation interface {
	Key() string
	Transform(ctx context.Context, img image.Image) (image.Image, error)
}

// Request describes one image to load. It is immutable: use With to derive a
// modified copy.
type Request struct {
	uri string

	size      Size
	precision Precision
	scale     Scale
	depth     Depth

	memoryCachePolicy CachePolicy
	resultCachePolicy CachePolicy

	transformations       []Transformation
	ignoreExifOrientation bool
	parameters            map[string]string
}

type Option func(r *Request)

func New(uri string, options ...Option) Request {
	r := Request{
		uri:       uri,
		precision: LessPixels,
		scale:     CenterCrop,
		depth:     Network,
	}

	for _, option := range options {
		option(&r)
	}

	return r
}

// With returns a copy of r with the options applied; r is left untouched.
func (r Request) With(options ...Option) Request {
	derived := r
	derived.transformations = r.Transformations()
	derived.parameters = r.Parameters()

	for _, option := range options {
		option(&derived)
	}

	return derived
}

func (r Request) URI() string                    { return r.uri }
func (r Request) Size() Size                     { return r.size }
func (r Request) Precision() Precision           { return r.precision }
func (r Request) Scale() Scale                   { return r.scale }
func (r Request) Depth() Depth                   { return r.depth }
func (r Request) MemoryCachePolicy() CachePolicy { return r.memoryCachePolicy }
func (r Request) ResultCachePolicy() CachePolicy { return r.resultCachePolicy }
func (r Request) IgnoreExifOrientation() bool    { return r.ignoreExifOrientation }

func (r Request) Transformations() []Transformation {
	if len(r.transformations) == 0 {
		return nil
	}

	transformations := make([]Transformation, len(r.transformations))
	copy(transformations, r.transformations)
	return transformations
}

func (r Request) Parameters() map[string]string {
	if len(r.parameters) == 0 {
		return nil
	}

	parameters := make(map[string]string, len(r.parameters))
	for key, value := range r.parameters {
		parameters[key] = value
	}
	return parameters
}

func (r Request) Parameter(key string) (string, bool) {
	value, ok := r.parameters[key]
	return value, ok
}

func WithURI(uri string) Option {
	return func(r *Request) { r.uri = uri }
}

func WithSize(width, height int) Option {
	return func(r *Request) { r.size = Size{width, height} }
}

func WithPrecision(precision Precision) Option {
	return func(r *Request) { r.precision = precision }
}

func WithScale(scale Scale) Option {
	return func(r *Request) { r.scale = scale }
}

func WithDepth(depth Depth) Option {
	return func(r *Request) { r.depth = depth }
}

func WithMemoryCachePolicy(policy CachePolicy) Option {
	return func(r *Request) { r.memoryCachePolicy = policy }
}

func WithResultCachePolicy(policy CachePolicy) Option {
	return func(r *Request) { r.resultCachePolicy = policy }
}

func WithIgnoreExifOrientation(ignore bool) Option {
	return func(r *Request) { r.ignoreExifOrientation = ignore }
}

// WithTransformations replaces the transformation list.
func WithTransformations(transformations ...Transformation) Option {
	return func(r *Request) {
		r.transformations = append([]Transformation(nil), transformations...)
	}
}

// AddTransformations appends to the transformation list.
func AddTransformations(transformations ...Transformation) Option {
	return func(r *Request) {
		r.transformations = append(r.transformations, transformations...)
	}
}

// WithParameter sets a free-form parameter. Parameters take part in cache
// keys, so only set values that change the produced image.
func WithParameter(key, value string) Option {
	return func(r *Request) {
		if r.parameters == nil {
			r.parameters = map[string]string{}
		}
		r.parameters[key] = value
	}
}
