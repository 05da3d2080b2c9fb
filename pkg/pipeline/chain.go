package pipeline

import (
	"context"

	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/request"
)

type requestChain struct {
	ctx            context.Context
	requestContext *request.Context
	interceptors   []RequestInterceptor
	index          int
}

var _ RequestChain = (*requestChain)(nil)

func newRequestChain(ctx context.Context, requestContext *request.Context, interceptors []RequestInterceptor) *requestChain {
	return &requestChain{ctx: ctx, requestContext: requestContext, interceptors: interceptors}
}

func (c *requestChain) Context() context.Context         { return c.ctx }
func (c *requestChain) RequestContext() *request.Context { return c.requestContext }
func (c *requestChain) Request() request.Request         { return c.requestContext.Request() }

func (c *requestChain) Proceed() (ImageData, error) {
	if err := c.ctx.Err(); err != nil {
		return ImageData{}, asCanceled(c.ctx, err)
	}

	if c.index >= len(c.interceptors) {
		return ImageData{}, ErrChainExhausted
	}

	next := *c
	next.index++
	return c.interceptors[c.index].Intercept(&next)
}

type decodeChain struct {
	ctx            context.Context
	requestContext *request.Context
	interceptors   []DecodeInterceptor
	index          int
}

var _ DecodeChain = (*decodeChain)(nil)

func newDecodeChain(ctx context.Context, requestContext *request.Context, interceptors []DecodeInterceptor) *decodeChain {
	return &decodeChain{ctx: ctx, requestContext: requestContext, interceptors: interceptors}
}

func (c *decodeChain) Context() context.Context         { return c.ctx }
func (c *decodeChain) RequestContext() *request.Context { return c.requestContext }
func (c *decodeChain) Request() request.Request         { return c.requestContext.Request() }

func (c *decodeChain) Proceed() (decode.Result, error) {
	if err := c.ctx.Err(); err != nil {
		return decode.Result{}, asCanceled(c.ctx, err)
	}

	if c.index >= len(c.interceptors) {
		return decode.Result{}, ErrChainExhausted
	}

	next := *c
	next.index++
	return c.interceptors[c.index].Intercept(&next)
}
