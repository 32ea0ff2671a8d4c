package tracing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// TracingIngress starts a server span per request, continuing the caller's
// trace when the request carries one. The span is named after the route
// template so that /v1/projects/:id stays one operation.
func TracingIngress() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tracer := opentracing.GlobalTracer()
		spanCtx, _ := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(ctx.Request.Header))

		route := ctx.FullPath()
		if route == "" {
			route = ctx.Request.URL.Path
		}
		serverSpan := tracer.StartSpan(ctx.Request.Method+" "+route, ext.RPCServerOption(spanCtx))
		defer serverSpan.Finish()
		ext.HTTPMethod.Set(serverSpan, ctx.Request.Method)
		ext.HTTPUrl.Set(serverSpan, ctx.Request.URL.String())

		ctx.Request = ctx.Request.WithContext(opentracing.ContextWithSpan(ctx.Request.Context(), serverSpan))

		ctx.Next()

		status := ctx.Writer.Status()
		ext.HTTPStatusCode.Set(serverSpan, uint16(status))
		if status >= http.StatusInternalServerError {
			ext.Error.Set(serverSpan, true)
		}
	}
}
