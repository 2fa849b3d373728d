package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnGenerateStart(ctx, 15, 15)
	p.OnGenerateComplete(ctx, 225, time.Millisecond, nil)
	p.OnRenderStart(ctx, "puzzle", []string{"svg"})
	p.OnRenderComplete(ctx, "puzzle", []string{"svg"}, time.Second, nil)
	p.OnExportStart(ctx, 225)
	p.OnExportComplete(ctx, 225, 1, time.Second, nil)

	// Raster hooks
	NoopRasterHooks{}.OnRaster(ctx, "canvas", 0, 0, time.Millisecond, errors.New("boom"))

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "pieces")
	c.OnCacheMiss(ctx, "raster")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/v1/preview")
	h.OnResponse(ctx, "POST", "/api/v1/preview", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Raster().(NoopRasterHooks); !ok {
		t.Error("Raster() should return NoopRasterHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customRaster := &testRasterHooks{}
	SetRasterHooks(customRaster)
	if Raster() != customRaster {
		t.Error("SetRasterHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Raster().(NoopRasterHooks); !ok {
		t.Error("Reset() should restore NoopRasterHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testRasterHooks struct{ NoopRasterHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
