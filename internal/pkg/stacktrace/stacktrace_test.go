package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/phishguard/internal/pkg/router.recoverer.func1()
	/src/internal/pkg/router/middleware_recover.go:21 +0x6a
panic({0x1, 0x2})
	/usr/local/go/src/runtime/panic.go:785 +0x132
github.com/shandysiswandi/phishguard/internal/scanner/inbound.(*HTTPEndpoint).Classify(...)
	/src/internal/scanner/inbound/http.go:40
`)

	assert.Equal(t, []string{
		"internal/pkg/router/middleware_recover.go:21",
		"internal/scanner/inbound/http.go:40",
	}, InternalPaths(stack))
}

func TestInternalPaths_NoInternalFrames(t *testing.T) {
	assert.Empty(t, InternalPaths([]byte("goroutine 1 [running]:\nmain.main()\n\t/src/main.go:10 +0x1")))
}
