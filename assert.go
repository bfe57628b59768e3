//go:build !debug

package step

func goid() uint64 {
	return 0
}

// assertInside panics if called outside this context's own goroutine (debug only).
func (c *ExecContext) assertInside() {}

// assertOutside panics if called inside this context's own goroutine (debug only).
func (c *ExecContext) assertOutside() {}
