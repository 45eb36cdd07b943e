package errorvis

import "sync"

// Magnitude buffers are recycled between Highlight calls. The live error
// view runs Highlight once per rendered frame, always at the same size, so
// the same backing slice is reused instead of growing the heap per frame.

var magPool sync.Pool // stores *[]float64

// acquireMags returns a slice of length n. Its contents are undefined.
func acquireMags(n int) *[]float64 {
	if v := magPool.Get(); v != nil {
		buf := v.(*[]float64)
		if cap(*buf) >= n {
			*buf = (*buf)[:n]
			return buf
		}
	}
	buf := make([]float64, n)
	return &buf
}

// recycleMags returns buf to the pool. The caller must not use it afterwards.
func recycleMags(buf *[]float64) {
	if buf == nil || *buf == nil {
		return
	}
	magPool.Put(buf)
}
