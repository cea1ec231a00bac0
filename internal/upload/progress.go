package upload

import (
	"io"
	"math"
	"time"
)

// Progress is one byte-level snapshot of an in-flight upload. ETAKnown stays
// false until throughput is a finite positive number; the UI shows
// "calculating" until then.
type Progress struct {
	BytesSent  int64         `json:"bytesSent"`
	BytesTotal int64         `json:"bytesTotal"`
	Percent    int           `json:"percent"`
	Throughput float64       `json:"throughput"`
	ETA        time.Duration `json:"eta"`
	ETAKnown   bool          `json:"etaKnown"`
}

func computeProgress(sent, total int64, elapsed time.Duration) Progress {
	p := Progress{BytesSent: sent, BytesTotal: total}
	if total > 0 {
		p.Percent = int(math.Floor(float64(sent) / float64(total) * 100))
	}
	if p.Percent < 0 {
		p.Percent = 0
	}
	if p.Percent > 100 {
		p.Percent = 100
	}
	if elapsed > 0 && sent > 0 {
		p.Throughput = float64(sent) / elapsed.Seconds()
	}
	if p.Throughput > 0 && !math.IsInf(p.Throughput, 1) {
		remaining := total - sent
		if remaining < 0 {
			remaining = 0
		}
		p.ETA = time.Duration(float64(remaining) / p.Throughput * float64(time.Second))
		p.ETAKnown = true
	}
	return p
}

// countingReader reports the cumulative byte count to fn on every read, which
// is how the transport's send loop becomes the progress event source.
type countingReader struct {
	r    io.Reader
	sent int64
	fn   func(sent int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.sent += int64(n)
		if c.fn != nil {
			c.fn(c.sent)
		}
	}
	return n, err
}
