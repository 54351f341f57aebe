package backend

import (
	"io"

	"github.com/opensquare/opensquare-cli/internal/core/ports/driven"
)

// progressReader wraps a request body and reports cumulative bytes
// consumed by the transport. The callback runs on the transport's
// goroutine, so callers must keep it fast and non-blocking.
type progressReader struct {
	reader io.Reader
	total  int64
	sent   int64
	onRead driven.ProgressFunc
}

func newProgressReader(r io.Reader, total int64, onRead driven.ProgressFunc) *progressReader {
	return &progressReader{reader: r, total: total, onRead: onRead}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		p.sent += int64(n)
		if p.onRead != nil {
			p.onRead(p.sent, p.total)
		}
	}
	return n, err
}
