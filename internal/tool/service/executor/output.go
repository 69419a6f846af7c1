package executor

import (
	"bytes"

	"github.com/Cyclone1070/codeagent/internal/tool/service/fs"
)

const binarySampleSize = 8000

// collector captures command output with a size cap. Output whose first
// sampleSize bytes look binary is replaced by a placeholder.
type collector struct {
	buffer    bytes.Buffer
	maxBytes  int
	truncated bool
	isBinary  bool

	bytesChecked int
	sampleSize   int
}

func newCollector(maxBytes int, sampleSize int) *collector {
	return &collector{
		maxBytes:   maxBytes,
		sampleSize: sampleSize,
	}
}

// Write always reports len(p) so the process never blocks on a full pipe.
func (c *collector) Write(p []byte) (int, error) {
	n := len(p)
	if c.isBinary {
		return n, nil
	}

	if c.bytesChecked < c.sampleSize {
		toCheck := p[:min(len(p), c.sampleSize-c.bytesChecked)]
		if fs.IsBinary(toCheck) {
			c.isBinary = true
			c.truncated = true
			c.buffer.Reset()
			return n, nil
		}
		c.bytesChecked += len(toCheck)
	}

	remaining := c.maxBytes - c.buffer.Len()
	if remaining <= 0 {
		c.truncated = true
		return n, nil
	}
	if len(p) > remaining {
		p = p[:remaining]
		c.truncated = true
	}
	c.buffer.Write(p)

	return n, nil
}

func (c *collector) String() string {
	if c.isBinary {
		return "[Binary Content]"
	}
	return c.buffer.String()
}

func (c *collector) Truncated() bool {
	return c.truncated
}
