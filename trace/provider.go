// Package trace exposes a run's log output as a live stream: the tester
// writes once while readers may tail the same output concurrently, even
// before the run has finished.
package trace

import (
	"fmt"
	"io"

	"github.com/djherbis/stream"
)

func NewProvider(stream *stream.Stream) *Provider {
	return &Provider{Stream: stream}
}

// NewMemProvider creates a provider backed by an in-memory stream, which is
// enough for single-process runs and tests.
func NewMemProvider() *Provider {
	return &Provider{Stream: stream.NewMemStream()}
}

type Provider struct {
	*stream.Stream
}

func (p *Provider) Available() bool {
	return p != nil && p.Stream != nil
}

func (p *Provider) Writer() (io.Writer, error) {
	if !p.Available() {
		return nil, fmt.Errorf("no trace stream available")
	}

	return p.Stream, nil
}

// Reader returns a new reader over the run output from the beginning.
// Reads block until more output is written or the provider is closed.
func (p *Provider) Reader() (io.ReadCloser, error) {
	if !p.Available() {
		return nil, fmt.Errorf("no trace stream available")
	}

	return p.NextReader()
}

// Close marks the stream complete, unblocking tailing readers.
func (p *Provider) Close() error {
	if !p.Available() {
		return nil
	}

	return p.Stream.Close()
}
