package common

import (
	"io"
	"sync"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// SliceStream replays a fixed list of chunks.
type SliceStream struct {
	mu     sync.Mutex
	chunks []types.ChatCompletionChunk
	index  int
	closed bool
}

// NewSliceStream returns a stream yielding chunks in order, then io.EOF.
func NewSliceStream(chunks ...types.ChatCompletionChunk) *SliceStream {
	return &SliceStream{chunks: chunks}
}

// NewEmptyStream returns a stream that ends immediately.
func NewEmptyStream() *SliceStream {
	return &SliceStream{}
}

func (s *SliceStream) Next() (types.ChatCompletionChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.index >= len(s.chunks) {
		return types.ChatCompletionChunk{Done: true}, io.EOF
	}
	chunk := s.chunks[s.index]
	s.index++
	return chunk, nil
}

func (s *SliceStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
