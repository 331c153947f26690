// Package common holds plumbing shared by the vendor providers: SSE
// decoding, configuration defaults, model list caching and API error
// classification.
package common

import (
	"bufio"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// ProcessLineFunc turns the payload of one "data:" line into a chunk.
// Returning done=true ends the stream after the chunk is delivered. Return an
// *APIError for error events the vendor sends inside the stream.
type ProcessLineFunc func(data string) (chunk types.ChatCompletionChunk, done bool, err error)

// StreamProcessor reads Server-Sent Events from an HTTP response body.
type StreamProcessor struct {
	response *http.Response
	reader   *bufio.Reader
	done     bool
	mutex    sync.Mutex
}

// NewStreamProcessor wraps response; the processor owns the body.
func NewStreamProcessor(response *http.Response) *StreamProcessor {
	return &StreamProcessor{
		response: response,
		reader:   bufio.NewReader(response.Body),
	}
}

// NextChunk reads until the next data line yields a chunk. Malformed lines
// are skipped, but an *APIError from processLine ends the stream with that
// error. "[DONE]" and end of body both end the stream with io.EOF.
func (sp *StreamProcessor) NextChunk(processLine ProcessLineFunc) (types.ChatCompletionChunk, error) {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	if sp.done {
		return types.ChatCompletionChunk{Done: true}, io.EOF
	}

	for {
		line, err := sp.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				sp.done = true
				return types.ChatCompletionChunk{Done: true}, io.EOF
			}
			return types.ChatCompletionChunk{}, err
		}

		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

		if data == "[DONE]" {
			sp.done = true
			return types.ChatCompletionChunk{Done: true}, io.EOF
		}

		chunk, isDone, perr := processLine(data)
		if perr != nil {
			var apiErr *APIError
			if errors.As(perr, &apiErr) {
				sp.done = true
				return types.ChatCompletionChunk{}, perr
			}
			continue
		}
		if isDone {
			sp.done = true
		}
		return chunk, nil
	}
}

// Close closes the response body.
func (sp *StreamProcessor) Close() error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	sp.done = true
	if sp.response != nil && sp.response.Body != nil {
		return sp.response.Body.Close()
	}
	return nil
}

// IsDone reports whether the stream has ended.
func (sp *StreamProcessor) IsDone() bool {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	return sp.done
}

// SSEStream adapts a StreamProcessor and a line parser to
// types.ChatCompletionStream.
type SSEStream struct {
	processor *StreamProcessor
	parse     ProcessLineFunc
}

// NewSSEStream creates a stream over response using parse for each data line.
func NewSSEStream(response *http.Response, parse ProcessLineFunc) *SSEStream {
	return &SSEStream{processor: NewStreamProcessor(response), parse: parse}
}

func (s *SSEStream) Next() (types.ChatCompletionChunk, error) {
	return s.processor.NextChunk(s.parse)
}

func (s *SSEStream) Close() error {
	return s.processor.Close()
}
