// Package replay persists a stream of match frames so a game can be watched again.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/diegok/botpong/internal/protocol"
)

// FormatVersion is written into every recording header
const FormatVersion = 1

// Recorder writes a header, then frames and events in the order they happen
type Recorder struct {
	file   *os.File
	buf    *bufio.Writer
	codec  *protocol.Codec
	frames int
}

// Create opens path for writing and writes the header
func Create(path string, header protocol.Header) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create recording: %w", err)
	}
	buf := bufio.NewWriter(file)
	r := &Recorder{file: file, buf: buf, codec: protocol.NewEncoder(buf)}

	header.Version = FormatVersion
	if err := r.codec.Encode(&protocol.Message{Type: protocol.MsgHeader, Payload: header}); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write recording header: %w", err)
	}
	return r, nil
}

// WriteFrame appends one match snapshot
func (r *Recorder) WriteFrame(state protocol.MatchState) error {
	r.frames++
	return r.codec.EncodeState(state)
}

// WriteEvent appends one match event
func (r *Recorder) WriteEvent(ev protocol.Event) error {
	return r.codec.EncodeEvent(ev)
}

// Frames returns how many frames have been written
func (r *Recorder) Frames() int {
	return r.frames
}

// Close flushes and closes the file
func (r *Recorder) Close() error {
	if err := r.buf.Flush(); err != nil {
		r.file.Close()
		return fmt.Errorf("failed to flush recording: %w", err)
	}
	return r.file.Close()
}

// Reader yields frames from a recording
type Reader struct {
	file   *os.File
	codec  *protocol.Codec
	header protocol.Header
}

// Open opens a recording and reads its header
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording: %w", err)
	}
	r := &Reader{file: file, codec: protocol.NewDecoder(bufio.NewReader(file))}

	msg, err := r.codec.Decode()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read recording header: %w", err)
	}
	header, ok := msg.Payload.(protocol.Header)
	if msg.Type != protocol.MsgHeader || !ok {
		file.Close()
		return nil, fmt.Errorf("%s is not a recording", path)
	}
	if header.Version != FormatVersion {
		file.Close()
		return nil, fmt.Errorf("unsupported recording version %d", header.Version)
	}
	r.header = header
	return r, nil
}

// Header returns the recording header
func (r *Reader) Header() protocol.Header {
	return r.header
}

// Next returns the next frame and the events recorded since the previous one.
// It returns io.EOF once the recording is exhausted.
func (r *Reader) Next() (protocol.MatchState, []protocol.Event, error) {
	var events []protocol.Event
	for {
		msg, err := r.codec.Decode()
		if errors.Is(err, io.EOF) {
			return protocol.MatchState{}, events, io.EOF
		}
		if err != nil {
			return protocol.MatchState{}, events, fmt.Errorf("failed to read frame: %w", err)
		}

		switch payload := msg.Payload.(type) {
		case protocol.Event:
			events = append(events, payload)
		case protocol.MatchState:
			return payload, events, nil
		default:
			return protocol.MatchState{}, events, fmt.Errorf("unexpected message type %d", msg.Type)
		}
	}
}

// Close closes the file
func (r *Reader) Close() error {
	return r.file.Close()
}
