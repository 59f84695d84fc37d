package protocol

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Codec reads and writes gob-framed messages
type Codec struct {
	enc *gob.Encoder
	dec *gob.Decoder
}

// NewEncoder creates an encoder-only codec
func NewEncoder(w io.Writer) *Codec {
	return &Codec{enc: gob.NewEncoder(w)}
}

// NewDecoder creates a decoder-only codec
func NewDecoder(r io.Reader) *Codec {
	return &Codec{dec: gob.NewDecoder(r)}
}

// Encode writes a message
func (c *Codec) Encode(msg *Message) error {
	if c.enc == nil {
		return fmt.Errorf("codec has no encoder")
	}
	return c.enc.Encode(msg)
}

// EncodeState writes a MsgMatchState message
func (c *Codec) EncodeState(state MatchState) error {
	return c.Encode(&Message{Type: MsgMatchState, Payload: state})
}

// EncodeEvent writes a MsgEvent message
func (c *Codec) EncodeEvent(ev Event) error {
	return c.Encode(&Message{Type: MsgEvent, Payload: ev})
}

// Decode reads a message. io.EOF is returned unwrapped at end of stream.
func (c *Codec) Decode() (*Message, error) {
	if c.dec == nil {
		return nil, fmt.Errorf("codec has no decoder")
	}
	var msg Message
	if err := c.dec.Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
