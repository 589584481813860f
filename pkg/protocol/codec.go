package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrInvalidMessage is returned for frames that are not a channel message.
var ErrInvalidMessage = errors.New("invalid message format")

// Codec turns messages into WebSocket frames and back.
type Codec interface {
	Name() string
	// Binary reports whether frames are sent as binary WebSocket messages.
	Binary() bool
	Encode(msg *Message) ([]byte, error)
	Decode(data []byte) (*Message, error)
}

// objectCodec frames a message as a single object.
type objectCodec struct {
	name      string
	binary    bool
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func (c objectCodec) Name() string { return c.name }
func (c objectCodec) Binary() bool { return c.binary }

func (c objectCodec) Encode(msg *Message) ([]byte, error) {
	return c.marshal(msg)
}

func (c objectCodec) Decode(data []byte) (*Message, error) {
	var msg Message
	if err := c.unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if msg.Payload == nil {
		msg.Payload = map[string]any{}
	}
	return &msg, nil
}

// NewJSONCodec frames messages as JSON objects.
func NewJSONCodec() Codec {
	return objectCodec{name: "json", marshal: json.Marshal, unmarshal: json.Unmarshal}
}

// NewMsgPackCodec frames messages as MessagePack maps in binary frames.
func NewMsgPackCodec() Codec {
	return objectCodec{name: "msgpack", binary: true, marshal: msgpack.Marshal, unmarshal: msgpack.Unmarshal}
}

// phoenixCodec frames a message as [join_ref, ref, topic, event, payload].
type phoenixCodec struct{}

// NewPhoenixCodec returns the codec the browser client speaks.
func NewPhoenixCodec() Codec {
	return phoenixCodec{}
}

func (phoenixCodec) Name() string { return "phoenix" }
func (phoenixCodec) Binary() bool { return false }

func (phoenixCodec) Encode(msg *Message) ([]byte, error) {
	return json.Marshal([5]any{nullable(msg.JoinRef), nullable(msg.Ref), msg.Topic, msg.Event, msg.Payload})
}

func (phoenixCodec) Decode(data []byte) (*Message, error) {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if len(tuple) != 5 {
		return nil, fmt.Errorf("%w: %d elements", ErrInvalidMessage, len(tuple))
	}

	msg := &Message{JoinRef: optionalString(tuple[0]), Ref: optionalString(tuple[1])}
	if err := json.Unmarshal(tuple[2], &msg.Topic); err != nil {
		return nil, fmt.Errorf("%w: topic: %v", ErrInvalidMessage, err)
	}
	if err := json.Unmarshal(tuple[3], &msg.Event); err != nil {
		return nil, fmt.Errorf("%w: event: %v", ErrInvalidMessage, err)
	}
	// A null or non-object payload decodes as empty.
	if err := json.Unmarshal(tuple[4], &msg.Payload); err != nil || msg.Payload == nil {
		msg.Payload = map[string]any{}
	}
	return msg, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// optionalString decodes a string element, treating null and other types
// as absent.
func optionalString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// CodecRegistry picks a codec from the "vsn" query parameter of the
// socket URL.
type CodecRegistry struct {
	fallback Codec
	byName   map[string]Codec
}

// NewCodecRegistry serves fallback for unknown versions and each of
// others under its name.
func NewCodecRegistry(fallback Codec, others ...Codec) *CodecRegistry {
	r := &CodecRegistry{fallback: fallback, byName: map[string]Codec{fallback.Name(): fallback}}
	for _, c := range others {
		r.byName[c.Name()] = c
	}
	return r
}

// Default returns the fallback codec.
func (r *CodecRegistry) Default() Codec {
	return r.fallback
}

// ForVersion returns the codec named vsn. Phoenix clients send a version
// number such as "2.0.0", which selects the fallback.
func (r *CodecRegistry) ForVersion(vsn string) Codec {
	if c, ok := r.byName[vsn]; ok {
		return c
	}
	return r.fallback
}

// DefaultCodecRegistry falls back to the Phoenix codec and also offers
// "json" and "msgpack".
var DefaultCodecRegistry = NewCodecRegistry(NewPhoenixCodec(), NewJSONCodec(), NewMsgPackCodec())
