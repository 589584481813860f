package protocol

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPhoenixCodec_Decode(t *testing.T) {
	codec := NewPhoenixCodec()

	msg, err := codec.Decode([]byte(`["1","2","lv:abc","scroll",{"y":120}]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := &Message{
		JoinRef: "1",
		Ref:     "2",
		Topic:   "lv:abc",
		Event:   "scroll",
		Payload: map[string]any{"y": float64(120)},
	}
	if diff := cmp.Diff(want, msg); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestPhoenixCodec_NullPayload(t *testing.T) {
	for _, in := range []string{
		`[null,null,"lv:x","scroll",null]`,
		`[null,null,"lv:x","scroll","not an object"]`,
	} {
		msg, err := NewPhoenixCodec().Decode([]byte(in))
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", in, err)
		}
		if msg.Payload == nil || len(msg.Payload) != 0 {
			t.Errorf("Decode(%s) payload = %v, want empty map", in, msg.Payload)
		}
		if msg.JoinRef != "" || msg.Ref != "" {
			t.Errorf("null refs decoded as %q/%q", msg.JoinRef, msg.Ref)
		}
	}
}

func TestPhoenixCodec_DecodeInvalid(t *testing.T) {
	codec := NewPhoenixCodec()

	inputs := []string{
		``,
		`{}`,
		`[]`,
		`[null,"1","topic","event"]`,
		`[null,"1",5,"event",{}]`,
	}
	for _, in := range inputs {
		if _, err := codec.Decode([]byte(in)); !errors.Is(err, ErrInvalidMessage) {
			t.Errorf("Decode(%q) = %v, want ErrInvalidMessage", in, err)
		}
	}
}

func TestPhoenixCodec_EncodeNullRefs(t *testing.T) {
	codec := NewPhoenixCodec()

	out, err := codec.Encode(&Message{Topic: "lv:abc", Event: "woke", Payload: map[string]any{}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got, want := string(out), `[null,null,"lv:abc","woke",{}]`; got != want {
		t.Errorf("Encode() = %s, want %s", got, want)
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	in := OkReply("7", "lv:abc", map[string]any{"html": "<main></main>"}).WithJoinRef("1")

	for _, codec := range []Codec{NewJSONCodec(), NewMsgPackCodec(), NewPhoenixCodec()} {
		t.Run(codec.Name(), func(t *testing.T) {
			data, err := codec.Encode(in)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			out, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if diff := cmp.Diff(in, out); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplyStatus(t *testing.T) {
	if got := OkReply("1", "lv:/", nil).Status(); got != StatusOK {
		t.Errorf("OkReply status = %q", got)
	}
	if got := ErrorReply("1", "lv:/", "boom").Status(); got != StatusError {
		t.Errorf("ErrorReply status = %q", got)
	}
	if got := EventMessage("lv:/", "scroll", nil).Status(); got != "" {
		t.Errorf("event status = %q, want empty", got)
	}
}

func TestCodecRegistry_ForVersion(t *testing.T) {
	r := DefaultCodecRegistry

	tests := []struct {
		vsn        string
		wantName   string
		wantBinary bool
	}{
		{"", "phoenix", false},
		{"2.0.0", "phoenix", false},
		{"json", "json", false},
		{"msgpack", "msgpack", true},
	}
	for _, tt := range tests {
		c := r.ForVersion(tt.vsn)
		if c.Name() != tt.wantName || c.Binary() != tt.wantBinary {
			t.Errorf("ForVersion(%q) = %s (binary=%v), want %s (binary=%v)",
				tt.vsn, c.Name(), c.Binary(), tt.wantName, tt.wantBinary)
		}
	}

	if got := r.ForVersion("phoenix"); got != r.Default() {
		t.Errorf("ForVersion(phoenix) = %s, want the default codec", got.Name())
	}
}

// FuzzPhoenixCodec checks that anything the codec accepts survives a round trip.
func FuzzPhoenixCodec(f *testing.F) {
	f.Add([]byte(`[null,"1","lv:abc","scroll",{}]`))
	f.Add([]byte(`["jr","1","topic","event",{"k":"v"}]`))
	f.Add([]byte(`[null,null,"t","e",null]`))
	f.Add([]byte(`[1,2,3,4,5]`))
	f.Add([]byte(`{malformed`))

	codec := NewPhoenixCodec()

	f.Fuzz(func(t *testing.T, data []byte) {
		msg, err := codec.Decode(data)
		if err != nil {
			return
		}
		out, err := codec.Encode(msg)
		if err != nil {
			return
		}
		msg2, err := codec.Decode(out)
		if err != nil {
			t.Fatalf("failed to decode encoded message: %v", err)
		}
		if msg.Ref != msg2.Ref || msg.JoinRef != msg2.JoinRef || msg.Topic != msg2.Topic || msg.Event != msg2.Event {
			t.Errorf("roundtrip mismatch: %+v != %+v", msg, msg2)
		}
	})
}
