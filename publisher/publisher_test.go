package publisher

import (
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"artifactdev/smctemp/config"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type message struct {
	topic    string
	retained bool
	payload  string
}

// fakeClient records publishes. Methods not overridden panic through the
// nil embedded interface.
type fakeClient struct {
	mqtt.Client
	published    []message
	err          error
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.published = append(c.published, message{topic: topic, retained: retained, payload: payload.(string)})
	return &fakeToken{err: c.err}
}

func (c *fakeClient) Disconnect(quiesce uint) { c.disconnected = true }

func TestTopic(t *testing.T) {
	p := New(&fakeClient{}, "smctemp/studio")
	tests := map[string]string{
		"cpu":       "smctemp/studio/cpu",
		"fan0/rpm":  "smctemp/studio/fan0/rpm",
		"#KEY":      "smctemp/studio/_KEY",
		"key/ui8 ":  "smctemp/studio/key/ui8",
		"a+b":       "smctemp/studio/a_b",
		"fan0//rpm": "smctemp/studio/fan0/_/rpm",
	}
	for in, want := range tests {
		if got := p.Topic(in); got != want {
			t.Errorf("Topic(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPublish(t *testing.T) {
	c := &fakeClient{}
	p := New(c, "smctemp/studio")
	if err := p.Publish("cpu", "45.2"); err != nil {
		t.Fatalf("Publish err=%v", err)
	}
	if len(c.published) != 1 {
		t.Fatalf("expected 1 message, got %d", len(c.published))
	}
	m := c.published[0]
	if m.topic != "smctemp/studio/cpu" || m.payload != "45.2" || !m.retained {
		t.Fatalf("message = %+v", m)
	}
	p.Close()
	if !c.disconnected {
		t.Fatal("Close did not disconnect")
	}
}

func TestPublishError(t *testing.T) {
	boom := errors.New("broker gone")
	p := New(&fakeClient{err: boom}, "smctemp/studio")
	if err := p.Publish("cpu", "1"); !errors.Is(err, boom) {
		t.Fatalf("err=%v, want broker error", err)
	}
}

func TestConnectRequiresBroker(t *testing.T) {
	if _, err := Connect(config.Default(), "studio"); err == nil {
		t.Fatal("expected error without broker config")
	}
}
