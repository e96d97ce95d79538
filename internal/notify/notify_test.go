package notify

import "testing"

var (
	_ Notifier = Func(nil)
	_ Notifier = Log{}
	_ Notifier = Discard{}
)

func TestFuncForwards(t *testing.T) {
	var got Alert
	n := Func(func(a Alert) { got = a })
	n.Notify(Alert{Action: "Send message", Message: "Failed to send message. Please try again."})

	if got.Action != "Send message" {
		t.Errorf("unexpected action: %q", got.Action)
	}
	if got.Message == "" {
		t.Error("expected message to be forwarded")
	}
}

func TestLogAndDiscardAccept(t *testing.T) {
	// Neither implementation may reject or panic on an alert.
	Log{}.Notify(Alert{Action: "Apply code", Message: "Failed to apply code"})
	Discard{}.Notify(Alert{})
}
