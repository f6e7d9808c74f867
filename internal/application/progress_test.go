package application

import (
	"testing"
)

func TestChannelSink_DeliversMessagesInOrder(t *testing.T) {
	sink := NewChannelSink(4)
	sink.Progress("one")
	sink.Progress("two")
	sink.Close()

	var got []string
	for m := range sink.Messages() {
		got = append(got, m)
	}

	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("expected [one two], got %v", got)
	}
}

func TestChannelSink_DropsWhenBufferFull(t *testing.T) {
	sink := NewChannelSink(2)
	sink.Progress("one")
	sink.Progress("two")
	sink.Progress("dropped") // must not block
	sink.Close()

	var got []string
	for m := range sink.Messages() {
		got = append(got, m)
	}

	if len(got) != 2 {
		t.Errorf("expected the overflow message to be dropped, got %v", got)
	}
}

func TestChannelSink_IgnoresProgressAfterClose(t *testing.T) {
	sink := NewChannelSink(4)
	sink.Close()
	sink.Progress("late") // must not panic on the closed channel
	sink.Close()          // closing twice must be safe

	if _, ok := <-sink.Messages(); ok {
		t.Error("expected no messages after close")
	}
}
