package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubDeliversToRoomOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	inRoom := &Client{Hub: hub, Send: make(chan []byte, 1), Room: TournamentRoom("t1")}
	other := &Client{Hub: hub, Send: make(chan []byte, 1), Room: TournamentRoom("t2")}
	hub.Register <- inRoom
	hub.Register <- other
	waitFor(t, func() bool { return hub.RoomSize(inRoom.Room) == 1 && hub.RoomSize(other.Room) == 1 })

	msg := NewTournamentMessage(RosterUpdated, "t1", map[string]string{"team_id": "a"})
	if err := hub.Publish(ctx, msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case raw := <-inRoom.Send:
		var got Message
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != RosterUpdated || got.RoomID != "tournament_t1" {
			t.Errorf("got %+v", got)
		}
	default:
		t.Fatal("client in room received nothing")
	}

	select {
	case raw := <-other.Send:
		t.Fatalf("client in other room received %s", raw)
	default:
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	c := &Client{Hub: hub, Send: make(chan []byte, 1), Room: "r"}
	hub.Register <- c
	waitFor(t, func() bool { return hub.RoomSize("r") == 1 })

	hub.Unregister <- c
	waitFor(t, func() bool { return hub.RoomSize("r") == 0 })
	if _, ok := <-c.Send; ok {
		t.Error("send channel should be closed after unregister")
	}

	// Publishing to an empty room is a no-op.
	hub.BroadcastToRoom("r", Message{Type: MatchUpdated})
}

func TestHubStopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := &Client{Hub: hub, Send: make(chan []byte, 1), Room: "r"}
	hub.Register <- c
	waitFor(t, func() bool { return hub.RoomSize("r") == 1 })

	cancel()
	<-done
	if _, ok := <-c.Send; ok {
		t.Error("send channel should be closed when the hub stops")
	}
}

func TestHubJoinAndLeaveAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	c := &Client{Hub: hub, Send: make(chan []byte, 1), Room: "r"}
	if !hub.Join(c) {
		t.Fatal("Join should succeed while the hub runs")
	}
	cancel()
	<-hub.Done()

	finished := make(chan bool)
	go func() {
		hub.Leave(c)
		finished <- hub.Join(&Client{Hub: hub, Send: make(chan []byte, 1), Room: "r"})
	}()
	select {
	case joined := <-finished:
		if joined {
			t.Error("Join should report false after the hub stopped")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Leave or Join blocked after the hub stopped")
	}
}

type recordingPublisher struct {
	got []Message
	err error
}

func (r *recordingPublisher) Publish(_ context.Context, msg Message) error {
	r.got = append(r.got, msg)
	return r.err
}

func TestMultiPublisher(t *testing.T) {
	failing := &recordingPublisher{err: errors.New("broker down")}
	ok := &recordingPublisher{}
	m := MultiPublisher{failing, ok}

	err := m.Publish(context.Background(), NewTournamentMessage(MatchUpdated, "t", nil))
	if err == nil || !errors.Is(err, failing.err) {
		t.Fatalf("err = %v, want broker error", err)
	}
	if len(ok.got) != 1 || len(failing.got) != 1 {
		t.Errorf("every publisher should be called once: %d, %d", len(failing.got), len(ok.got))
	}
}

func TestRoutingKey(t *testing.T) {
	if got := RoutingKey(RosterUpdated); got != "tournament.roster_updated" {
		t.Errorf("RoutingKey = %q", got)
	}
}
