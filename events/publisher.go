package events

import (
	"context"
	"errors"
)

const (
	RosterUpdated = "ROSTER_UPDATED"
	MatchUpdated  = "MATCH_UPDATED"
)

// Message is what subscribers receive, both over websocket and AMQP.
type Message struct {
	Type    string      `json:"type"`
	RoomID  string      `json:"room_id"`
	Payload interface{} `json:"payload,omitempty"`
}

// TournamentRoom names the room of a tournament's subscribers.
func TournamentRoom(tournamentID string) string {
	return "tournament_" + tournamentID
}

func NewTournamentMessage(eventType, tournamentID string, payload interface{}) Message {
	return Message{Type: eventType, RoomID: TournamentRoom(tournamentID), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// MultiPublisher delivers to every publisher and joins their errors.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, msg Message) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Message) error { return nil }

// NopPublisher discards every message.
func NopPublisher() Publisher { return nopPublisher{} }
