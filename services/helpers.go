package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/college-cricket/events"
	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/storage"
)

const maxUploadSize = 5 << 20

// storeUnavailable wraps an unexpected store failure so callers can match
// ErrStoreUnavailable while keeping the cause.
func storeUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", validationError("%s is required", field)
	}
	return value, nil
}

// trimOptional trims s and turns an empty result into nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// actorID returns the authenticated user's id for created_by columns.
func actorID(ctx context.Context) *string {
	if u := models.SessionUserFromContext(ctx); u != nil && u.ID != "" {
		id := u.ID
		return &id
	}
	return nil
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team == nil || team.LogoKey == nil || *team.LogoKey == "" || uploader == nil {
		return
	}
	if url := uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}

func populateTeamLogoURLs(teams []models.Team, uploader storage.FileUploader) {
	for i := range teams {
		populateTeamLogoURL(&teams[i], uploader)
	}
}

func populatePlayerImageURL(player *models.Player, uploader storage.FileUploader) {
	if player == nil || player.ImageKey == nil || *player.ImageKey == "" || uploader == nil {
		return
	}
	if url := uploader.GetPublicURL(*player.ImageKey); url != "" {
		player.ImageURL = &url
	}
}

func populatePlayerImageURLs(players []models.Player, uploader storage.FileUploader) {
	for i := range players {
		populatePlayerImageURL(&players[i], uploader)
	}
}

// publish delivers an event. Delivery failures are logged only: the change
// they describe is already committed.
func publish(ctx context.Context, publisher events.Publisher, msg events.Message) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(context.WithoutCancel(ctx), msg); err != nil {
		slog.Warn("failed to publish event",
			slog.String("type", msg.Type),
			slog.String("room", msg.RoomID),
			slog.Any("error", err),
		)
	}
}
