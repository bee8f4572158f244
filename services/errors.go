package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Roster
	ErrDuplicateMembership = errors.New("team is already in the tournament")
	ErrMembershipNotFound  = errors.New("team is not in the tournament")
	ErrFixturesExist       = errors.New("tournament already has matches")

	// Ошибки, специфичные для сущностей
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrUserNotFound       = errors.New("user not found")

	// Ошибки конфликтов
	ErrTeamNameConflict       = errors.New("a team with this name already exists for the college")
	ErrTeamInUse              = errors.New("team has recorded matches and cannot be deleted")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrUserEmailConflict      = errors.New("email address is already in use")

	// Ошибки аутентификации
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAuthRequired       = errors.New("authentication required")

	ErrUploadUnavailable = errors.New("file uploads are not configured")
)
