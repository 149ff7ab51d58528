package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrClubNameRequired      = errors.New("club name is required")
	ErrPlayerNameRequired    = errors.New("player first and last name are required")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrFixtureNeedsTwoClubs  = errors.New("a fixture needs at least two clubs")
	ErrFixtureMixedDivisions = errors.New("all clubs in a fixture must belong to the same division")
	ErrFixtureNoKickoffTimes = errors.New("at least one series kickoff time is required")
	ErrFixtureEmpty          = errors.New("fixture contains no matches to commit")
	ErrMatchScoreNegative    = errors.New("match scores cannot be negative")
	ErrCulpritNotInMatch     = errors.New("culprit club is not part of the match")
	ErrTransferSameClub      = errors.New("player already belongs to the destination club")

	// Conflicts
	ErrClubNameConflict  = errors.New("club name is already in use")
	ErrUserEmailConflict = errors.New("email address is already in use")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors
	ErrClubNotFound   = errors.New("club not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrClubInUse      = errors.New("club is referenced by matches or players and cannot be deleted")
)
