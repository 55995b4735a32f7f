package coaching

import (
	"errors"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
)

// ErrRecordNotFound is returned by repositories when a lookup matches nothing.
// Use cases translate it into a business error with the right code.
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicatePending is returned by CreateInvitation when the pending-pair
// unique index rejects the insert.
var ErrDuplicatePending = errors.New("pending invitation already exists")

var (
	ErrOnlyCoachesCanInvite = httperr.ErrPermissionDenied(
		"only_coaches_can_invite", "Only coaches can invite clients.")

	ErrInvalidCode = httperr.ErrNotFound(
		"invalid_code", "Invalid code. No user found.")

	ErrCannotInviteSelf = httperr.ErrInvalidOperation(
		"cannot_invite_self", "You cannot invite yourself.")

	ErrAlreadyInTeam = httperr.ErrConflict(
		"already_in_team", "This client is already part of your team.")

	ErrInvitationPending = httperr.ErrConflict(
		"invitation_already_pending", "An invitation is already pending for this client.")

	ErrInvitationNotFound = httperr.ErrNotFound(
		"invitation_not_found", "Invitation not found or already processed.")

	ErrClientNotFound = httperr.ErrNotFound(
		"client_not_found", "Client not found.")

	ErrCoachNotFound = httperr.ErrNotFound(
		"coach_not_found", "Coach not found.")

	ErrInvalidCoach = httperr.ErrInvalidArgument(
		"invalid_coach", "Invalid coach ID")

	ErrCannotAssignSelf = httperr.ErrConflict(
		"cannot_assign_self", "A user cannot be their own coach.")

	ErrCannotAddSelf = httperr.ErrInvalidOperation(
		"cannot_add_self", "You cannot add yourself.")

	ErrClientNotAssigned = httperr.ErrNotFound(
		"client_not_assigned", "Client not found or not assigned to this coach.")

	ErrNoCoachAssigned = httperr.ErrInvalidOperation(
		"no_coach_assigned", "You don't have a coach assigned")

	ErrForbidden = httperr.ErrPermissionDenied(
		"forbidden", "You are not allowed to perform this action.")
)
