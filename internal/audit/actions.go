package audit

const (
	ActionInvitationCreated      = "invitation_created"
	ActionInvitationAccepted     = "invitation_accepted"
	ActionInvitationRejected     = "invitation_rejected"
	ActionInvitationAutoRejected = "invitation_auto_rejected"
	ActionInvitationDeleted      = "invitation_deleted"
	ActionCoachAssigned          = "coach_assigned"
	ActionCoachUnassigned        = "coach_unassigned"
	ActionSubscriptionExtended   = "subscription_extended"
	ActionAvatarUpdated          = "avatar_updated"

	EntityInvitation = "invitation"
	EntityUser       = "user"
)
