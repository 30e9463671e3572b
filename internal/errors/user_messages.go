package errors

// User-friendly error messages
const (
	MsgAuthenticationFailed = "Authentication failed. Please sign in and try again."
	MsgForbidden            = "You don't have permission to access this resource."
	MsgPropertyNotFound     = "Property not found."
	MsgVisitNotFound        = "Visit not found."
	MsgProposalNotFound     = "Proposal not found."
	MsgFavoriteNotFound     = "Favorite not found."
	MsgImageNotFound        = "Image not found."
	MsgUserNotFound         = "User not found."
	MsgInvalidCredentials   = "Invalid credentials."
	MsgAccountDeactivated   = "This account has been deactivated."
	MsgInvalidParameters    = "The provided parameters are invalid. Please check your input and try again."
	MsgDuplicateResource    = "This record already exists."
	MsgServiceUnavailable   = "We're unable to process this request right now. Please try again in a few minutes."
	MsgRateLimited          = "You're sending requests too quickly! Please wait a moment and try again."
	MsgInternalError        = "Something went wrong on our end. Please try again later."
)
