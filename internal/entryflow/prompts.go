package entryflow

const (
	replyNoActiveStep = "No active step. Use the menu actions to start something."

	promptName        = "New customer\n\nStep 1/6 - send the full name:"
	promptPhone       = "Step 2/6 - send the phone number (or 'skip'):"
	promptEmail       = "Step 3/6 - send the email (or 'skip'):"
	promptSource      = "Step 4/6 - send the source (Instagram, website, ...) or 'skip':"
	promptRequestType = "Step 5/6 - send the request type (quote, info, booking) or 'skip':"
	promptDestination = "Step 6/6 - send the destination (or 'skip'):"

	promptNameRequired = "The name is required. Send the full name:"

	promptFollowUpKind = "Follow-up type: reply 'date' for a precise date, or 'before' to count days before a reference date."
	promptFollowUpDate = "Send the follow-up date (DD/MM/YYYY):"
	promptFollowUpDays = "Send the number of days before the reference date:"
	promptFollowUpRef  = "Send the reference date (DD/MM/YYYY):"

	promptSearch    = "Send the name, phone or email to search for:"
	promptAgentID   = "Send the external ID of the new admin:"
	promptAgentName = "Send the new admin's name (or 'skip'):"

	replyInvalidDate   = "Invalid format, use DD/MM/YYYY"
	replyInvalidNumber = "Send a valid whole number"
	replyInvalidID     = "Invalid ID, send a numeric identity"
	replyNoResults     = "No customer found."
	replyCancelled     = "Entry cancelled, back to the main menu."
)
