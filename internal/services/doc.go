// Package services defines the shared error taxonomy for organize and undo
// operations. Sentinel markers let callers classify failures with errors.Is
// while Wrap attaches stage and operation context to the message.
package services
