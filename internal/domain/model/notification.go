package model

// Notification is a non-chat payload pushed to a single recipient: the
// /notify administrative trigger and internal social events both produce
// these.
type Notification struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
