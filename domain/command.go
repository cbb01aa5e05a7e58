package domain

// PostMessageCommand is the acceptance intent crossing the transport
// boundary into the service layer.
type PostMessageCommand struct {
	SenderName string
	Text       string
}
