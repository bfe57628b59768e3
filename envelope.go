package step

// Envelope is a mailbox item. Its payload is opaque to the runtime: the
// actor-model layer above (behaviors, actor references, supervision) is an
// external collaborator and out of scope here; the runtime only ever moves
// Envelope values between Enqueue and DequeueBlocking without inspecting
// Payload.
type Envelope struct {
	Payload any
}
