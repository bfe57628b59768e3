package step

// ActorLoop is the entry closure of an execution context, supplied by the
// collaborator actor-model layer (behavior definitions, actor references,
// supervision, all out of scope here). A loop typically looks like:
//
//	func(ctx *ExecContext) error {
//		for {
//			env, err := mailbox.DequeueBlocking(ctx, 0)
//			if err != nil {
//				return err
//			}
//			dispatch(env.Payload)
//		}
//	}
//
// The loop runs straight-line between suspensions: it may call
// Mailbox.DequeueBlocking or FutureSlot.Await (the only two suspension
// points), but must never suspend any other way. A nil error return
// means the context terminated cleanly; a non-nil error (typically
// ErrMailboxClosed) means it terminated because its mailbox was closed out
// from under it.
type ActorLoop func(ctx *ExecContext) error
