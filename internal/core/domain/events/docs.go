// Package events builds the envelopes emitted after a transition has been
// accepted. The engines never emit events themselves: command handlers call
// the Factory with the new snapshot and store the result in the outbox within
// the same transaction.
//
//	event, err := factory.MixOrderTransitioned(events.MixOrderStarted, order, events.Metadata{})
//	if err != nil {
//	    return err
//	}
//	err = uow.Outbox().Append(ctx, event)
package events
