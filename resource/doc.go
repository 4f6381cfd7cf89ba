// Package resource provides handle tables for live, call-scoped values.
//
// A Table maps small integer handles to Go values. The deparse arena pool
// uses one to track every open scope, so a scope can be looked up by the
// handle it was entered with and the number of live scopes is observable:
//
//	table := resource.NewTable[*Scope]()
//	h := table.Insert(scope)
//	s, ok := table.Get(h)
//	table.Remove(h)
//
// Handle 0 is never issued. Released handles are reused most-recent first.
//
// # Observers
//
// Observers are notified synchronously on insert and remove:
//
//	table.Subscribe(resource.ObserverFunc[*Scope](func(e resource.Event[*Scope]) {
//		log.Printf("scope %d %s", e.Handle, e.Type)
//	}))
//
// Values implementing Dropper have Drop called when they are removed or
// when the table is closed.
package resource
