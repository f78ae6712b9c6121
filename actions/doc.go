// Package actions implements the operations the presentation layer invokes
// to load catalog data and manage the user's session.
//
// Every operation issues its request through an api.Requester, then commits
// the result to a state.Store. Operations never return data; callers read
// the store. Chained operations (login refreshing favorites, for example)
// are invoked and awaited explicitly; a failure in the chained step is
// returned without undoing the writes already made.
//
// # Usage
//
//	store := state.New()
//	a := actions.New(client, store, tokens, nav.NewLogRedirector(logger), logger)
//
//	if err := a.FetchFilms(ctx); err != nil {
//		a.ReportError(err)
//	}
//	films := store.Films()
//
// # Concurrency
//
// Operations are safe to run from multiple goroutines. Writes to the same
// slice are last-write-wins: whichever response arrives last is kept.
package actions
