// Package api provides a client for the What-to-Watch REST API.
//
// The client is a thin pass-through: it encodes request bodies as JSON,
// attaches the stored authentication token, decodes JSON responses and turns
// every non-2xx response or transport failure into a *RequestError. It does
// not retry and applies no timeout beyond the one configured on the
// underlying http.Client.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	tokens := token.NewMemoryStore()
//	client, err := api.NewClient(
//		"https://wtw.example.com",
//		tokens,
//		logger,
//		api.WithTimeout(5*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	films, err := api.Get[[]api.FilmPreview](ctx, client, api.RouteFilms)
//
// # Error Handling
//
// Failures are reported as *RequestError. StatusCode is zero when the server
// could not be reached. The sentinels ErrNetwork, ErrUnauthorized and
// ErrNotFound can be matched with errors.Is:
//
//	if errors.Is(err, api.ErrUnauthorized) {
//		// token missing or expired
//	}
package api
