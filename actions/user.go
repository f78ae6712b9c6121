package actions

import (
	"context"
	"fmt"

	"github.com/s0up4200/wtw/api"
	"github.com/s0up4200/wtw/nav"
	"github.com/s0up4200/wtw/state"
)

// CheckAuth resolves the authorization status from the session check.
// Any failure means "not authenticated"; nothing is returned to the caller.
func (a *Actions) CheckAuth(ctx context.Context) {
	if err := a.api.Get(ctx, api.RouteLogin, nil); err != nil {
		a.logger.Debug().Err(err).Msg("Session check failed")
		a.store.SetAuthorizationStatus(state.AuthNotAuthenticated)
		return
	}

	a.store.SetAuthorizationStatus(state.AuthAuthenticated)

	if err := a.FetchFavoriteFilms(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to fetch favorites after session check")
	}
}

// Login signs in, persists the issued token, records the profile and
// redirects to the main route. The token is saved before favorites are
// refetched so that request carries it.
func (a *Actions) Login(ctx context.Context, auth api.AuthData) error {
	user, err := api.Post[api.UserData](ctx, a.api, api.RouteLogin, auth)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := a.tokens.Save(user.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	a.store.SetUser(api.UserData{
		Email:     auth.Login,
		AvatarURL: user.AvatarURL,
		Name:      user.Name,
	})
	a.store.SetAuthorizationStatus(state.AuthAuthenticated)

	a.logger.Info().Str("email", auth.Login).Msg("Logged in")

	favErr := a.FetchFavoriteFilms(ctx)
	a.redirector.RedirectTo(nav.RouteMain)
	if favErr != nil {
		return fmt.Errorf("logged in but %w", favErr)
	}
	return nil
}

// Logout ends the session, forgets the token and empties favorites
func (a *Actions) Logout(ctx context.Context) error {
	if err := a.api.Delete(ctx, api.RouteLogout); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	if err := a.tokens.Drop(); err != nil {
		return fmt.Errorf("failed to drop token: %w", err)
	}

	a.store.SetAuthorizationStatus(state.AuthNotAuthenticated)
	a.store.SetFavorites(nil)

	a.logger.Info().Msg("Logged out")
	return nil
}
