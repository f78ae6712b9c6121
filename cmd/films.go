package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wtw/api"
	"github.com/s0up4200/wtw/filter"
	"github.com/s0up4200/wtw/state"
)

var (
	filterExpr string
	preset     string
	genre      string
)

func init() {
	filmsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	filmsCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	filmsCmd.Flags().StringVarP(&genre, "genre", "g", state.AllGenres, "only list films of this genre")

	rootCmd.AddCommand(homeCmd, filmsCmd, presetsCmd, genresCmd, promoCmd, filmCmd, favoritesCmd, favoriteCmd)
}

// homeCmd represents the home command
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the promoted film, the genre tabs and your session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(2)
		defer cancel()

		if err := acts.LoadMain(ctx); err != nil {
			return report(err)
		}

		if promo, ok := store.Promo(); ok {
			fmt.Printf("Featured: %s (%d) - %s\n", promo.Name, promo.Released, promo.Genre)
		}

		fmt.Printf("\nCatalog: %d films\n", len(store.Films()))
		for _, g := range store.Genres() {
			fmt.Printf("• %s (%d)\n", g, len(store.FilmsByGenre(g)))
		}

		fmt.Println()
		if store.AuthorizationStatus() == state.AuthAuthenticated {
			fmt.Printf("Signed in, %d films in your list\n", len(store.Favorites()))
		} else {
			fmt.Println("Not signed in")
		}
		return nil
	},
}

// presetsCmd represents the presets command
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the filter presets from the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := filters.ListFilters()
		if len(names) == 0 {
			fmt.Println("No presets configured.")
			return nil
		}

		for _, name := range names {
			f, _ := filters.GetFilter(name)
			fmt.Printf("• %s: %s\n", name, f.Expression())
		}
		return nil
	},
}

// filmsCmd represents the films command
var filmsCmd = &cobra.Command{
	Use:   "films",
	Short: "List films in the catalog",
	Long: `List films in the catalog, optionally narrowed to one genre and to the
films matching a filter expression or a preset from the config file.`,
	Args: cobra.NoArgs,
	RunE: runFilms,
}

func runFilms(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(1)
	defer cancel()

	if err := acts.FetchFilms(ctx); err != nil {
		return report(err)
	}

	films := store.FilmsByGenre(genre)

	var err error
	switch {
	case filterExpr != "":
		films, err = filter.Apply(ctx, filterExpr, films)
	case preset != "":
		films, err = filters.EvaluateFilter(ctx, preset, films)
	case cfg.Filter.Default != "":
		films, err = filter.Apply(ctx, cfg.Filter.Default, films)
	}
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	if len(films) == 0 {
		fmt.Println("No films found matching the filter criteria.")
		return nil
	}

	fmt.Printf("\nFound %d films:\n", len(films))
	fmt.Println(strings.Repeat("-", 80))
	for _, film := range films {
		printPreview(film)
	}

	return nil
}

// genresCmd represents the genres command
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genre tabs of the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(1)
		defer cancel()

		if err := acts.FetchFilms(ctx); err != nil {
			return report(err)
		}

		for _, g := range store.Genres() {
			fmt.Printf("• %s (%d)\n", g, len(store.FilmsByGenre(g)))
		}
		return nil
	},
}

// promoCmd represents the promo command
var promoCmd = &cobra.Command{
	Use:   "promo",
	Short: "Show the promoted film",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(1)
		defer cancel()

		if err := acts.FetchFilmPromo(ctx); err != nil {
			return report(err)
		}

		promo, _ := store.Promo()
		fmt.Printf("%s (%d)\n", promo.Name, promo.Released)
		fmt.Printf("  Genre: %s\n", promo.Genre)
		if promo.IsFavorite {
			fmt.Println("  [IN MY LIST]")
		}
		return nil
	},
}

// filmCmd represents the film command
var filmCmd = &cobra.Command{
	Use:   "film <id>",
	Short: "Show a film page with reviews and similar films",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilm,
}

func runFilm(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(3)
	defer cancel()

	if err := acts.LoadFilmPage(ctx, args[0]); err != nil {
		return report(err)
	}

	film, _ := store.Film()
	fmt.Printf("%s (%d)\n", film.Name, film.Released)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Genre:    %s\n", film.Genre)
	fmt.Printf("Rating:   %.1f %s (%d ratings)\n", film.Rating, film.RatingLevel(), film.ScoresCount)
	fmt.Printf("Run time: %s\n", film.FormattedRunTime())
	fmt.Printf("Director: %s\n", film.Director)
	if len(film.Starring) > 0 {
		fmt.Printf("Starring: %s\n", strings.Join(film.Starring, ", "))
	}
	if film.IsFavorite {
		fmt.Println("[IN MY LIST]")
	}
	if film.Description != "" {
		fmt.Printf("\n%s\n", film.Description)
	}

	if comments := store.Comments(); len(comments) > 0 {
		fmt.Printf("\nReviews (%d):\n", len(comments))
		for _, c := range comments {
			fmt.Printf("• %s, %s: %.1f\n", c.User, c.Date.Format("January 2, 2006"), c.Rating)
			fmt.Printf("  %s\n", c.Comment)
		}
	}

	if similar := store.Similar(); len(similar) > 0 {
		fmt.Println("\nMore like this:")
		for _, s := range similar {
			printPreview(s)
		}
	}

	return nil
}

// favoritesCmd represents the favorites command
var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"mylist"},
	Short:   "List your favorite films",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(1)
		defer cancel()

		if err := acts.FetchFavoriteFilms(ctx); err != nil {
			return report(err)
		}

		printFavorites()
		return nil
	},
}

// favoriteCmd represents the favorite command
var favoriteCmd = &cobra.Command{
	Use:   "favorite <id> <0|1>",
	Short: "Add a film to (1) or remove it from (0) your favorites",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := parseFavoriteStatus(args[1])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(2)
		defer cancel()

		if err := acts.SetFavoriteFilm(ctx, args[0], status); err != nil {
			return report(err)
		}

		printFavorites()
		return nil
	},
}

func parseFavoriteStatus(arg string) (api.FavoriteStatus, error) {
	switch arg {
	case "0":
		return api.FavoriteRemove, nil
	case "1":
		return api.FavoriteAdd, nil
	default:
		return 0, fmt.Errorf("status must be 0 or 1, got %q", arg)
	}
}

func printPreview(film api.FilmPreview) {
	fmt.Printf("• [%s] %s", film.ID, film.Name)
	if film.Released != 0 {
		fmt.Printf(" (%d)", film.Released)
	}
	fmt.Printf(" - %s\n", film.Genre)
}

func printFavorites() {
	favorites := store.Favorites()
	if len(favorites) == 0 {
		fmt.Println("Your list is empty.")
		return
	}

	fmt.Printf("My list (%d):\n", len(favorites))
	for _, film := range favorites {
		fmt.Printf("• [%s] %s (%d) - %s\n", film.ID, film.Name, film.Released, film.Genre)
	}
}
