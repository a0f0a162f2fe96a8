// ttcli is a small command line front end for the table tennis API:
// list leagues and events, look up players and odds, and inspect the
// current rate limit state.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spinshot/tabletennis-client/pkg/logging"
	"github.com/spinshot/tabletennis-client/pkg/models"
	"github.com/spinshot/tabletennis-client/pkg/tabletennis"
)

var (
	flagCC       string
	flagLeagueID string
	flagPage     int
	flagPerPage  int
	flagAll      bool
	flagSource   string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ttcli",
		Short:         "Query the B365 table tennis API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.Config{
				Level:  logging.LogLevel(viper.GetString("log_level")),
				Pretty: true,
			})
		},
	}

	viper.SetEnvPrefix("TTAPI")
	viper.AutomaticEnv()
	viper.SetDefault("log_level", "warn")

	root.AddCommand(leaguesCmd(), eventsCmd(), playersCmd(), oddsCmd(), rateLimitCmd())
	return root
}

// newAPI builds the API facade from TTAPI_TOKEN / TTAPI_BASE_URL.
func newAPI() (*tabletennis.API, error) {
	token := viper.GetString("token")
	if token == "" {
		return nil, fmt.Errorf("TTAPI_TOKEN is not set")
	}

	opts := []tabletennis.Option{}
	if baseURL := viper.GetString("base_url"); baseURL != "" {
		opts = append(opts, tabletennis.WithBaseURL(baseURL))
	}
	return tabletennis.New(token, opts...)
}

func leaguesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leagues",
		Short: "List table tennis leagues",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPI()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			if flagAll {
				leagues, err := api.Leagues.ListAll(ctx, tabletennis.LeagueAggregateOptions{CC: flagCC})
				if err != nil {
					return err
				}
				for _, l := range leagues {
					fmt.Printf("%-8s %-40s %s\n", l.ID, l.Name, l.CC)
				}
				return nil
			}

			page, err := api.Leagues.List(ctx, tabletennis.LeagueListOptions{
				CC: flagCC, Page: flagPage, PerPage: flagPerPage,
			})
			if err != nil {
				return err
			}
			for _, l := range page.Results {
				fmt.Printf("%-8s %-40s %s\n", l.ID, l.Name, l.CC)
			}
			if page.Pager != nil {
				fmt.Printf("\npage %d, %d total\n", page.Pager.Page.Int(), page.Pager.Total.Int())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagCC, "cc", "", "country code filter")
	cmd.Flags().IntVar(&flagPage, "page", 0, "page number")
	cmd.Flags().IntVar(&flagPerPage, "per-page", 0, "items per page")
	cmd.Flags().BoolVar(&flagAll, "all", false, "fetch every page")
	return cmd
}

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "events [inplay|upcoming|ended]",
		Short:     "List events by status",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"inplay", "upcoming", "ended"},
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPI()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			opts := tabletennis.EventListOptions{
				LeagueID: flagLeagueID, Page: flagPage, PerPage: flagPerPage,
			}

			var page *models.Page[models.EventSummary]
			switch args[0] {
			case "inplay":
				page, err = api.Events.InPlay(ctx, opts)
			case "upcoming":
				page, err = api.Events.Upcoming(ctx, opts)
			case "ended":
				page, err = api.Events.Ended(ctx, opts)
			default:
				return fmt.Errorf("unknown event status %q", args[0])
			}
			if err != nil {
				return err
			}
			for _, e := range page.Results {
				score := e.Score
				if score == "" {
					score = "-"
				}
				fmt.Printf("%-10s %-20s %-25s vs %-25s %s\n",
					e.ID, e.StartTime().Format("2006-01-02 15:04"), e.Home.Name, e.Away.Name, score)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagLeagueID, "league", "", "league id filter")
	cmd.Flags().IntVar(&flagPage, "page", 0, "page number")
	cmd.Flags().IntVar(&flagPerPage, "per-page", 0, "items per page")
	return cmd
}

func playersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players [search-query]",
		Short: "List or search players",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPI()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			if len(args) == 1 {
				players, err := api.Players.Search(ctx, args[0], tabletennis.PlayerSearchOptions{CC: flagCC})
				if err != nil {
					return err
				}
				for _, p := range players {
					fmt.Printf("%-8s %-35s %s\n", p.ID, p.Name, p.CC)
				}
				return nil
			}

			page, err := api.Players.List(ctx, tabletennis.PlayerListOptions{
				CC: flagCC, Page: flagPage, PerPage: flagPerPage,
			})
			if err != nil {
				return err
			}
			for _, p := range page.Results {
				kind := "singles"
				if p.IsDoublesPair() {
					kind = "doubles"
				}
				fmt.Printf("%-8s %-35s %-3s %s\n", p.ID, p.Name, p.CC, kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagCC, "cc", "", "country code filter")
	cmd.Flags().IntVar(&flagPage, "page", 0, "page number")
	cmd.Flags().IntVar(&flagPerPage, "per-page", 0, "items per page")
	return cmd
}

func oddsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "odds <event-id>",
		Short: "Show odds for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPI()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			var raw json.RawMessage
			if flagSource != "" {
				raw, err = api.Odds.Detailed(ctx, args[0], flagSource)
			} else {
				raw, err = api.Odds.Summary(ctx, args[0])
			}
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, raw, "", "  "); err != nil {
				fmt.Println(string(raw))
				return nil
			}
			fmt.Println(pretty.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&flagSource, "source", "", "bookmaker for detailed odds history (e.g. bet365)")
	return cmd
}

func rateLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ratelimit",
		Short: "Show current rate limit state after a probe request",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPI()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			// Any cheap request refreshes the quota headers.
			if _, err := api.Leagues.List(ctx, tabletennis.LeagueListOptions{PerPage: 1}); err != nil {
				return err
			}

			state := api.RateLimit()
			if !state.Known() {
				fmt.Println("rate limit state unknown (no quota headers seen)")
				return nil
			}
			fmt.Printf("limit:     %d\n", state.Limit)
			fmt.Printf("remaining: %d\n", state.Remaining)
			fmt.Printf("resets in: %s\n", state.TimeUntilReset().Round(time.Second))
			return nil
		},
	}
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}
