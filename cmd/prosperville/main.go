// Command prosperville runs the personal-finance life simulation, either
// as an interactive terminal game or as an HTTP API server.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/prosperville/internal/api"
	"github.com/talgya/prosperville/internal/catalog"
	"github.com/talgya/prosperville/internal/game"
	"github.com/talgya/prosperville/internal/results"
)

var (
	flagCatalog string
	flagDB      string
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "prosperville",
		Short: "A turn-based personal finance life simulation",
		Long: `Prosperville walks players from age 18 through retirement, one life
decision at a time: college, cars, houses, jobs and savings. Every choice
binds financial instruments whose cash flows are simulated biweekly, and
a brute-force AI plays along as the benchmark.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if flagVerbose {
				level = slog.LevelInfo
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	root.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "path to a YAML game design (default: built-in)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "path to a SQLite results archive (default: none)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log engine activity")

	root.AddCommand(playCmd(), serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	if flagCatalog != "" {
		return catalog.Load(flagCatalog)
	}
	return catalog.Default()
}

func openDB() (*results.DB, error) {
	if flagDB == "" {
		return nil, nil
	}
	return results.Open(flagDB)
}

func serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over an HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}
			srv := &api.Server{
				Catalog: cat,
				DB:      db,
				Port:    port,
				Logger:  slog.Default(),
			}
			return srv.Start()
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port")
	return cmd
}

func playCmd() *cobra.Command {
	var (
		players []string
		cash    float64
		seed    int64
		auto    bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			sess, err := game.New(cat, game.Config{
				PlayerNames: players,
				InitCash:    cash,
				Seed:        seed,
				Logger:      slog.Default(),
			})
			if err != nil {
				return err
			}
			if auto {
				return runAuto(sess, db)
			}
			return runTerminal(sess, db)
		},
	}
	cmd.Flags().StringSliceVar(&players, "players", []string{"Player 1"}, "player names")
	cmd.Flags().Float64Var(&cash, "cash", 0, "starting cash per player")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().BoolVar(&auto, "auto", false, "play the whole game automatically")
	return cmd
}

// runAuto plays a game without prompting: every choice event gets its
// first available option, and the game advances until it ends.
func runAuto(sess *game.Session, db *results.DB) error {
	for !sess.End {
		if evt := sess.CurrentEvent(); evt != nil && evt.HasOptions() && !sess.CurrentPlayer().IsSystem {
			avail := sess.OptionAvailability()
			for i := range evt.Options {
				if avail != nil && !avail[i] {
					continue
				}
				if err := sess.SetChoice(i); err == nil {
					break
				}
			}
		}
		sess.Next()
	}

	fmt.Println("=== Game over ===")
	printSummaries(sess)
	for pos, seat := range sess.Ranked {
		fmt.Printf("#%d %s\n", pos+1, sess.Players()[seat].Name)
	}
	if db != nil {
		if err := db.SaveGame(sess); err != nil {
			return fmt.Errorf("archive game: %w", err)
		}
		fmt.Println("game archived")
	}
	return nil
}

// runTerminal drives a session from stdin until the game ends or the
// player quits.
func runTerminal(sess *game.Session, db *results.DB) error {
	in := bufio.NewScanner(os.Stdin)

	for !sess.End {
		printSituation(sess)
		fmt.Print("> ")
		if !in.Scan() {
			return in.Err()
		}
		cmdline := strings.TrimSpace(in.Text())
		switch cmdline {
		case "n", "next", "":
			sess.Next()
		case "b", "back":
			if !sess.CanStepBack() {
				fmt.Println("cannot step back from here")
				continue
			}
			sess.Back()
		case "s", "summary":
			printSummaries(sess)
		case "t", "table":
			printChoiceTable(sess)
		case "q", "quit":
			return nil
		case "h", "help":
			fmt.Println("commands: <option number>, n(ext), b(ack), s(ummary), t(able), q(uit)")
		default:
			n, err := strconv.Atoi(cmdline)
			if err != nil {
				fmt.Println("unrecognized command, try 'help'")
				continue
			}
			if err := sess.SetChoice(n - 1); err != nil {
				fmt.Println(err)
			}
		}
	}

	fmt.Println("\n=== Game over ===")
	printSummaries(sess)
	for pos, seat := range sess.Ranked {
		fmt.Printf("#%d %s\n", pos+1, sess.Players()[seat].Name)
	}

	if db != nil {
		if err := db.SaveGame(sess); err != nil {
			return fmt.Errorf("archive game: %w", err)
		}
		fmt.Println("game archived")
	}
	return nil
}

func printSituation(sess *game.Session) {
	stp := sess.Timeline().Steps[sess.Step()]
	age := sess.Timeline().AgeAt(stp.PeriodFirst)
	fmt.Printf("\n[%s] turn %d, age %d — %s\n",
		sess.Catalog().Stages[sess.Stage()].Title, sess.Turn()+1, age, sess.CurrentPlayer().Name)

	evt := sess.CurrentEvent()
	if evt == nil {
		fmt.Println("Nothing happens. Press enter to continue.")
		return
	}
	fmt.Println(evt.Title)
	if evt.Desc != "" {
		fmt.Println(evt.Desc)
	}
	if !evt.HasOptions() {
		return
	}
	avail := sess.OptionAvailability()
	chosen, hasChoice := sess.CurrentPlayer().Choice(evt.Name)
	for i, opt := range evt.Options {
		marker := " "
		if hasChoice && i == chosen {
			marker = "*"
		}
		if avail != nil && !avail[i] {
			fmt.Printf(" %s %d. %s (unavailable)\n", marker, i+1, opt.Title)
			continue
		}
		fmt.Printf(" %s %d. %s\n", marker, i+1, opt.Title)
	}
}

func printSummaries(sess *game.Session) {
	for _, sum := range sess.Summaries() {
		status := ""
		if sum.Bankrupt {
			status = " (bankrupt)"
		}
		who := sum.Name
		if sum.IsAI {
			who += " [AI]"
		}
		fmt.Printf("%-16s%s score %.1f  wealth %s  debt %s  income %s/mo\n",
			who, status,
			sum.Score,
			money(sum.Wealth),
			money(sum.Debt),
			money(sum.Income))
	}
}

func printChoiceTable(sess *game.Session) {
	rows := sess.ChoiceTable(sess.CurrentPlayer())
	for _, row := range rows {
		if row.Choice == "" && row.Event == "" {
			continue
		}
		rnd := ""
		if row.Random {
			rnd = " (random)"
		}
		fmt.Printf("turn %2d  %-18s %s%s: %s\n", row.Turn, row.Stage, row.Event, rnd, row.Choice)
	}
}

func money(v float64) string {
	if v < 0 {
		return "-$" + humanize.CommafWithDigits(-v, 0)
	}
	return "$" + humanize.CommafWithDigits(v, 0)
}
