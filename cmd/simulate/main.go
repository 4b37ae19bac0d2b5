package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"uno-server/internal/config"
	"uno-server/internal/rng"
	"uno-server/pkg/bot"
	"uno-server/pkg/playable/uno"
)

const maxMoves = 10000

var (
	games    = flag.Int("games", 1, "the number of games to play")
	players  = flag.Int("players", 0, "the number of players (defaults to the configuration)")
	handSize = flag.Int("hand", 0, "the starting hand size (defaults to the configuration)")
	seed     = flag.Int64("seed", 0, "seed for shuffling, zero picks one at random")
	strategy = flag.String("strategy", "naive", "the bot strategy: naive or random")
	script   = flag.String("script", "", "a Lua file defining choose(hand, active), overrides -strategy")
	quiet    = flag.Bool("quiet", false, "only print the tally")
)

func main() {
	flag.Parse()

	cfg := config.Instance()
	if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(lvl)
	}

	if *players == 0 {
		*players = cfg.Game.Players
	}

	if *handSize == 0 {
		*handSize = cfg.Game.StartingHandSize
	}

	if *seed == 0 {
		*seed = cfg.Game.Seed
	}

	p := newPainter(term.IsTerminal(int(os.Stdout.Fd())))
	out := color.Output

	generator := rng.NewSeeded(*seed)
	s, err := bot.ByName(*strategy, generator)
	if err != nil {
		logrus.WithError(err).Fatal("could not pick strategy")
	}

	if *script != "" {
		luaStrategy, err := bot.LoadScript(*script)
		if err != nil {
			logrus.WithError(err).Fatal("could not load script")
		}
		defer luaStrategy.Close()

		s = luaStrategy
	}

	logrus.WithFields(logrus.Fields{
		"seed":     generator.Seed(),
		"games":    *games,
		"players":  *players,
		"handSize": *handSize,
	}).Info("starting simulation")

	wins := make(map[int64]int)
	unfinished := 0
	for i := 0; i < *games; i++ {
		game := uno.NewGame(uno.Options{
			Logger:    logrus.StandardLogger(),
			Generator: generator,
		})

		if err := game.StartGame(*players, *handSize); err != nil {
			logrus.WithError(err).Fatal("could not start game")
		}

		if !*quiet {
			fmt.Fprintf(out, "=== game %d ===\n", i+1)
		}

		winner, err := playGame(game, s, func(line string) {
			if !*quiet {
				fmt.Fprintln(out, line)
			}
		}, p)
		if err != nil {
			logrus.WithError(err).Fatal("could not play game")
		}

		if winner == nil {
			unfinished++
			continue
		}

		wins[winner.PlayerID]++
	}

	ids := make([]int64, 0, len(wins))
	for id := range wins {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fmt.Fprintln(out, "=== tally ===")
	for _, id := range ids {
		fmt.Fprintf(out, "Player %d: %d\n", id, wins[id])
	}

	if unfinished > 0 {
		fmt.Fprintf(out, "unfinished: %d\n", unfinished)
	}
}

// playGame plays the game to the end, writing every log message
func playGame(game *uno.Game, s bot.Strategy, write func(string), p *painter) (*uno.Player, error) {
	flush := func() {
		for {
			select {
			case msgs := <-game.LogChan():
				for _, msg := range msgs {
					write(p.logMessage(msg))
				}
			default:
				return
			}
		}
	}

	flush()
	for moves := 0; game.IsGameOngoing(); moves++ {
		if moves >= maxMoves {
			return nil, nil
		}

		if err := bot.Play(game, s); err != nil {
			return nil, err
		}

		flush()
	}

	return game.Winner(), nil
}
