// Command liarsbot seats automated players at a Liar's Bar table
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liarsbar-server/internal/util"
	"liarsbar-server/pkg/bot"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Create  CreateCmd        `cmd:"" help:"Open a new table and print its id and the host token"`
	Join    JoinCmd          `cmd:"" help:"Seat one or more bots at a table"`
}

type LogFlags struct {
	LogLevel string `default:"info" help:"Log level (trace|debug|info|warn|error)"`
	LogJSON  bool   `help:"Output JSON logs instead of text"`
}

func (l LogFlags) setup() error {
	level, err := logrus.ParseLevel(l.LogLevel)
	if err != nil {
		return err
	}

	logrus.SetLevel(level)
	if l.LogJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	return nil
}

type CreateCmd struct {
	LogFlags `embed:""`
	Server string `default:"http://localhost:5000" help:"Server URL"`
	Name   string `default:"Host" help:"Host name"`
}

func (c *CreateCmd) Run() error {
	if err := c.setup(); err != nil {
		return err
	}

	p := newRemotePlayer(c.Server, nil, 0, logrus.StandardLogger())
	seat, err := p.createGame(context.Background(), c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("game:  %s\nplayer: %s\ntoken: %s\n", seat.GameID, seat.PlayerID, seat.Token)
	return nil
}

type JoinCmd struct {
	LogFlags `embed:""`
	Game       string        `arg:"" help:"Game id to join"`
	Server     string        `default:"http://localhost:5000" help:"Server URL"`
	Count      int           `default:"1" help:"Number of bots to seat"`
	Name       string        `help:"Bot name (random when empty)"`
	Difficulty string        `default:"easy" enum:"easy,normal,hard" help:"Bot difficulty"`
	Delay      time.Duration `default:"800ms" help:"Delay before each move"`
}

func (c *JoinCmd) Run() error {
	if err := c.setup(); err != nil {
		return err
	}

	difficulty, err := bot.ParseDifficulty(c.Difficulty)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < c.Count; i++ {
		name := c.Name
		switch {
		case name == "":
			name = util.GetRandomName()
		case c.Count > 1:
			name = fmt.Sprintf("%s %d", c.Name, i+1)
		}

		p := newRemotePlayer(c.Server, bot.NewBrain(nil, difficulty), c.Delay, logrus.WithField("bot", name))
		g.Go(func() error {
			return p.run(ctx, c.Game, name)
		})
	}

	return g.Wait()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("liarsbot"),
		kong.Description("Automated players for the Liar's Bar server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
