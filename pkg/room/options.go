package room

import (
	"time"

	"liarsbar-server/internal/rng"
	"liarsbar-server/pkg/bot"
	"liarsbar-server/pkg/token"

	"github.com/coder/quartz"
)

// Options configures every table a PitBoss opens
type Options struct {
	// Clock drives bot delays and idle expiry
	Clock quartz.Clock

	// Generator is handed to the game's revolver and to the bots. Nil means crypto/rand.
	Generator rng.Generator

	// BotDelay is how long an in-process bot waits before it moves
	BotDelay time.Duration

	// BotDifficulty is used when addBot does not name one
	BotDifficulty bot.Difficulty

	// IdleTimeout closes a table that has had no connected clients for this long. Zero never closes.
	IdleTimeout time.Duration

	// TokenLength is the length of seat tokens
	TokenLength int
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Clock:         quartz.NewReal(),
		BotDelay:      time.Millisecond * 800,
		BotDifficulty: bot.Easy,
		IdleTimeout:   time.Minute * 10,
		TokenLength:   token.DefaultLength,
	}
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = quartz.NewReal()
	}

	if o.BotDifficulty == "" {
		o.BotDifficulty = bot.Easy
	}

	if o.TokenLength < 1 {
		o.TokenLength = token.DefaultLength
	}

	return o
}
