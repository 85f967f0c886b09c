package liarsdeck

import (
	"liarsbar-server/pkg/playable"
)

// sendLogMessages queues messages for the table log
// The engine never blocks. If nobody drains the channel, messages are dropped.
func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan == nil || len(msg) == 0 {
		return
	}

	select {
	case g.logChan <- msg:
	default:
		g.logger.WithField("messages", len(msg)).Warn("log channel is full, dropping messages")
	}
}

// newLogMessage returns a log message. "{}" in the message is replaced with the player's name by the client.
func newLogMessage(playerID string, format string, a ...interface{}) *playable.LogMessage {
	return playable.SimpleLogMessage(playerID, format, a...)
}
