package room

import (
	"liarsbar-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages keeps the most recent log messages for clients that connect later
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// drainLogMessages collects everything the game has logged since the last call
// Note: this must only be called from within the run loop
func (d *Dealer) drainLogMessages() []*playable.LogMessage {
	messages := make([]*playable.LogMessage, 0)
	for {
		select {
		case msgs := <-d.game.LogChan():
			messages = append(messages, msgs...)
		default:
			return messages
		}
	}
}

// flushLogMessages sends new log messages to every client
// Note: this must only be called from within the run loop
func (d *Dealer) flushLogMessages() {
	messages := d.drainLogMessages()
	if len(messages) == 0 {
		return
	}

	d.addLogMessages(messages)
	d.broadcast(&playable.Response{
		Key:  "log",
		Data: messages,
	})
}
