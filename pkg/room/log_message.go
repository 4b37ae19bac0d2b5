package room

import (
	"uno-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds log messages, keeping the most recent ones
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// flushLogMessages drains the log messages the game has queued and sends them to every client
// Note: this must only be called from within the run loop
func (d *Dealer) flushLogMessages() {
	var messages []*playable.LogMessage
	for {
		select {
		case msgs := <-d.game.LogChan():
			messages = append(messages, msgs...)
		default:
			if len(messages) == 0 {
				return
			}

			d.addLogMessages(messages)
			res := newLogResponse(messages)
			for _, client := range d.Clients() {
				d.send(client, res)
			}

			return
		}
	}
}
