package shutdown

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/frost-relay/internal/gpio"
)

var exit = os.Exit

type Notifier interface {
	Send(title, message string) error
}

// Handler takes the heating circuit to its safe state before the process exits.
type Handler struct {
	Relay    gpio.Relay
	Notifier Notifier
}

func New(relay gpio.Relay, notifier Notifier) *Handler {
	return &Handler{Relay: relay, Notifier: notifier}
}

// Shutdown de-energizes the relay, releases it and exits with code.
func (h *Handler) Shutdown(code int) {
	if h.Relay != nil {
		if err := h.Relay.Set(false); err != nil {
			log.Error().Err(err).Msg("Failed to de-energize relay")
		} else {
			log.Info().Msg("Heating relay deactivated")
		}
		if err := h.Relay.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to release relay")
		}
	}
	exit(code)
}

// ShutdownWithError logs err, sends a notification and exits non-zero.
func (h *Handler) ShutdownWithError(err error, msg string) {
	log.Error().Err(err).Msg(msg)
	if h.Notifier != nil {
		if nerr := h.Notifier.Send("Heating controller stopped", fmt.Sprintf("%s: %v", msg, err)); nerr != nil {
			log.Warn().Err(nerr).Msg("Failed to send shutdown notification")
		}
	}
	h.Shutdown(1)
}
