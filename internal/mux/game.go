package mux

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"liarsbar-server/pkg/room"
)

const maxNameLength = 32

var errNameTooLong = errors.New("name must be 32 characters or less")

// playerName trims name and falls back to defaultName when it is empty
func playerName(name, defaultName string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultName, nil
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		return "", errNameTooLong
	}

	return name, nil
}

type postGamePayload struct {
	Name string `json:"name"`
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGamePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		name, err := playerName(pp.Name, "Host")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		seat, err := m.pitBoss.CreateTable(name)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, seat)
	}
}

type postGameIDJoinPayload struct {
	Name  string `json:"name"`
	IsBot bool   `json:"isBot"`
}

type postGameIDJoinResponse struct {
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}

func (m *Mux) postGameIDJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGameIDJoinPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		name, err := playerName(pp.Name, "Player")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		seat, err := m.pitBoss.JoinTable(dealer.ID(), name, pp.IsBot)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, postGameIDJoinResponse{
			PlayerID: seat.PlayerID,
			Token:    seat.Token,
		})
	}
}

func (m *Mux) getGameID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		view, err := dealer.View("")
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view.GameState)
	}
}
