// Package mux is the HTTP and websocket transport for the Liar's Bar server
package mux

import (
	"context"
	"net/http"

	"liarsbar-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxDealerKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	gr := r.PathPrefix("/game/{id:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
	gr.Use(this.gameMiddleware)
	gr.Methods(http.MethodGet).Path("").Handler(this.getGameID())
	gr.Methods(http.MethodPost).Path("/join").Handler(this.postGameIDJoin())

	return this
}

// gameMiddleware puts the dealer for {id} into the request context
func (m *Mux) gameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dealer, err := m.pitBoss.Dealer(gmux.Vars(r)["id"])
		if err != nil {
			writeRoomError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
