package commands

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	patmat "github.com/hgweller/gopatmat"
	"github.com/hgweller/gopatmat/internal/catalog"
	"github.com/hgweller/gopatmat/internal/pnode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// traceEvent is the JSON object a connected viewer receives, as one
// websocket text message, per node visited.
type traceEvent struct {
	RunID  string `json:"run_id"`
	Index  int    `json:"index"`
	Code   string `json:"code"`
	Cursor int    `json:"cursor"`
}

// wsTracer adapts matcher.Tracer to push events over a websocket
// connection instead of internal/trace's line-oriented stderr output.
type wsTracer struct {
	conn  *websocket.Conn
	runID string
}

func (t *wsTracer) OnVisit(cursor int, node *pnode.Node) {
	ev := traceEvent{RunID: t.runID, Index: node.Index, Code: node.Code.String(), Cursor: cursor}
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	t.conn.WriteMessage(websocket.TextMessage, b)
}

// ServeCommand starts an HTTP server exposing one websocket endpoint,
// /match, that reads JSON requests {"pattern":"<catalog-name>",
// "subject":"...","anchor":false} one after another on each connection
// and, for each, streams back one traceEvent per node visited followed
// by the final outcome.
func ServeCommand(args []string) error {
	addr := ":8089"
	if len(args) >= 1 {
		addr = args[0]
	}

	http.HandleFunc("/match", handleMatch)
	fmt.Printf("patmat serve: listening on %s (ws://%s/match)\n", addr, addr)
	return http.ListenAndServe(addr, nil)
}

type matchRequest struct {
	Pattern string `json:"pattern"`
	Subject string `json:"subject"`
	Anchor  bool   `json:"anchor"`
}

type matchResponse struct {
	RunID   string `json:"run_id"`
	Outcome string `json:"outcome"`
	Span    string `json:"span,omitempty"`
	Error   string `json:"error,omitempty"`
}

func handleMatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("patmat serve: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req matchRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		entry, err := catalog.Lookup(req.Pattern)
		if err != nil {
			conn.WriteJSON(matchResponse{Error: err.Error()})
			continue
		}

		runID := uuid.New().String()
		tracer := &wsTracer{conn: conn, runID: runID}

		res := patmat.Match(req.Subject, entry.Build(), patmat.Flags{Anchor: req.Anchor, Tracer: tracer})

		resp := matchResponse{RunID: runID, Outcome: res.Outcome.String()}
		if res.Outcome == patmat.Success {
			resp.Span = res.Span(req.Subject)
		}
		if res.Err != nil {
			resp.Error = res.Err.Error()
		}
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}
