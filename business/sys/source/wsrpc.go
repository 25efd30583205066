package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

// WSSession is a websocket connection to an XRPL style RPC server. Commands
// are sent one at a time; there is no concurrent use of a session.
type WSSession struct {
	conn   *websocket.Conn
	nextID int
}

// wsRequest is the command envelope the XRPL websocket API expects.
type wsRequest struct {
	ID      int    `json:"id"`
	Command string `json:"command"`
}

// wsResponse is the response envelope.
type wsResponse struct {
	ID     int             `json:"id"`
	Status string          `json:"status"`
	Error  string          `json:"error_message"`
	Result json.RawMessage `json:"result"`
}

// DialWS opens a websocket session against the endpoint.
func DialWS(ctx context.Context, endpoint string) (*WSSession, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", endpoint, err)
	}

	return &WSSession{conn: conn}, nil
}

// Command sends a single command and decodes the result into result.
func (s *WSSession) Command(command string, result any) error {
	s.nextID++

	if err := s.conn.WriteJSON(wsRequest{ID: s.nextID, Command: command}); err != nil {
		return fmt.Errorf("sending %s: %w", command, err)
	}

	var resp wsResponse
	if err := s.conn.ReadJSON(&resp); err != nil {
		return fmt.Errorf("reading %s response: %w", command, err)
	}

	if resp.Status != "success" {
		return fmt.Errorf("%s failed: %s", command, resp.Error)
	}

	if err := json.Unmarshal(resp.Result, result); err != nil {
		return fmt.Errorf("decoding %s result: %w", command, err)
	}

	return nil
}

// Close shuts the session down.
func (s *WSSession) Close() error {
	return s.conn.Close()
}
