// Package wsserver provides the WebSocket transport for Redisgate.
package wsserver

import "time"

// response is the outbound frame shape shared by every family.
type response struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ok builds a success frame echoing the request's id and type.
func ok(id, typ string, data any) response {
	return response{ID: id, Type: typ, Success: true, Data: data}
}

// fail builds an error frame. The connection stays open; only transport
// failures close it.
func fail(id, typ, msg string) response {
	return response{ID: id, Type: typ, Success: false, Error: msg}
}

func closeDeadline() time.Time {
	return time.Now().Add(5 * time.Second)
}
