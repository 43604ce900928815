// Package wsserver provides the WebSocket transport for Redisgate.
//
// One socket per command family: /redis_ws/{string|hash|set|admin}/ws.
// Frames in carry {"id"?, "type", ...}; frames out carry
// {"id"?, "type", "success", "data"?, "error"?}. Each family accepts a
// closed command set; an unknown type produces an error frame and the
// connection stays open. Only a failed read or write closes a
// connection.
package wsserver
