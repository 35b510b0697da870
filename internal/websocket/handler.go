package websocket

// ServeWs registers client with the hub and pumps frames until the peer
// disconnects. It blocks for the lifetime of the connection.
func ServeWs(client *Client, onMessage func([]byte)) {
	client.Hub.add(client)

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump(onMessage)
}
