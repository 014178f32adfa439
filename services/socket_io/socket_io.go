package socket_io

import (
	"Scrawl/services/game"
	"Scrawl/services/socket_io/handlers"
	socketio_types "Scrawl/services/socket_io/types"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io server on the gin router and registers the
// game event handlers for every incoming connection.
func (sio *MySocketServer) Start(router *gin.Engine, scheduler *game.TurnScheduler) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and
	// 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Connections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		connID := string(client.Id())

		(*socketio_types.SocketServer)(sio).AddConnection(connID, client)
		log.Printf("[CONNECT] new connection %s", connID)

		// Join a game session (creates one when needed)
		client.On("join", handlers.HandleJoin(scheduler, client))

		// Drawer picks one of the offered words, starting the countdown
		client.On("pick_word", handlers.HandlePickWord(scheduler, client))

		// Relay canvas strokes to the rest of the session
		client.On("draw", handlers.HandleDraw(scheduler, client))

		// Chat doubles as the guess channel
		client.On("chat", handlers.HandleChat(scheduler, client))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(scheduler, client,
			(*socketio_types.SocketServer)(sio)))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	log.Println("Socket server started")
}

// Close shuts the socket.io server down.
func (sio *MySocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
