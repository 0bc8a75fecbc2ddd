package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ReloadPath is the websocket endpoint pages connect to.
const ReloadPath = "/__livereload"

// reloadMessage is sent to every client after a successful rebuild.
const reloadMessage = "reload"

// reloadScript is injected before </body> of every served page. After the
// connection drops it reconnects with backoff and reloads once the server
// answers again.
const reloadScript = `<script>
(function () {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var url = proto + location.host + '` + ReloadPath + `';
  var delay = 500, maxDelay = 10000, lost = false;
  function connect() {
    var ws = new WebSocket(url);
    ws.onopen = function () {
      if (lost) { location.reload(); return; }
      delay = 500;
    };
    ws.onmessage = function (e) { if (e.data === '` + reloadMessage + `') location.reload(); };
    ws.onclose = function () {
      lost = true;
      setTimeout(connect, delay);
      delay = Math.min(delay * 2, maxDelay);
    };
  }
  connect();
})();
</script>`

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks connected pages and tells them to reload.
type Hub struct {
	log     *slog.Logger
	mu      sync.Mutex
	clients map[chan struct{}]struct{}
	closed  bool
}

// NewHub returns an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{log: logger, clients: make(map[chan struct{}]struct{})}
}

// ServeWS upgrades the request and holds the connection until the client
// leaves or the hub closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("livereload: websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	ch := make(chan struct{}, 1)
	if !h.add(ch) {
		return
	}
	defer h.remove(ch)

	// Reads only detect the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Debug("livereload: websocket read", "err", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case _, ok := <-ch:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reloadMessage)); err != nil {
				h.log.Debug("livereload: websocket write", "err", err)
				return
			}
		case <-gone:
			return
		}
	}
}

func (h *Hub) add(ch chan struct{}) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[ch] = struct{}{}
	return true
}

func (h *Hub) remove(ch chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
	}
}

// Broadcast asks every client to reload without blocking on slow ones. It
// returns the number of connected clients.
func (h *Hub) Broadcast() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return len(h.clients)
}

// Clients returns the number of connected pages.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.clients {
		close(ch)
		delete(h.clients, ch)
	}
}

// InjectLiveReload inserts the reload client before the last </body>, or
// appends it when the page has none.
func InjectLiveReload(html []byte) []byte {
	idx := lastBodyClose(html)
	if idx == -1 {
		return append(append([]byte{}, html...), reloadScript...)
	}
	out := make([]byte, 0, len(html)+len(reloadScript)+1)
	out = append(out, html[:idx]...)
	out = append(out, reloadScript...)
	out = append(out, '\n')
	return append(out, html[idx:]...)
}

func lastBodyClose(html []byte) int {
	tag := []byte("</body>")
	for i := len(html) - len(tag); i >= 0; i-- {
		if bytes.EqualFold(html[i:i+len(tag)], tag) {
			return i
		}
	}
	return -1
}
