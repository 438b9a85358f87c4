package app

import (
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/hue_composer/internal/config"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The monitor page is served from this same process.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// frameStore holds the latest status frame and fans it out to websocket
// subscribers.
type frameStore struct {
	mu        sync.RWMutex
	lastFrame StatusFrame
	lastRaw   []byte
	haveFrame bool

	subscribers map[*websocket.Conn]struct{}
}

func newFrameStore() *frameStore {
	return &frameStore{subscribers: make(map[*websocket.Conn]struct{})}
}

func (s *frameStore) update(frame StatusFrame, raw []byte) {
	s.mu.Lock()
	s.lastFrame = frame
	s.lastRaw = raw
	s.haveFrame = true
	conns := make([]*websocket.Conn, 0, len(s.subscribers))
	for c := range s.subscribers {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, raw); err != nil {
			s.remove(c)
			c.Close()
		}
	}
}

func (s *frameStore) add(c *websocket.Conn) {
	s.mu.Lock()
	s.subscribers[c] = struct{}{}
	s.mu.Unlock()
}

func (s *frameStore) remove(c *websocket.Conn) {
	s.mu.Lock()
	delete(s.subscribers, c)
	s.mu.Unlock()
}

func (s *frameStore) latest() (StatusFrame, []byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFrame, s.lastRaw, s.haveFrame
}

// RunWeb serves the live monitor: a JSON API, a websocket stream, a rendered
// PNG status card and the static page from ./web. Status frames come from
// the generator over MQTT.
func RunWeb() error {
	cfg := config.Get()
	store := newFrameStore()

	// 1) Connect to MQTT and follow the status topic
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicStatus, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var frame StatusFrame
		if err := json.Unmarshal(msg.Payload(), &frame); err != nil {
			log.Printf("web: status unmarshal error: %v", err)
			return
		}
		store.update(frame, msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to MQTT topic %s", cfg.TopicStatus)

	// 2) JSON API endpoint: latest status frame
	http.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		_, raw, ok := store.latest()
		if !ok {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(raw)
	})

	// 3) Rendered status card, e.g. for embedding in other dashboards
	http.HandleFunc("/api/status.png", func(w http.ResponseWriter, r *http.Request) {
		frame, _, ok := store.latest()
		if !ok {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, renderStatusCard(frame)); err != nil {
			log.Printf("web: png encode error: %v", err)
		}
	})

	// 4) Websocket stream: latest frame on connect, then live pushes
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}

		if _, raw, ok := store.latest(); ok {
			if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				conn.Close()
				return
			}
		}
		store.add(conn)

		// Drain reads to notice the peer going away
		go func() {
			defer func() {
				store.remove(conn)
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	// 5) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
