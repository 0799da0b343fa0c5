package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"github.com/decker502/cardtable/pkg/events"
)

// newTestServer 启动一个依次发送 messages 后正常关闭的 websocket 服务器
func newTestServer(t *testing.T, messages []string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		for _, m := range messages {
			if err := conn.Write(r.Context(), websocket.MessageText, []byte(m)); err != nil {
				return
			}
		}
		conn.Close(websocket.StatusNormalClosure, "done")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketFeedDecodesEvents(t *testing.T) {
	srv := newTestServer(t, []string{
		`{"type":"seat","data":{"player_id":"alice","seat":0}}`,
		`{"type":"chat","data":{"text":"hi"}}`,
		`{"type":"card_pass","data":{"from_player_id":"alice"}}`,
		`not json`,
		`{"type":"emoji_throw","data":{"from_player_id":"alice","to_player_id":"bob","emoji":"🍅"}}`,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := make(chan events.Event, 8)
	if err := NewWebSocketFeed(wsURL(srv)).Run(ctx, out); err != nil {
		t.Fatalf("Run returned %v, want nil on normal closure", err)
	}
	close(out)

	var got []events.Event
	for ev := range out {
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Fatalf("received %d events, want 2 (unknown and malformed skipped)", len(got))
	}
	if got[0].Kind() != events.KindSeat || got[1].Kind() != events.KindEmojiThrow {
		t.Errorf("kinds = %s, %s", got[0].Kind(), got[1].Kind())
	}
	if throw := got[1].(*events.EmojiThrowEvent); throw.Emoji != "🍅" {
		t.Errorf("emoji = %q", throw.Emoji)
	}
}

func TestWebSocketFeedDialError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := NewWebSocketFeed(wsURL(srv)).Run(ctx, make(chan events.Event)); err == nil {
		t.Error("expected dial error for non-websocket endpoint")
	}
}

func TestWebSocketFeedStopsOnCancel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewWebSocketFeed(wsURL(srv)).Run(ctx, make(chan events.Event))
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run after cancel = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
