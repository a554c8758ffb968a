package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"nhooyr.io/websocket"
)

func TestConsoleTransportRoundTrip(t *testing.T) {
	var serverTransport *ConsoleTransport
	serverReady := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("websocket accept: %v", err)
			return
		}
		serverTransport = NewConsoleTransport(r.Context(), conn)
		close(serverReady)
		<-serverTransport.doneCh
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientConn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}

	select {
	case <-serverReady:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server transport")
	}

	data, _ := json.Marshal(consoleFrame{NodeID: "!operator", Text: "LOOK"})
	if err := clientConn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("client write: %v", err)
	}

	select {
	case evt := <-serverTransport.Events():
		if evt.NodeID != "!operator" || evt.Text != "LOOK" {
			t.Errorf("server got %+v, want node !operator text LOOK", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout reading on server")
	}

	if err := serverTransport.Send("!operator", "You are standing in a gazebo."); err != nil {
		t.Fatalf("server send: %v", err)
	}

	_, clientData, err := clientConn.Read(ctx)
	if err != nil {
		t.Fatalf("client read: %v", err)
	}
	var frame consoleFrame
	if err := json.Unmarshal(clientData, &frame); err != nil {
		t.Fatalf("unmarshal client frame: %v", err)
	}
	if frame.NodeID != "!operator" || frame.Text != "You are standing in a gazebo." {
		t.Errorf("client got %+v", frame)
	}

	serverTransport.Close()
	clientConn.Close(websocket.StatusNormalClosure, "")
}

func TestConsoleTransportClientDisconnect(t *testing.T) {
	var serverTransport *ConsoleTransport
	serverReady := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		serverTransport = NewConsoleTransport(r.Context(), conn)
		close(serverReady)
		<-serverTransport.doneCh
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	ctx := context.Background()
	clientConn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	<-serverReady
	clientConn.Close(websocket.StatusGoingAway, "bye")

	select {
	case _, ok := <-serverTransport.Events():
		_ = ok
	case <-time.After(2 * time.Second):
		t.Fatal("timeout: server should detect client disconnect")
	}

	serverTransport.Close()
}

func TestConsoleTransportSendAfterClose(t *testing.T) {
	var serverTransport *ConsoleTransport
	serverReady := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		serverTransport = NewConsoleTransport(r.Context(), conn)
		close(serverReady)
		<-serverTransport.doneCh
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	ctx := context.Background()
	clientConn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	<-serverReady

	serverTransport.Close()
	if serverTransport.IsReady() {
		t.Error("expected IsReady() = false after Close()")
	}
	if err := serverTransport.Send("!operator", "hi"); err != ErrTransportClosed {
		t.Errorf("Send after close: err = %v, want ErrTransportClosed", err)
	}

	clientConn.Close(websocket.StatusNormalClosure, "")
}

func TestConsoleTransportConcurrentSends(t *testing.T) {
	var serverTransport *ConsoleTransport
	serverReady := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		serverTransport = NewConsoleTransport(r.Context(), conn)
		close(serverReady)
		<-serverTransport.doneCh
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	ctx := context.Background()
	clientConn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	<-serverReady

	received := 0
	var mu sync.Mutex
	clientDone := make(chan struct{})
	go func() {
		defer close(clientDone)
		for {
			_, _, err := clientConn.Read(ctx)
			if err != nil {
				return
			}
			mu.Lock()
			received++
			mu.Unlock()
		}
	}()

	const numSenders = 5
	const msgsPerSender = 20

	var wg sync.WaitGroup
	wg.Add(numSenders)
	for i := 0; i < numSenders; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < msgsPerSender; j++ {
				serverTransport.Send("!operator", "ping")
			}
		}()
	}
	wg.Wait()
	time.Sleep(200 * time.Millisecond)

	serverTransport.Close()
	clientConn.Close(websocket.StatusNormalClosure, "")
	<-clientDone

	mu.Lock()
	total := received
	mu.Unlock()
	if total != numSenders*msgsPerSender {
		t.Errorf("received %d messages, want %d", total, numSenders*msgsPerSender)
	}
}
