package cache

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewRedis_RejectsBadURL(t *testing.T) {
	if _, err := NewRedis("http://localhost:6379", time.Minute, nil); err == nil {
		t.Fatalf("NewRedis returned nil error for non-redis scheme")
	}
}

func TestCacheKey(t *testing.T) {
	got := cacheKey("http://ergast.com/api/f1/2014/4/results.json?limit=1000")
	want := "paddock:ergast:http://ergast.com/api/f1/2014/4/results.json?limit=1000"
	if got != want {
		t.Fatalf("cacheKey = %q, want %q", got, want)
	}
}

// closedAddr returns a loopback address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

func TestRedis_UnreachableServerIsAMiss(t *testing.T) {
	r, err := NewRedis("redis://"+closedAddr(t)+"/0", time.Minute, nil)
	if err != nil {
		t.Fatalf("NewRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.Ping(ctx); err == nil {
		t.Fatalf("Ping returned nil error for closed port")
	}
	r.Set(ctx, "k", []byte("v"))
	if body, ok := r.Get(ctx, "k"); ok {
		t.Fatalf("Get = %q, true; want miss", body)
	}
}

// respServer is a minimal in-memory Redis speaking enough RESP2 for GET, SET
// and PING. Other commands, including the client's HELLO handshake, get an
// error reply, which makes go-redis fall back to RESP2.
type respServer struct {
	mu   sync.Mutex
	data map[string]string
	sets [][]string
}

func newRESPServer(t *testing.T) (*respServer, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	srv := &respServer{data: map[string]string{}}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go srv.serve(conn)
		}
	}()
	return srv, ln.Addr().String()
}

func (s *respServer) serve(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		if _, err := io.WriteString(conn, s.reply(args)); err != nil {
			return
		}
	}
}

func (s *respServer) reply(args []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch strings.ToUpper(args[0]) {
	case "PING":
		return "+PONG\r\n"
	case "SET":
		s.sets = append(s.sets, args)
		s.data[args[1]] = args[2]
		return "+OK\r\n"
	case "GET":
		v, ok := s.data[args[1]]
		if !ok {
			return "$-1\r\n"
		}
		return fmt.Sprintf("$%d\r\n%s\r\n", len(v), v)
	default:
		return "-ERR unknown command '" + args[0] + "'\r\n"
	}
}

func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "*") {
		return nil, fmt.Errorf("unexpected line %q", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
	if err != nil || n < 1 {
		return nil, fmt.Errorf("bad array header %q", line)
	}
	args := make([]string, n)
	for i := range args {
		header, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(header, "$")))
		if err != nil {
			return nil, fmt.Errorf("bad bulk header %q", header)
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args[i] = string(buf[:size])
	}
	return args, nil
}

func (s *respServer) lastSet() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sets) == 0 {
		return nil
	}
	return s.sets[len(s.sets)-1]
}

func TestRedis_SetThenGetRoundTrip(t *testing.T) {
	srv, addr := newRESPServer(t)
	r, err := NewRedis("redis://"+addr+"/0", time.Hour, nil)
	if err != nil {
		t.Fatalf("NewRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.Ping(ctx); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}

	const url = "http://ergast.com/api/f1/2014/4/results.json?limit=1000"
	if body, ok := r.Get(ctx, url); ok {
		t.Fatalf("Get before Set = %q, true; want miss", body)
	}

	body := []byte(`{"MRData":{"RaceTable":{"Races":[]}}}`)
	r.Set(ctx, url, body)

	got, ok := r.Get(ctx, url)
	if !ok {
		t.Fatalf("Get after Set missed")
	}
	if string(got) != string(body) {
		t.Fatalf("Get = %q, want %q", got, body)
	}

	set := srv.lastSet()
	if len(set) < 3 || set[1] != cacheKey(url) {
		t.Fatalf("SET args = %q, want key %q", set, cacheKey(url))
	}
	if !strings.EqualFold(strings.Join(set[3:], " "), "ex 3600") {
		t.Fatalf("SET expiry args = %q, want ex 3600", set[3:])
	}

	if _, ok := r.Get(ctx, "http://ergast.com/api/f1/drivers.json?limit=1000"); ok {
		t.Fatalf("Get of another key hit")
	}
}
