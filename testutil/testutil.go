package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// MockHTTP starts a test server that always answers with the given body and
// status code. Returns the server and a close function.
func MockHTTP(t *testing.T, response string, status int) (*httptest.Server, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != 0 && status != http.StatusOK {
			w.WriteHeader(status)
		}
		_, _ = w.Write([]byte(response))
	}))
	return server, server.Close
}

// Response is one scripted reply for MockHTTPSequence.
type Response struct {
	Status int
	Body   any
}

// MockHTTPSequence starts a test server that answers with the scripted
// responses in order, repeating the last one once the script is exhausted.
// Requests received are recorded and can be inspected afterwards.
type SequenceServer struct {
	Server *httptest.Server

	mu        sync.Mutex
	responses []Response
	requests  []RecordedRequest
}

type RecordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

func MockHTTPSequence(t *testing.T, responses ...Response) *SequenceServer {
	t.Helper()
	seq := &SequenceServer{responses: responses}
	seq.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seq.mu.Lock()
		body, _ := io.ReadAll(r.Body)
		seq.requests = append(seq.requests, RecordedRequest{Method: r.Method, Path: r.URL.Path, Body: body})
		res := seq.responses[0]
		if len(seq.responses) > 1 {
			seq.responses = seq.responses[1:]
		}
		seq.mu.Unlock()

		if res.Status != 0 && res.Status != http.StatusOK {
			w.WriteHeader(res.Status)
		}
		switch body := res.Body.(type) {
		case string:
			_, _ = w.Write([]byte(body))
		default:
			bz, _ := json.Marshal(body)
			_, _ = w.Write(bz)
		}
	}))
	t.Cleanup(seq.Server.Close)
	return seq
}

func (seq *SequenceServer) Requests() []RecordedRequest {
	seq.mu.Lock()
	defer seq.mu.Unlock()
	out := make([]RecordedRequest, len(seq.requests))
	copy(out, seq.requests)
	return out
}
