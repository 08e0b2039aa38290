package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/skarsten/keywire/pkg/codec"
	"github.com/skarsten/keywire/pkg/journal"
)

// EventJournal defines the journal operations the API server uses
type EventJournal interface {
	Append(event *codec.KeyEvent) (ksuid.KSUID, error)
	AppendPacket(packet []byte) (ksuid.KSUID, error)
	Get(id ksuid.KSUID) (*codec.KeyEvent, error)
}

// Server holds the API server state
type Server struct {
	journal EventJournal
	codec   *codec.KeyEventCodec
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(journal EventJournal, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		journal: journal,
		codec:   codec.NewKeyEventCodec(),
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleDecode decodes a packet and returns the event as JSON.
// The packet arrives either as a raw octet-stream body or as base64 in a
// JSON body.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	packet, err := readPacket(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := s.codec.Decode(packet)
	s.metrics.RecordDecode(err)
	if err != nil {
		sendError(w, fmt.Sprintf("Structural decode error: %v", err), http.StatusBadRequest)
		return
	}

	sendSuccess(w, PayloadFromEvent(event))
}

// handleEncode encodes a JSON event and returns the packet as base64
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var payload KeyEventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	event, err := payload.Event()
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	packet, err := s.codec.Encode(event)
	s.metrics.RecordEncode(err, len(packet))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sendSuccess(w, EncodeResponse{
		Packet: base64.StdEncoding.EncodeToString(packet),
		Size:   len(packet),
	})
}

// handleAppendEvent decodes a packet, journals it and returns the
// assigned id
func (s *Server) handleAppendEvent(w http.ResponseWriter, r *http.Request) {
	packet, err := readPacket(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := s.journal.AppendPacket(packet)
	s.metrics.RecordDecode(err)
	if err != nil {
		var codecErr *codec.CodecError
		if errors.As(err, &codecErr) {
			s.metrics.RecordJournalOperation("append", false)
			sendError(w, fmt.Sprintf("Structural decode error: %v", err), http.StatusBadRequest)
			return
		}
		s.metrics.RecordJournalOperation("append", false)
		sendError(w, "Failed to journal event", http.StatusInternalServerError)
		return
	}

	s.metrics.RecordJournalOperation("append", true)
	sendSuccess(w, EventAppendResponse{ID: id.String()})
}

// handleGetEvent fetches and decodes a journaled event
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := ksuid.Parse(raw)
	if err != nil {
		sendError(w, fmt.Sprintf("Invalid event id %q", raw), http.StatusBadRequest)
		return
	}

	event, err := s.journal.Get(id)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			s.metrics.RecordJournalOperation("get", false)
			sendError(w, "Event not found", http.StatusNotFound)
			return
		}
		s.metrics.RecordJournalOperation("get", false)
		sendError(w, "Failed to read event", http.StatusInternalServerError)
		return
	}

	s.metrics.RecordJournalOperation("get", true)
	sendSuccess(w, JournaledEventResponse{
		ID:    id.String(),
		Event: PayloadFromEvent(event),
	})
}

// readPacket extracts the binary packet from a request body. JSON bodies
// carry it base64-encoded; anything else is treated as the raw packet.
func readPacket(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req DecodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, errors.New("Invalid JSON in request body")
		}
		packet, err := base64.StdEncoding.DecodeString(req.Packet)
		if err != nil {
			return nil, errors.New("Invalid base64 packet")
		}
		return packet, nil
	}

	packet, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.New("Failed to read request body")
	}
	return packet, nil
}
