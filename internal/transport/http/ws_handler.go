package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"rag-assessment/internal/app"
	"rag-assessment/internal/domain"
	"rag-assessment/internal/logger"
	"rag-assessment/internal/scoring"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type WSHandler struct {
	service           *app.AssessmentService
	defaultDefinition string
	log               *logger.Logger
	upgrader          websocket.Upgrader
}

// NewWSHandler serves one assessment session per connection. Connections that
// omit definitionId run defaultDefinition.
func NewWSHandler(service *app.AssessmentService, defaultDefinition string, log *logger.Logger) *WSHandler {
	return &WSHandler{
		service:           service,
		defaultDefinition: defaultDefinition,
		log:               log.With("component", "ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Option domain.Rating `json:"option"`
}

type jumpPayload struct {
	Section int `json:"section"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type sectionSummary struct {
	SectionID  int         `json:"sectionId"`
	Percentage int         `json:"percentage"`
	Band       domain.Band `json:"band"`
}

type resultsPayload struct {
	domain.Results
	SessionID  string           `json:"sessionId"`
	Percentage int              `json:"percentage"`
	Band       domain.Band      `json:"band"`
	Sections   []sectionSummary `json:"sections"`
}

func newResultsPayload(sessionID string, results domain.Results) resultsPayload {
	pct := scoring.Percentage(results.OverallScore, results.OverallMaxScore)
	out := resultsPayload{
		Results:    results,
		SessionID:  sessionID,
		Percentage: pct,
		Band:       scoring.ScoreBand(pct),
		Sections:   make([]sectionSummary, 0, len(results.SectionScores)),
	}
	for _, s := range results.SectionScores {
		sp := scoring.Percentage(s.Score, s.MaxScore)
		out.Sections = append(out.Sections, sectionSummary{SectionID: s.SectionID, Percentage: sp, Band: scoring.ScoreBand(sp)})
	}
	return out
}

// ServeWS upgrades HTTP requests to websockets and drives one assessment
// session for the lifetime of the connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	definitionID := r.URL.Query().Get("definitionId")
	if definitionID == "" {
		definitionID = h.defaultDefinition
	}
	if definitionID == "" {
		http.Error(w, "missing definitionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// The session outlives request cancellation until the read loop exits.
	ctx := context.WithoutCancel(r.Context())

	started, err := h.service.Start(ctx, definitionID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: toErrorPayload(err)})
		return
	}
	sessionID := started.SessionID
	defer h.service.End(ctx, sessionID)

	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-send:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					h.log.Debug("ws write error", "session", sessionID, "error", err)
					return
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	send <- outboundMessage{Type: "started", Payload: started}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		msg := h.dispatch(ctx, sessionID, inbound)
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(ctx context.Context, sessionID string, inbound inboundMessage) outboundMessage {
	var (
		view domain.SessionView
		err  error
	)
	switch inbound.Type {
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid answer payload", "bad_request")
		}
		view, err = h.service.Answer(ctx, sessionID, payload.Option)
	case "next":
		view, err = h.service.Next(ctx, sessionID)
	case "previous":
		view, err = h.service.Previous(ctx, sessionID)
	case "jump":
		var payload jumpPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid jump payload", "bad_request")
		}
		view, err = h.service.JumpToSection(ctx, sessionID, payload.Section)
	case "current":
		view, err = h.service.Current(ctx, sessionID)
	case "reset":
		view, err = h.service.Reset(ctx, sessionID)
	case "results":
		results, err := h.service.Results(ctx, sessionID)
		if err != nil {
			return outboundMessage{Type: "error", Payload: toErrorPayload(err)}
		}
		return outboundMessage{Type: "results", Payload: newResultsPayload(sessionID, results)}
	default:
		return errorMessage("unsupported message type", "bad_request")
	}
	if err != nil {
		return outboundMessage{Type: "error", Payload: toErrorPayload(err)}
	}
	return outboundMessage{Type: "question", Payload: view}
}

func errorMessage(message, code string) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: message, Code: code}}
}

func toErrorPayload(err error) errorPayload {
	return errorPayload{Message: err.Error(), Code: errorCode(err)}
}

func errorCode(err error) string {
	var loadErr *domain.DefinitionLoadError
	switch {
	case errors.Is(err, domain.ErrIncompleteQuiz):
		return "incomplete"
	case errors.Is(err, domain.ErrQuestionUnanswered):
		return "unanswered"
	case errors.Is(err, domain.ErrOptionNotFound):
		return "invalid_option"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "not_found"
	case errors.As(err, &loadErr):
		return "definition"
	}
	return "internal"
}
