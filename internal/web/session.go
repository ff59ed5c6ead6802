package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"repo-analyzer-agent/internal"
	"repo-analyzer-agent/internal/git/types"
	"repo-analyzer-agent/internal/report"
)

const writeWait = 10 * time.Second

// session is one browser connection. At most one submission is current;
// results of replaced or stopped submissions are discarded.
type session struct {
	server *Server
	conn   *websocket.Conn

	writeMu sync.Mutex

	mu      sync.Mutex
	current string
	cancel  context.CancelFunc

	wg sync.WaitGroup
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	sess := &session{server: s, conn: conn}
	sess.run(r.Context())
}

func (sess *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	stopClose := context.AfterFunc(ctx, func() { sess.conn.Close() })

	slog.Debug("Form session opened", "remote", sess.conn.RemoteAddr().String())

	defer func() {
		cancel()
		sess.wg.Wait()
		stopClose()
		sess.conn.Close()
		slog.Debug("Form session closed", "remote", sess.conn.RemoteAddr().String())
	}()

	for {
		var msg clientMessage
		if err := sess.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("Form session read failed", "error", err)
			}
			return
		}

		switch msg.Type {
		case msgSubmit:
			sess.submit(ctx, internal.AnalysisRequest{RepositoryURL: msg.URL, Model: msg.Model})
		case msgStop:
			sess.stop()
		case msgClear:
			sess.clear()
		default:
			sess.send(errorMessage{Type: msgError, Message: "unknown message type: " + msg.Type})
		}
	}
}

// submit starts a new submission, cancelling the current one
func (sess *session) submit(parent context.Context, req internal.AnalysisRequest) {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(parent)

	sess.mu.Lock()
	if sess.cancel != nil {
		slog.Debug("Replacing in-flight submission", "submission_id", sess.current)
		sess.cancel()
	}
	sess.current = id
	sess.cancel = cancel
	sess.mu.Unlock()

	sess.wg.Add(1)
	go func() {
		defer sess.wg.Done()
		defer cancel()

		observer := internal.ObserverFunc(func(fraction float64, message string) {
			sess.sendIfCurrent(id, progressMessage{Type: msgProgress, SubmissionID: id, Fraction: fraction, Message: message})
		})

		result, info := sess.server.analyzer.AnalyzeWithRepositoryInfo(ctx, req, observer, sess.server.fetcher)

		if !sess.finish(id) {
			slog.Debug("Discarding result of cancelled submission", "submission_id", id)
			return
		}

		sess.send(newResultMessage(id, result, info))
	}()
}

// stop cancels the current submission, if any
func (sess *session) stop() {
	sess.mu.Lock()
	id := sess.current
	if sess.cancel != nil {
		sess.cancel()
	}
	sess.current = ""
	sess.cancel = nil
	sess.mu.Unlock()

	slog.Debug("Submission stopped", "submission_id", id)
	sess.send(stoppedMessage{Type: msgStopped, SubmissionID: id})
}

// clear resets the form; an in-flight submission keeps running
func (sess *session) clear() {
	sess.send(clearedMessage{
		Type:  msgCleared,
		Model: sess.server.config.DefaultModel(),
	})
}

// sendIfCurrent writes v only while id is the current submission.
// Holding mu across the write orders it before any stopped reply for id.
func (sess *session) sendIfCurrent(id string, v any) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.current != id {
		return false
	}
	sess.send(v)
	return true
}

// finish releases the current slot if id still holds it
func (sess *session) finish(id string) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.current != id {
		return false
	}
	sess.current = ""
	sess.cancel = nil
	return true
}

func (sess *session) send(v any) {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := sess.conn.WriteJSON(v); err != nil {
		slog.Debug("Form session write failed", "error", err)
	}
}

func newResultMessage(id string, result internal.AnalysisResult, info *types.RepositoryInfo) resultMessage {
	analysis := result.AnalysisText()

	html, err := report.MarkdownToHTML(analysis)
	if err != nil {
		slog.Warn("Markdown rendering failed, sending plain text", "error", err)
		html = ""
	}

	msg := resultMessage{
		Type:             msgResult,
		SubmissionID:     id,
		Status:           result.Kind.String(),
		AnalysisMarkdown: analysis,
		AnalysisHTML:     html,
		Timing:           result.TimingText(),
		Repository:       info,
	}
	if result.Kind == internal.ResultProviderError {
		msg.ErrorKind = result.ErrorKind.String()
	}
	return msg
}
