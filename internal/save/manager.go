package save

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Garsondee/Ghost-Hunt/internal/telemetry"
)

// Store keys.
const (
	SaveKey      = "ghost-hunt-save-game"
	HighScoreKey = "ghost-hunt-high-score"
)

// Manager reads and writes snapshots through a Store. Every failure is
// logged and turned into a false or empty result; nothing here returns an
// error to the game loop.
type Manager struct {
	store  Store
	log    *log.Logger
	tracer trace.Tracer
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger routes failure reports to l.
func WithLogger(l *log.Logger) Option { return func(m *Manager) { m.log = l } }

// WithTracer records a span per store operation.
func WithTracer(t trace.Tracer) Option { return func(m *Manager) { m.tracer = t } }

// NewManager returns a Manager over store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		log:    log.New(io.Discard, "", 0),
		tracer: telemetry.NoopTracer(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Save writes rec and reports whether it was stored.
func (m *Manager) Save(ctx context.Context, rec Record) bool {
	ctx, span := m.tracer.Start(ctx, "save.write")
	defer span.End()

	data, err := json.Marshal(rec)
	if err != nil {
		m.fail(span, "marshal snapshot", err)
		return false
	}
	if err := m.store.Put(ctx, SaveKey, data); err != nil {
		m.fail(span, "write snapshot", err)
		return false
	}
	span.SetAttributes(attribute.Int("save.bytes", len(data)))
	return true
}

// Load returns the stored snapshot. ok is false when there is none or it
// cannot be read, parsed or validated.
func (m *Manager) Load(ctx context.Context) (rec *Record, ok bool) {
	ctx, span := m.tracer.Start(ctx, "save.read")
	defer span.End()

	data, err := m.store.Get(ctx, SaveKey)
	if errors.Is(err, ErrNotFound) {
		span.SetAttributes(attribute.Bool("save.found", false))
		return nil, false
	}
	if err != nil {
		m.fail(span, "read snapshot", err)
		return nil, false
	}
	if err := validateRecord(data); err != nil {
		m.fail(span, "validate snapshot", err)
		return nil, false
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		m.fail(span, "parse snapshot", err)
		return nil, false
	}
	span.SetAttributes(attribute.Bool("save.found", true))
	return &r, true
}

// Has reports whether a snapshot is stored.
func (m *Manager) Has(ctx context.Context) bool {
	_, err := m.store.Get(ctx, SaveKey)
	return err == nil
}

// Delete removes the snapshot. Failures are logged and otherwise ignored.
func (m *Manager) Delete(ctx context.Context) {
	ctx, span := m.tracer.Start(ctx, "save.delete")
	defer span.End()
	if err := m.store.Delete(ctx, SaveKey); err != nil {
		m.fail(span, "delete snapshot", err)
	}
}

// SaveHighScore stores the best score and reports success.
func (m *Manager) SaveHighScore(ctx context.Context, score int) bool {
	if err := m.store.Put(ctx, HighScoreKey, []byte(strconv.Itoa(score))); err != nil {
		m.log.Printf("save: write high score: %v", err)
		return false
	}
	return true
}

// LoadHighScore returns the stored best score, or 0.
func (m *Manager) LoadHighScore(ctx context.Context) int {
	data, err := m.store.Get(ctx, HighScoreKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.log.Printf("save: read high score: %v", err)
		}
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		m.log.Printf("save: bad high score %q", data)
		return 0
	}
	return n
}

func (m *Manager) fail(span trace.Span, what string, err error) {
	m.log.Printf("save: %s: %v", what, err)
	span.RecordError(err)
	span.SetStatus(codes.Error, what)
}
