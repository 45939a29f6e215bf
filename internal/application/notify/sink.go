// Package notify implementa las notificaciones transitorias para el operador:
// mensajes con severidad que expiran solos, al estilo de un toast.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Muebleria-admin/pkg/logger"
)

// Severity nivel de una notificación.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// normalize severidades desconocidas se tratan como info.
func (s Severity) normalize() Severity {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return s
	default:
		return SeverityInfo
	}
}

// Notification mensaje transitorio para el operador.
type Notification struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Sink buffer de notificaciones con expiración automática. Las entradas
// vencidas se podan de forma perezosa en cada lectura.
type Sink struct {
	mu      sync.Mutex
	ttl     time.Duration
	log     *logger.Logger
	entries []Notification
	now     func() time.Time
}

// NewSink construye el sink. ttl <= 0 usa 5 segundos, la duración del toast original.
func NewSink(ttl time.Duration, log *logger.Logger) *Sink {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &Sink{ttl: ttl, log: log, now: time.Now}
}

// Notify registra una notificación y la refleja en el log estructurado con el
// nivel equivalente. Ninguna falla es fatal: el flujo siempre vuelve al operador.
func (s *Sink) Notify(severity Severity, message string) Notification {
	severity = severity.normalize()

	s.mu.Lock()
	n := Notification{
		ID:        uuid.New().String(),
		Severity:  severity,
		Message:   message,
		CreatedAt: s.now(),
	}
	s.prune(n.CreatedAt)
	s.entries = append(s.entries, n)
	s.mu.Unlock()

	if s.log != nil {
		switch severity {
		case SeverityError:
			s.log.Error().Str("notification_id", n.ID).Msg(message)
		case SeverityWarning:
			s.log.Warn().Str("notification_id", n.ID).Msg(message)
		default:
			s.log.Info().Str("notification_id", n.ID).Msg(message)
		}
	}
	return n
}

// Active notificaciones aún vigentes, de la más antigua a la más reciente.
func (s *Sink) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())
	out := make([]Notification, len(s.entries))
	copy(out, s.entries)
	return out
}

// prune descarta las entradas vencidas. Requiere lock tomado.
func (s *Sink) prune(at time.Time) {
	kept := s.entries[:0]
	for _, n := range s.entries {
		if at.Sub(n.CreatedAt) < s.ttl {
			kept = append(kept, n)
		}
	}
	s.entries = kept
}
