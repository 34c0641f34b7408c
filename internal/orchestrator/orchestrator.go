// Package orchestrator реализует машину состояний анализа профиля.
//
// Машина принимает сырой ввод, нормализует его и либо сразу запускает анализ,
// либо паркует запрос до успешной авторизации и возобновляет его сама, без
// повторной отправки от пользователя. Актуален всегда только последний запрос:
// каждый submit и выход из аккаунта поднимают поколение, и поздний результат
// со старым поколением отбрасывается, а не перетирает свежий.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/creator-ratecard/internal/lib/handle"
	"github.com/magabrotheeeer/creator-ratecard/internal/lib/sl"
	"github.com/magabrotheeeer/creator-ratecard/internal/models"
	"github.com/magabrotheeeer/creator-ratecard/internal/session"
)

// State — состояние машины анализа.
type State string

const (
	// StateIdle — запросов нет.
	StateIdle State = "idle"
	// StateAwaitingAuth — запрос припаркован до авторизации, анализатор не вызывался.
	StateAwaitingAuth State = "awaiting_auth"
	// StateAnalyzing — вызов анализатора выполняется.
	StateAnalyzing State = "analyzing"
	// StateResolved — есть актуальный результат.
	StateResolved State = "resolved"
	// StateFailed — последняя отправка завершилась ошибкой.
	StateFailed State = "failed"
)

// Причины состояния StateFailed.
const (
	FailInvalidInput   = "invalid_input"
	FailAnalysisFailed = "analysis_failed"
)

// Gateway описывает контракт вызова анализатора.
type Gateway interface {
	Analyze(ctx context.Context, handle string) (*models.AnalysisResult, error)
}

// Snapshot — копия текущего состояния машины для ответа клиенту.
type Snapshot struct {
	State      State
	Handle     string
	Result     *models.AnalysisResult
	FailReason string
	Generation uint64
}

// Orchestrator — машина состояний одной пользовательской ленты.
type Orchestrator struct {
	gateway Gateway
	gate    *session.Gate
	log     *slog.Logger

	mu         sync.Mutex
	generation uint64
	state      State
	handle     string // хэндл, захваченный при отправке
	result     *models.AnalysisResult
	failReason string
	cancel     context.CancelFunc
}

// New создает машину в состоянии StateIdle.
func New(gateway Gateway, gate *session.Gate, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		gateway: gateway,
		gate:    gate,
		log:     log,
		state:   StateIdle,
	}
}

// Submit принимает сырой ввод и запускает новую отправку. Предыдущий
// выполняющийся запрос при этом теряет актуальность: его результат, если
// придет, будет отброшен. Для анонимного посетителя запрос паркуется и
// анализатор не вызывается.
func (o *Orchestrator) Submit(raw string) Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.supersedeLocked()

	h, err := handle.Normalize(raw)
	if err != nil {
		o.state = StateFailed
		o.failReason = FailInvalidInput
		o.handle = ""
		return o.snapshotLocked()
	}

	o.handle = h
	if !o.gate.IsAuthenticated() {
		o.state = StateAwaitingAuth
		return o.snapshotLocked()
	}

	o.startAnalysisLocked(h)
	return o.snapshotLocked()
}

// AuthSucceeded возобновляет припаркованный запрос после успешной
// авторизации. Используется хэндл, захваченный при отправке: правки в поле
// ввода после парковки на запрос не влияют. Вне StateAwaitingAuth — no-op.
func (o *Orchestrator) AuthSucceeded() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateAwaitingAuth {
		o.startAnalysisLocked(o.handle)
	}
	return o.snapshotLocked()
}

// AuthCancelled сбрасывает припаркованный запрос: посетитель закрыл окно
// авторизации, анализатор так и не вызывается.
func (o *Orchestrator) AuthCancelled() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateAwaitingAuth {
		o.state = StateIdle
		o.handle = ""
	}
	return o.snapshotLocked()
}

// SignOut принудительно возвращает машину в StateIdle и стирает результат:
// данные, привязанные к сессии, не переживают выход.
func (o *Orchestrator) SignOut() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.supersedeLocked()
	o.state = StateIdle
	o.handle = ""
}

// Snapshot возвращает копию текущего состояния.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// supersedeLocked снимает интерес к предыдущему запросу: поднимает поколение,
// отменяет контекст выполняющегося вызова и стирает прошлый исход.
func (o *Orchestrator) supersedeLocked() {
	o.generation++
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.result = nil
	o.failReason = ""
}

func (o *Orchestrator) startAnalysisLocked(h string) {
	o.state = StateAnalyzing
	o.result = nil
	o.failReason = ""

	gen := o.generation
	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel

	go o.runAnalysis(ctx, gen, h)
}

// runAnalysis выполняет вызов анализатора и применяет исход, только если
// поколение не изменилось за время вызова.
func (o *Orchestrator) runAnalysis(ctx context.Context, gen uint64, h string) {
	result, err := o.gateway.Analyze(ctx, h)

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		o.log.Info("stale analysis result discarded",
			slog.String("handle", h),
			slog.Uint64("generation", gen))
		return
	}

	if err != nil {
		o.log.Error("analysis failed", slog.String("handle", h), sl.Err(err))
		o.state = StateFailed
		o.failReason = FailAnalysisFailed
		return
	}

	o.state = StateResolved
	o.result = result
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	return Snapshot{
		State:      o.state,
		Handle:     o.handle,
		Result:     o.result,
		FailReason: o.failReason,
		Generation: o.generation,
	}
}
