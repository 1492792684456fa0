// Package game wraps an engine.GameState in a session: seats with identities,
// locking, agent turns, event fan-out and per-seat views.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hcarminati/Stool-Pidgeon/engine"
	"github.com/hcarminati/Stool-Pidgeon/engine/agent"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/cache"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/database"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/logging"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotYourTurn is returned when a seat submits out of turn.
	ErrNotYourTurn = fmt.Errorf("%w: not your turn", engine.ErrIllegalAction)
	// ErrNotStarted is returned before Start.
	ErrNotStarted = errors.New("game not started")
	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("game already started")
	// ErrGameOver is returned once the round has ended.
	ErrGameOver = errors.New("game over")
	// ErrUnknownSeat is returned for a seat ID not at this table.
	ErrUnknownSeat = errors.New("unknown seat")
)

// OnGameEndFunc is called, with the lock held, when the round ends.
type OnGameEndFunc func(gameID uuid.UUID, result models.GameResult)

// Options configures NewSession. Seats are seated in order: Seats[i] is
// engine player i.
type Options struct {
	Rules    engine.HouseRules
	Seats    []*models.Seat
	Policies map[uuid.UUID]agent.Policy // one per agent seat
	Logger   logrus.FieldLogger
	Actions  cache.ActionLog      // optional
	Results  database.ResultStore // optional
}

// Session is one round of Stool Pigeon between seated players.
type Session struct {
	ID    uuid.UUID
	Seats []*models.Seat
	Rules engine.HouseRules

	Engine   engine.GameState // authoritative state
	Started  bool
	GameOver bool
	Result   *models.GameResult

	Mu sync.Mutex

	BroadcastFn         func(ev GameEvent)                   // sends an event to every seat
	BroadcastToPlayerFn func(seatID uuid.UUID, ev GameEvent) // sends an event to one seat
	OnGameEnd           OnGameEndFunc

	log         logrus.FieldLogger
	policies    map[uint8]agent.Policy
	actions     cache.ActionLog
	results     database.ResultStore
	actionIndex int

	writes    chan func(ctx context.Context)
	writeDone chan struct{}
	closeOnce sync.Once
	closed    bool // guarded by Mu; set once writes is closed
}

// writeTimeout bounds each action-log or result write.
const writeTimeout = 2 * time.Second

// NewSession seats the players. Every agent seat needs a policy.
func NewSession(opts Options) (*Session, error) {
	n := len(opts.Seats)
	if n < 2 || n > engine.MaxPlayers {
		return nil, fmt.Errorf("need 2..%d seats, got %d", engine.MaxPlayers, n)
	}
	rules := opts.Rules
	if rules.NumPlayers == 0 {
		rules.NumPlayers = uint8(n)
	}
	if int(rules.NumPlayers) != n {
		return nil, fmt.Errorf("house rules expect %d players, got %d seats", rules.NumPlayers, n)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		ID:       uuid.New(),
		Seats:    opts.Seats,
		Rules:    rules,
		log:      opts.Logger,
		policies: make(map[uint8]agent.Policy),
		actions:  opts.Actions,
		results:  opts.Results,
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.log = s.log.WithField("game", s.ID.String()[:8])

	seen := make(map[uuid.UUID]bool, n)
	for i, seat := range opts.Seats {
		if seat == nil {
			return nil, fmt.Errorf("seat %d is nil", i)
		}
		if seen[seat.ID] {
			return nil, fmt.Errorf("seat %s listed twice", seat.ID)
		}
		seen[seat.ID] = true
		seat.Index = uint8(i)
		if seat.IsAgent() {
			p, ok := opts.Policies[seat.ID]
			if !ok || p == nil {
				return nil, fmt.Errorf("agent seat %q has no policy", seat.Name)
			}
			s.policies[uint8(i)] = p
		}
	}

	if s.actions != nil || s.results != nil {
		s.writes = make(chan func(ctx context.Context), 256)
		s.writeDone = make(chan struct{})
		go s.writer()
	}
	return s, nil
}

// Start deals the round. The seed fully determines the deal.
func (s *Session) Start(seed uint64) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.Started {
		return ErrAlreadyStarted
	}
	g, err := engine.NewGame(seed, s.Rules)
	if err != nil {
		return err
	}
	s.Engine = g
	s.Started = true
	s.log.WithField("seed", seed).Info("Game started.")
	s.logAction(-1, "game_start", map[string]interface{}{
		"seed":        seed,
		"fingerprint": s.Engine.Fingerprint(),
		"players":     len(s.Seats),
	})

	s.broadcastSyncStateToAll()
	s.broadcastPlayerTurn()
	return nil
}

// Submit applies a for the given seat. On error the state is unchanged and the
// seat receives a private_action_fail event.
func (s *Session) Submit(seatID uuid.UUID, a engine.Action) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.submit(seatID, a)
}

// submit assumes lock is held by caller.
func (s *Session) submit(seatID uuid.UUID, a engine.Action) error {
	seat, err := s.seatByID(seatID)
	if err != nil {
		return err
	}
	entry := s.log.WithFields(logrus.Fields{"seat": seat.Name, "phase": s.Engine.Phase.String(), "action": a.String()})
	switch {
	case !s.Started:
		err = ErrNotStarted
	case s.GameOver:
		err = ErrGameOver
	case seat.Index != s.Engine.ActingPlayer():
		err = ErrNotYourTurn
	}
	if err == nil {
		pre := preAction{phase: s.Engine.Phase, player: s.Engine.CurrentPlayer, turn: s.Engine.TurnNumber}
		if err = s.Engine.ApplyAction(a); err == nil {
			entry.Debug("Action applied.")
			s.afterAction(pre)
			return nil
		}
	}

	entry.WithError(err).Warn("Action rejected.")
	s.fireEventToPlayer(seatID, GameEvent{
		Type:    EventPrivateActionFail,
		Payload: map[string]interface{}{"message": err.Error(), "action": a.String()},
	})
	return err
}

// afterAction fans out events and either ends the round or announces the next
// turn. Assumes lock is held by caller.
func (s *Session) afterAction(pre preAction) {
	s.emitEventsForAction(pre)
	if s.Engine.IsTerminal() {
		s.endGame()
		return
	}
	s.broadcastSyncStateToAll()
	if s.Engine.TurnNumber != pre.turn {
		s.broadcastPlayerTurn()
	}
}

// RunAgents plays agent turns until a human must act or the round ends. It
// returns the number of actions the agents applied.
func (s *Session) RunAgents(ctx context.Context) (int, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if !s.Started {
		return 0, ErrNotStarted
	}
	n := 0
	for !s.GameOver {
		p := s.Engine.ActingPlayer()
		policy, ok := s.policies[p]
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		view := s.Engine.ViewFor(p)
		a, err := policy.ChooseAction(&view)
		if err != nil {
			return n, fmt.Errorf("agent %s: %w", s.Seats[p].Name, err)
		}
		if err := s.submit(s.Seats[p].ID, a); err != nil {
			return n, fmt.Errorf("agent %s: %w", s.Seats[p].Name, err)
		}
		n++
	}
	return n, nil
}

// LegalActions returns what the seat may submit now; empty when it is not the
// seat's turn.
func (s *Session) LegalActions(seatID uuid.UUID) ([]engine.Action, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	seat, err := s.seatByID(seatID)
	if err != nil {
		return nil, err
	}
	if !s.Started {
		return nil, ErrNotStarted
	}
	if s.GameOver || seat.Index != s.Engine.ActingPlayer() {
		return nil, nil
	}
	return s.Engine.LegalActions(), nil
}

// CurrentSeat returns the seat that must act next.
func (s *Session) CurrentSeat() *models.Seat {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.Seats[s.Engine.ActingPlayer()]
}

// seatByID assumes lock is held by caller.
func (s *Session) seatByID(id uuid.UUID) (*models.Seat, error) {
	for _, seat := range s.Seats {
		if seat.ID == id {
			return seat, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSeat, id)
}

// endGame scores the round, announces it and persists the result.
// Assumes lock is held by caller.
func (s *Session) endGame() {
	if s.GameOver {
		return
	}
	s.GameOver = true
	g := &s.Engine

	scores := g.Scores()
	names := make([]string, len(s.Seats))
	for i, seat := range s.Seats {
		names[i] = seat.Name
	}
	result := models.GameResult{
		ID:          uuid.New(),
		GameID:      s.ID,
		Seats:       names,
		Scores:      scores,
		WinnerIndex: -1,
		KnockedBy:   int(g.KnockedBy),
		Turns:       int(g.TurnNumber),
		Fingerprint: g.Fingerprint(),
	}
	ev := GameEvent{
		Type: EventGameEnd,
		Payload: map[string]interface{}{
			"seats":  names,
			"scores": scores,
			"hands":  s.revealedHands(),
		},
	}
	if w, ok := g.Winner(); ok {
		result.WinnerIndex = int(w)
		ev.User = s.eventUser(w)
	}
	s.Result = &result

	s.fireEvent(ev)
	s.broadcastSyncStateToAll()
	s.logAction(-1, string(EventGameEnd), map[string]interface{}{"scores": scores, "winner": result.WinnerIndex})
	s.log.WithFields(logrus.Fields{"scores": scores, "winner": result.WinnerIndex, "turns": result.Turns}).Info("Game ended.")

	if s.results != nil {
		s.enqueue(func(ctx context.Context) {
			if err := s.results.InsertResult(ctx, result); err != nil {
				s.log.WithError(err).Error("Failed storing result.")
			}
		})
	}
	if s.OnGameEnd != nil {
		s.OnGameEnd(s.ID, result)
	}
}

// revealedHands lists every hand face up, for the game_end event.
func (s *Session) revealedHands() [][]string {
	out := make([][]string, len(s.Engine.Players))
	for p, pl := range s.Engine.Players {
		out[p] = make([]string, len(pl.Hand))
		for i, c := range pl.Hand {
			out[p][i] = c.String()
		}
	}
	return out
}

// broadcastPlayerTurn assumes lock is held by caller.
func (s *Session) broadcastPlayerTurn() {
	s.fireEvent(GameEvent{Type: EventGamePlayerTurn, User: s.eventUser(s.Engine.ActingPlayer())})
}

// sendSyncState assumes lock is held by caller.
func (s *Session) sendSyncState(seat *models.Seat) {
	st := s.obfuscatedState(seat.Index)
	s.fireEventToPlayer(seat.ID, GameEvent{Type: EventPrivateSyncState, State: &st})
}

// broadcastSyncStateToAll assumes lock is held by caller.
func (s *Session) broadcastSyncStateToAll() {
	if s.BroadcastToPlayerFn == nil {
		return
	}
	for _, seat := range s.Seats {
		s.sendSyncState(seat)
	}
}

// logAction queues an action record for the action log. Actor is the engine
// player index, or -1 for game events. Assumes lock is held by caller.
func (s *Session) logAction(actor int, actionType string, payload map[string]interface{}) {
	s.actionIndex++
	if s.actions == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	rec := cache.ActionRecord{
		GameID:        s.ID,
		ActionIndex:   s.actionIndex,
		Actor:         actor,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	s.enqueue(func(ctx context.Context) {
		if err := s.actions.Append(ctx, rec); err != nil {
			s.log.WithError(err).WithField("index", rec.ActionIndex).Error("Failed publishing action.")
		}
	})
}

// enqueue hands job to the writer. Writes queued after Close are dropped.
// Assumes lock is held by caller.
func (s *Session) enqueue(job func(ctx context.Context)) {
	if s.closed || s.writes == nil {
		s.log.Debug("Session closed, dropping storage write.")
		return
	}
	s.writes <- job
}

// writer runs queued storage writes in order, off the game lock's critical
// path.
func (s *Session) writer() {
	defer close(s.writeDone)
	for job := range s.writes {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		job(ctx)
		cancel()
	}
}

// Close flushes pending action-log and result writes. Actions submitted
// afterwards still apply, but nothing more is written to storage.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.Mu.Lock()
		s.closed = true
		if s.writes != nil {
			close(s.writes)
		}
		s.Mu.Unlock()
		if s.writeDone != nil {
			<-s.writeDone
		}
	})
}
