package engine

import "fmt"

// ApplyAction validates a and applies it to the state. On error the state is
// unchanged. Errors wrap ErrInvalidTarget, ErrResourceExhausted or
// ErrIllegalAction, checked in that order after the terminal check.
func (g *GameState) ApplyAction(a Action) error {
	if g.IsTerminal() {
		return fmt.Errorf("%w: round is over", ErrIllegalAction)
	}
	if a.Kind >= numActionKinds {
		return fmt.Errorf("%w: unknown action kind %d", ErrIllegalAction, a.Kind)
	}
	a = a.normalize()
	if err := g.checkTargets(a); err != nil {
		return err
	}
	if g.needsSupply(a) && !g.canSupplyCard() {
		return fmt.Errorf("%w: draw pile empty and discard pile cannot be reshuffled", ErrResourceExhausted)
	}
	if !g.IsLegal(a) {
		return fmt.Errorf("%w: %s in phase %s", ErrIllegalAction, a, g.Phase)
	}

	g.LastAction = LastActionInfo{
		Action:   a,
		Actor:    g.CurrentPlayer,
		Revealed: EmptyCard,
		Moved:    EmptyCard,
	}

	switch a.Kind {
	case ActDrawPile:
		g.drawPile()
	case ActDrawDiscard:
		g.drawDiscard()
	case ActKeep:
		g.keep(a.Target)
	case ActDiscard:
		g.discardDrawn()
	case ActKnock:
		g.knock()
	case ActPeek:
		g.peek(a.Target)
	case ActSwap:
		g.swap(a.Target, a.Second)
	case ActPigeonSwap:
		g.pigeonSwap(a.Target)
	case ActKingpinChooseEliminate:
		g.Phase = PhaseKingpinEliminate
	case ActKingpinChooseAdd:
		g.Phase = PhaseKingpinAdd
	case ActKingpinEliminate:
		g.eliminate(a.Target)
	case ActKingpinAdd:
		g.kingpinAdd(a.Target.Player)
	case ActSkipEffect:
		g.advanceEffect()
	default:
		return fmt.Errorf("%w: unhandled action kind %d", ErrIllegalAction, a.Kind)
	}

	g.syncFaceUp()
	return nil
}

// checkTargets rejects references to missing players, out-of-range slots and
// empty slots.
func (g *GameState) checkTargets(a Action) error {
	for _, ref := range a.slotRefs() {
		if !g.validRef(ref) {
			return fmt.Errorf("%w: slot %s out of range", ErrInvalidTarget, ref)
		}
		if g.cardAt(ref) == EmptyCard {
			return fmt.Errorf("%w: slot %s is empty", ErrInvalidTarget, ref)
		}
	}
	if a.Kind == ActKingpinAdd && int(a.Target.Player) >= len(g.Players) {
		return fmt.Errorf("%w: player %d out of range", ErrInvalidTarget, a.Target.Player)
	}
	return nil
}

// needsSupply reports whether a, in the current phase, must take a card from
// the draw pile.
func (g *GameState) needsSupply(a Action) bool {
	return (a.Kind == ActKingpinChooseAdd && g.Phase == PhaseKingpinChoose) ||
		(a.Kind == ActKingpinAdd && g.Phase == PhaseKingpinAdd)
}

// decidePhase is where a fresh draw lands: FINAL_TURN once someone knocked.
func (g *GameState) decidePhase() Phase {
	if g.IsKnocked() {
		return PhaseFinalTurn
	}
	return PhaseDecide
}

// drawPile pops the top of the draw pile into the drawn slot.
func (g *GameState) drawPile() {
	if len(g.DrawPile) == 0 {
		g.attemptReshuffle()
	}
	c := g.popDraw()
	g.LastAction.Revealed = c

	if g.Rules.EffectTrigger == TriggerOnDraw && c.IsAction() {
		g.pushDiscard(c)
		g.LastAction.Moved = c
		g.startEffect(c.Type())
		return
	}
	g.DrawnCard = c
	g.DrawnFrom = DrawnFromPile
	g.Phase = g.decidePhase()
}

// drawDiscard pops the top of the discard pile into the drawn slot.
func (g *GameState) drawDiscard() {
	c := g.popDiscard()
	g.LastAction.Revealed = c
	g.DrawnCard = c
	g.DrawnFrom = DrawnFromDiscard
	g.Phase = g.decidePhase()
}

// keep swaps the drawn card into ref and discards the card it replaces.
func (g *GameState) keep(ref SlotRef) {
	me := g.CurrentPlayer
	old := g.cardAt(ref)
	g.setCard(ref, g.DrawnCard)
	g.pushDiscard(old)
	g.LastAction.Moved = old

	// Only the actor sees where the card went, whichever pile it came from.
	g.forgetAll(ref)
	g.observe(me, ref)
	g.endTurn()
}

// discardDrawn puts the drawn card on the discard pile. An action card starts
// its effect; anything else ends the turn.
func (g *GameState) discardDrawn() {
	c := g.DrawnCard
	g.pushDiscard(c)
	g.LastAction.Moved = c
	if c.IsAction() {
		g.startEffect(c.Type())
		return
	}
	g.endTurn()
}

// knock freezes the round. The drawn card is discarded without effect.
func (g *GameState) knock() {
	c := g.DrawnCard
	g.pushDiscard(c)
	g.LastAction.Moved = c
	g.KnockedBy = int8(g.CurrentPlayer)
	g.TurnsSinceKnock = 0
	g.endTurn()
}

// endTurn clears the in-flight card and effect, then either ends the round or
// passes the turn. An empty draw pile is refilled from the discard pile
// here; when that is impossible the round ends.
func (g *GameState) endTurn() {
	g.DrawnCard = EmptyCard
	g.DrawnFrom = DrawnFromNone
	g.PendingEffect = TypeNone
	g.TurnNumber++

	if g.IsKnocked() {
		if g.CurrentPlayer != uint8(g.KnockedBy) {
			g.TurnsSinceKnock++
		}
		if g.TurnsSinceKnock >= g.NumPlayers()-1 {
			g.Phase = PhaseGameOver
			return
		}
	}
	if g.Rules.MaxTurns > 0 && g.TurnNumber >= g.Rules.MaxTurns {
		g.Phase = PhaseGameOver
		return
	}

	g.CurrentPlayer = g.NextPlayer(g.CurrentPlayer)
	g.Phase = PhaseDraw
	if len(g.DrawPile) == 0 && !g.attemptReshuffle() {
		g.Phase = PhaseGameOver
	}
}
