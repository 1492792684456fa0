package game

import (
	"fmt"
	"io"
	"strings"
)

// RenderView writes a plain-text table of the view: one line per seat with
// "???" for slots the viewer does not know and "--" for eliminated ones.
func RenderView(w io.Writer, v ObfGameState) {
	knock := ""
	if v.Knocked {
		knock = "  KNOCKED"
	}
	top := "empty"
	if v.DiscardTop != nil {
		top = v.DiscardTop.Card
	}
	fmt.Fprintf(w, "turn %d  phase %s  draw %d  discard %d (top %s)%s\n",
		v.TurnNumber, v.Phase, v.DrawPileSize, v.DiscardSize, top, knock)

	for _, p := range v.Players {
		marker := "  "
		if p.IsCurrentTurn {
			marker = "> "
		}
		cells := make([]string, len(p.Slots))
		for i, s := range p.Slots {
			switch {
			case s.Empty:
				cells[i] = fmt.Sprintf("%d:--", i)
			case s.Known:
				cells[i] = fmt.Sprintf("%d:%s", i, s.Card)
			default:
				cells[i] = fmt.Sprintf("%d:???", i)
			}
		}
		name := p.Name
		if p.SeatID == v.ViewerID {
			name += " (you)"
		}
		fmt.Fprintf(w, "%sP%d %-14s [%s]  est %.1f", marker, p.Index, name, strings.Join(cells, " "), p.Estimate)
		if p.DrawnCard != nil {
			fmt.Fprintf(w, "  holding %s", p.DrawnCard.Card)
		}
		if p.HasKnocked {
			fmt.Fprint(w, "  (knocked)")
		}
		fmt.Fprintln(w)
	}

	if v.GameOver {
		fmt.Fprintf(w, "final scores: %v\n", v.Scores)
	} else if len(v.LegalActions) > 0 {
		fmt.Fprintf(w, "legal: %s\n", strings.Join(v.LegalActions, ", "))
	}
}
