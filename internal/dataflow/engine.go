package dataflow

import (
	"github.com/tliron/commonlog"
	"gonum.org/v1/gonum/graph"

	"github.com/QiuFeng54321/compiler-backend/internal/lattice"
)

var log = commonlog.GetLogger("dataflow")

// Direction states which transfer function an analysis implements.
// Calling the other one is a programming error and panics.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// AnalysisNode is a graph node exposing in/out fact slots for fact type L.
// It decouples the solver from the concrete block layout.
type AnalysisNode[L any] interface {
	graph.Node
	GetIn() L
	SetIn(L)
	GetOut() L
	SetOut(L)
}

// Transfer is the per-block contract an analysis supplies. Top and Bottom
// are the lattice extremes sized for the graph; EntryOut and ExitIn are
// the boundary facts at the graph's entry and exit. An analysis implements
// the transfer function of its direction only; the opposite one panics by
// contract.
type Transfer[L lattice.SemiLattice[L], N graph.Node, W any] interface {
	Direction() Direction
	TransferForward(n N, in L, g *Graph[N, W]) L
	TransferBackward(n N, out L, g *Graph[N, W]) L
	EntryOut(g *Graph[N, W]) L
	ExitIn(g *Graph[N, W]) L
	Top(g *Graph[N, W]) L
	Bottom(g *Graph[N, W]) L
}

// Solve runs the worklist fixed point over g and returns the number of
// node visits it took to converge. Termination is guaranteed for monotone
// transfer functions over a finite-height lattice: each visit either
// leaves a node's fact unchanged or moves it strictly down the lattice.
//
// Forward: a node's in is the meet of its predecessors' outs (the entry
// node additionally meets EntryOut), and out = TransferForward(in).
// Backward mirrors this with successors and ExitIn.
func Solve[L lattice.SemiLattice[L], N AnalysisNode[L], W any](
	g *Graph[N, W], t Transfer[L, N, W], entry N,
) int {
	order := g.ReversePostorder(entry)
	for _, n := range order {
		n.SetIn(t.Top(g))
		n.SetOut(t.Top(g))
	}

	queue := make([]N, len(order))
	copy(queue, order)
	queued := make(map[int64]bool, len(order))
	for _, n := range order {
		queued[n.ID()] = true
	}

	forward := t.Direction() == Forward
	visits := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		queued[n.ID()] = false
		visits++

		var changed bool
		if forward {
			in := t.Top(g)
			if n.ID() == entry.ID() {
				in = t.EntryOut(g)
			}
			for _, pred := range g.Preds(n) {
				in.MeetWith(pred.GetOut())
			}
			n.SetIn(in)
			changed = n.GetOut().MeetWith(t.TransferForward(n, in, g))
		} else {
			out := t.Top(g)
			if len(g.Succs(n)) == 0 {
				out = t.ExitIn(g)
			}
			for _, succ := range g.Succs(n) {
				out.MeetWith(succ.GetIn())
			}
			n.SetOut(out)
			changed = n.GetIn().MeetWith(t.TransferBackward(n, out, g))
		}

		if !changed {
			continue
		}
		next := g.Succs(n)
		if !forward {
			next = g.Preds(n)
		}
		for _, m := range next {
			if !queued[m.ID()] {
				queued[m.ID()] = true
				queue = append(queue, m)
			}
		}
	}

	log.Debugf("fixed point reached after %d node visits over %d nodes", visits, g.Len())
	return visits
}
