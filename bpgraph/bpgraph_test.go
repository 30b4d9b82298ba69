package bpgraph_test

import (
	"testing"

	"github.com/katalvlaran/gridot/bpgraph"
	"github.com/stretchr/testify/assert"
)

func TestAddArcLinksOutAndInLists(t *testing.T) {
	g := bpgraph.New(2, 2)
	r0, r1 := g.RedNode(0), g.RedNode(1)
	b0, b1 := g.BlueNode(0), g.BlueNode(1)

	a0 := g.AddArc(r0, b0)
	a1 := g.AddArc(r0, b1)
	a2 := g.AddArc(r1, b0)

	assert.Equal(t, 3, g.ArcNum())
	assert.Equal(t, r0, g.Source(a1))
	assert.Equal(t, b1, g.Target(a1))

	// Out-list of r0 holds {a1, a0} in reverse-insertion (head-prepend) order.
	var outR0 []bpgraph.ArcID
	for a := g.FirstOut(r0); a != bpgraph.InvalidArc; a = g.NextOut(a) {
		outR0 = append(outR0, a)
	}
	assert.Equal(t, []bpgraph.ArcID{a1, a0}, outR0)

	// r1 has a single out-arc.
	assert.Equal(t, a2, g.FirstOut(r1))
	assert.Equal(t, bpgraph.InvalidArc, g.NextOut(a2))

	// In-list of b0 holds {a2, a0}.
	var inB0 []bpgraph.ArcID
	for a := g.FirstIn(b0); a != bpgraph.InvalidArc; a = g.NextIn(a) {
		inB0 = append(inB0, a)
	}
	assert.Equal(t, []bpgraph.ArcID{a2, a0}, inB0)
}

func TestClearArcsResetsHeadsAndCount(t *testing.T) {
	g := bpgraph.New(2, 2)
	g.AddArc(g.RedNode(0), g.BlueNode(0))
	g.AddArc(g.RedNode(1), g.BlueNode(1))
	require := assert.New(t)
	require.Equal(2, g.ArcNum())

	g.ClearArcs()
	require.Equal(0, g.ArcNum())
	require.Equal(bpgraph.InvalidArc, g.FirstOut(g.RedNode(0)))
	require.Equal(bpgraph.InvalidArc, g.FirstIn(g.BlueNode(1)))

	// Graph remains usable after clearing.
	a := g.AddArc(g.RedNode(1), g.BlueNode(0))
	require.Equal(bpgraph.ArcID(0), a)
}

func TestRedBlueClassification(t *testing.T) {
	g := bpgraph.New(3, 2)
	assert.True(t, g.IsRed(g.RedNode(2)))
	assert.False(t, g.IsRed(g.BlueNode(0)))
	assert.True(t, g.IsBlue(g.BlueNode(1)))
	assert.Equal(t, 5, g.NodeNum())
	assert.Equal(t, 1, g.BlueIndex(g.BlueNode(1)))
}
