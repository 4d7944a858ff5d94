package graph

import (
	"container/heap"
	"sort"
)

// DegreeCentrality computes degree centrality for every node appearing in the
// edge list: the number of edges touching the node (in-degree + out-degree).
// Every edge increments exactly two tallies by one, so the values always sum
// to twice the edge count.
func DegreeCentrality(edges []Edge) map[string]int {
	centrality := make(map[string]int, len(edges)*2)
	for _, e := range edges {
		centrality[e.Source]++
		centrality[e.Target]++
	}
	return centrality
}

// RankedNode holds a node ranked by its degree centrality score.
type RankedNode struct {
	NodeID string `json:"node_id"`
	Degree int    `json:"degree"`
	Rank   int    `json:"rank"`
}

// rankedNodeHeap implements a min-heap for RankedNode by degree, with the
// lexicographically largest node ID at the root among equal degrees so that
// eviction order never depends on map iteration order.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool {
	if h[i].Degree != h[j].Degree {
		return h[i].Degree < h[j].Degree
	}
	return h[i].NodeID > h[j].NodeID
}
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopNodes returns the n highest-degree nodes using a min-heap, sorted by
// degree descending with node ID ascending as a deterministic tie-break.
func TopNodes(centrality map[string]int, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for nodeID, degree := range centrality {
		rn := RankedNode{NodeID: nodeID, Degree: degree}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if degree > h[0].Degree || (degree == h[0].Degree && nodeID < h[0].NodeID) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Degree != result[j].Degree {
			return result[i].Degree > result[j].Degree
		}
		return result[i].NodeID < result[j].NodeID
	})

	for i := range result {
		result[i].Rank = i + 1
	}

	return result
}
