package wfcheck

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxCycleDepth bounds the DFS traversal path length CycleCheck
// uses when the caller doesn't supply its own bound.
const DefaultMaxCycleDepth = 4096

// ErrMaxCycleDepthExceeded is returned when a single DFS traversal path
// grows past the configured bound, guarding against a pathologically deep
// or malformed dependency graph rather than recursing unbounded.
var ErrMaxCycleDepthExceeded = errors.New("wfcheck: max cycle search depth exceeded")

// stepIDOf extracts a step id from a parameter id of shape
// "file://...#step/port" or "file://...#step": if the fragment (the part
// after '#') contains a '/', the step id is everything up to the last
// '/'; otherwise it is everything up to the '#'.
func stepIDOf(paramID string) string {
	hashIdx := strings.IndexByte(paramID, '#')
	if hashIdx < 0 {
		return paramID
	}
	frag := paramID[hashIdx+1:]
	if strings.Contains(frag, "/") {
		slash := strings.LastIndexByte(paramID, '/')
		return paramID[:slash]
	}
	return paramID[:hashIdx]
}

// dependencyTree builds the adjacency map (step id -> dependent step ids)
// that the cycle detector runs DFS over, per spec.md §4.F.
func dependencyTree(stepInputs []*Parameter) map[string][]string {
	adjacency := map[string][]string{}
	for _, sink := range stepInputs {
		if len(sink.Source) == 0 {
			continue
		}
		vertexOut := stepIDOf(sink.ID)
		for _, srcID := range sink.Source {
			vertexIn := stepIDOf(srcID)
			if !containsStr(adjacency[vertexIn], vertexOut) {
				adjacency[vertexIn] = append(adjacency[vertexIn], vertexOut)
			}
		}
		if _, ok := adjacency[vertexOut]; !ok {
			adjacency[vertexOut] = []string{}
		}
	}
	return adjacency
}

func containsStr(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// CycleCheck runs iterative DFS over the step dependency graph derived
// from step_inputs' source fields, reporting every distinct cycle found.
// Recursion depth is bounded by vertex count by construction (an explicit
// stack replaces the call stack), matching spec.md §5's preference for
// iterative traversal on deep graphs.
func CycleCheck(stepInputs []*Parameter) error {
	return CycleCheckDepth(stepInputs, DefaultMaxCycleDepth)
}

// CycleCheckDepth is CycleCheck bounded by maxDepth, the Go analogue of
// internal/config.CheckerConfig.MaxCycleDepth; the CLI passes the
// configured bound through here instead of the unconditional default.
func CycleCheckDepth(stepInputs []*Parameter, maxDepth int) error {
	adjacency := dependencyTree(stepInputs)

	vertices := make([]string, 0, len(adjacency))
	for v := range adjacency {
		vertices = append(vertices, v)
	}
	sort.Strings(vertices)

	processed := map[string]bool{}
	var cycles [][]string

	for _, v := range vertices {
		if !processed[v] {
			if err := iterativeDFS(adjacency, v, processed, &cycles, maxDepth); err != nil {
				return err
			}
		}
	}

	if len(cycles) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("The following steps have circular dependency:\n")
	parts := make([]string, len(cycles))
	for i, c := range cycles {
		parts[i] = fmt.Sprintf("%v", c)
	}
	b.WriteString(strings.Join(parts, "\n"))
	return errCycle{msg: b.String()}
}

type errCycle struct{ msg string }

func (e errCycle) Error() string { return e.msg }

type dfsFrame struct {
	vertex string
	idx    int
}

// iterativeDFS mirrors the reference implementation's recursive
// processDFS exactly, but with an explicit frame stack instead of the Go
// call stack: push a vertex onto both the frame stack and the traversal
// path, walk its neighbors one at a time, and on exhausting them mark the
// vertex processed and pop it. A neighbor already on the traversal path
// is a back-edge: the cycle is the path's suffix from that neighbor on.
// The traversal path is bounded by maxDepth, guarding against a
// pathologically deep dependency chain rather than growing path/stack
// without bound.
func iterativeDFS(adjacency map[string][]string, start string, processed map[string]bool, cycles *[][]string, maxDepth int) error {
	onPath := map[string]bool{start: true}
	path := []string{start}
	stack := []dfsFrame{{start, 0}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		neighbors := adjacency[top.vertex]
		if top.idx < len(neighbors) {
			next := neighbors[top.idx]
			top.idx++
			if onPath[next] {
				idx := indexOfStr(path, next)
				cycle := append([]string{}, path[idx:]...)
				*cycles = append(*cycles, cycle)
			} else if !processed[next] {
				if len(path) >= maxDepth {
					return ErrMaxCycleDepthExceeded
				}
				onPath[next] = true
				path = append(path, next)
				stack = append(stack, dfsFrame{next, 0})
			}
			continue
		}
		processed[top.vertex] = true
		onPath[top.vertex] = false
		path = path[:len(path)-1]
		stack = stack[:len(stack)-1]
	}
	return nil
}

func indexOfStr(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}
