// Package gridsearch explores a static grid graph between a start and a goal
// cell with one of four strategies: A*, Dijkstra, depth-first and
// breadth-first search.
//
// It exposes three ways to drive a search:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: advance the search one suspension step at a time to drive UIs
//     or debugging tools. Node state on the Graph is stable between steps.
//   - Driver: pace a Stepper with a fixed delay and an optional step budget.
//
// A Graph carries the per-node search state (g, h, f, connection and visual
// state). Only one search may own a Graph at a time; call Graph.Reset before
// starting the next one.
package gridsearch
