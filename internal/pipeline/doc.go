// Package pipeline turns command-line items into bracket plans.
//
// Discover expands the items into batches (one per folder, plus one for
// loose files). Run plans the batches concurrently on a bounded worker pool:
// each batch is sorted, grouped into brackets, collapsed for display and
// handed to the planner. Results come back in discovery order.
package pipeline
