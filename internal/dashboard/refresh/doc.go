// Package refresh keeps the server-side state of every dashboard view.
//
// A View holds the last committed value of one view together with its
// source, error and update time. Refreshes may overlap; only the one that
// started last is allowed to commit. A Poller drives a view on a fixed
// interval, on Trigger bumps, or both.
package refresh
