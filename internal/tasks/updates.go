package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchResults Phase = iota
	RankResults
	FetchDetails
	RefreshShows
)

func (p Phase) String() string {
	switch p {
	case FetchResults:
		return "fetch_results"
	case RankResults:
		return "rank_results"
	case FetchDetails:
		return "fetch_details"
	case RefreshShows:
		return "refresh_shows"
	default:
		return ""
	}
}

// sendProgress sends an update without blocking. A nil channel disables reporting.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func searchingUpdate(query string) ProgressUpdate {
	return ProgressUpdate{Phase: FetchResults, Step: 1, Total: 1, Message: "Searching...", Data: query}
}

func loadingTrendingUpdate(page int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchResults,
		Step:    1,
		Total:   2,
		Message: "Loading trending shows...",
		Data:    page,
	}
}

func rankingUpdate(candidates int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RankResults,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Ranking %d shows by rating...", candidates),
	}
}

func detailsUpdate(id int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetails,
		Step:    1,
		Total:   1,
		Message: "Loading details...",
		Data:    id,
	}
}

func refreshStartedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshShows,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Refreshing %d favorites...", total),
	}
}

func refreshCompletedUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshShows,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, name),
	}
}

func refreshFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshShows,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
		Data:    err,
	}
}
