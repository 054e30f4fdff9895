package stats

// defaultSessionHours is the assumed duration when a session carries none.
const defaultSessionHours = 2.0

// Session status filter modes.
const (
	ModeAll       = "all"
	ModeActive    = "active"
	ModeCancelled = "cancelled"
)

// IsCancelled reports whether a session is a phantom slot: scheduled but with
// zero participation on both sides. Cancelled sessions are excluded from every
// aggregate except the raw cancelled count.
func IsCancelled(s Session) bool {
	return s.Children == 0 && s.VolunteerCount == 0 && len(s.Volunteers) == 0
}

// CountByStatus partitions a raw session collection into total/active/cancelled.
func CountByStatus(sessions []Session) SessionCounts {
	counts := SessionCounts{Total: len(sessions)}
	for _, s := range sessions {
		if IsCancelled(s) {
			counts.Cancelled++
		}
	}
	counts.Active = counts.Total - counts.Cancelled
	return counts
}

// FilterByStatus returns the sessions matching mode. Unknown modes behave
// like ModeAll.
func FilterByStatus(sessions []Session, mode string) []Session {
	switch mode {
	case ModeActive:
		out := make([]Session, 0, len(sessions))
		for _, s := range sessions {
			if !IsCancelled(s) {
				out = append(out, s)
			}
		}
		return out
	case ModeCancelled:
		var out []Session
		for _, s := range sessions {
			if IsCancelled(s) {
				out = append(out, s)
			}
		}
		return out
	default:
		return sessions
	}
}
