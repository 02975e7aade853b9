package download

// Stage identifies how far through the pipeline an item has progressed.
// Stages only ever advance.
type Stage int

const (
	StageQueued Stage = iota
	StageNormalizing
	StageMatching
	StageSkipCheck
	StageFetching
	StageDone
)

// String returns the lower-case stage name used in logs.
func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageNormalizing:
		return "normalizing"
	case StageMatching:
		return "matching"
	case StageSkipCheck:
		return "skip_check"
	case StageFetching:
		return "fetching"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}
