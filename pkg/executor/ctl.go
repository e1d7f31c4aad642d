package executor

// The control word packs the run state in the high 3 bits and the worker
// count in the low 29 bits of one int32.
const (
	countBits = 29
	capacity  = (1 << countBits) - 1

	running    int32 = -1 << countBits
	shutdown   int32 = 0 << countBits
	stop       int32 = 1 << countBits
	tidying    int32 = 2 << countBits
	terminated int32 = 3 << countBits
)

func runStateOf(c int32) int32         { return c &^ capacity }
func workerCountOf(c int32) int32      { return c & capacity }
func ctlOf(rs, wc int32) int32         { return rs | wc }
func isRunning(c int32) bool           { return c < shutdown }
func runStateAtLeast(c, s int32) bool  { return c >= s }
func runStateLessThan(c, s int32) bool { return c < s }

// Phase is the lifecycle stage of a pool. Phases only move forward.
type Phase int32

const (
	PhaseRunning    = Phase(running)
	PhaseShutdown   = Phase(shutdown)
	PhaseStop       = Phase(stop)
	PhaseTidying    = Phase(tidying)
	PhaseTerminated = Phase(terminated)
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "Running"
	case PhaseShutdown:
		return "Shutdown"
	case PhaseStop:
		return "Stop"
	case PhaseTidying:
		return "Tidying"
	case PhaseTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Ordinal numbers the phases from -1 (Running) to 3 (Terminated).
func (p Phase) Ordinal() int {
	return int(int32(p) >> countBits)
}
