package core

// Stage identifies one of the five phases an instruction passes through.
// Exactly one instruction is in flight at a time: it occupies every phase
// in order, and the next instruction is not fetched until it retires, so
// no hazard or forwarding logic exists anywhere in the model.
type Stage uint8

// Phases in execution order.
const (
	StageFetch Stage = iota
	StageDecode
	StageMemAccess
	StageExecute
	StageWriteback
)

// NumStages is the number of phases one instruction occupies.
const NumStages = 5

// String returns the phase mnemonic.
func (s Stage) String() string {
	switch s {
	case StageFetch:
		return "FETCH"
	case StageDecode:
		return "DECODE"
	case StageMemAccess:
		return "MEMACCESS"
	case StageExecute:
		return "EXECUTE"
	case StageWriteback:
		return "WRITEBACK"
	default:
		return "UNKNOWN"
	}
}
