package vm

import "github.com/deepnoodle-ai/loxvm/op"

// StepMode controls when OnStep callbacks are triggered.
type StepMode uint8

const (
	// StepAll calls OnStep for every instruction.
	// Use for: detailed tracing, instruction-level debugging.
	StepAll StepMode = iota

	// StepNone never calls OnStep.
	StepNone

	// StepSampled calls OnStep every N instructions.
	// Use for: statistical profiling.
	StepSampled

	// StepOnLine calls OnStep when the source line changes.
	// Use for: coverage tools, line-level debugging.
	StepOnLine
)

// ObserverConfig specifies what events an observer wants to receive.
type ObserverConfig struct {
	// StepMode controls OnStep callback frequency.
	StepMode StepMode

	// SampleInterval is the number of instructions between OnStep calls
	// when StepMode is StepSampled. Values <= 0 are treated as 1.
	// Ignored for other modes.
	SampleInterval int
}

// NewObserverConfig creates a config for the given mode.
func NewObserverConfig(mode StepMode) ObserverConfig {
	return ObserverConfig{
		StepMode:       mode,
		SampleInterval: 1000,
	}
}

// NormalizeConfig validates and clamps config values.
func NormalizeConfig(cfg ObserverConfig) ObserverConfig {
	if cfg.StepMode == StepSampled && cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 1
	}
	return cfg
}

// Observer watches a VM execute instructions. It can be used for tracing,
// coverage, or stepping through a chunk one instruction at a time.
//
// Observer methods are called synchronously during execution.
// Implementations should be fast to avoid impacting performance.
type Observer interface {
	// Config returns the observer's configuration.
	// Called once when the observer is attached to the VM.
	Config() ObserverConfig

	// OnStep is called before an instruction executes, based on the
	// StepMode in the observer's config.
	// Returns false to halt execution immediately.
	OnStep(event StepEvent) bool
}

// StepEvent contains information about a single instruction step.
type StepEvent struct {
	// IP is the index of the instruction about to execute.
	IP int

	// Opcode is the operation being executed.
	Opcode op.Code

	// OpcodeName is the human-readable name of the opcode.
	OpcodeName string

	// Operand is the instruction operand, if the opcode takes one.
	Operand int

	// Line is the source line of the instruction.
	Line int

	// StackDepth is the depth of the value stack before the instruction runs.
	StackDepth int
}

// NoOpObserver is an Observer that observes every step and never halts.
// Embed it to implement only the methods you need.
type NoOpObserver struct{}

func (NoOpObserver) Config() ObserverConfig {
	return NewObserverConfig(StepAll)
}

func (NoOpObserver) OnStep(StepEvent) bool { return true }

// Ensure NoOpObserver implements Observer.
var _ Observer = NoOpObserver{}
