package core

import "fmt"

// FunctionSummary describes a Lambda function as listed by the provider.
type FunctionSummary struct {
	Name       string `json:"name"`
	ARN        string `json:"arn"`
	Runtime    string `json:"runtime"`
	MemorySize int32  `json:"memory"`
	Timeout    int32  `json:"timeout"`
}

// MetricSeries is one CloudWatch metric bucketed over a fixed window.
// Timestamps and Values always have the same length.
type MetricSeries struct {
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	Timestamps []int64   `json:"timestamps"`
	Values     []float64 `json:"values"`
}

// Len returns the number of points in the series.
func (m MetricSeries) Len() int {
	return len(m.Values)
}

// Max returns the largest value, or 0 for an empty series.
func (m MetricSeries) Max() float64 {
	var max float64
	for i, v := range m.Values {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// Sum returns the sum of all values.
func (m MetricSeries) Sum() float64 {
	var sum float64
	for _, v := range m.Values {
		sum += v
	}
	return sum
}

// Last returns the most recent value, or 0 for an empty series.
func (m MetricSeries) Last() float64 {
	if len(m.Values) == 0 {
		return 0
	}
	return m.Values[len(m.Values)-1]
}

func (m MetricSeries) clone() MetricSeries {
	m.Timestamps = append([]int64(nil), m.Timestamps...)
	m.Values = append([]float64(nil), m.Values...)
	return m
}

// TriggerState is the enabled flag of a trigger.
type TriggerState int

const (
	TriggerDisabled TriggerState = iota
	TriggerEnabled
)

func (s TriggerState) String() string {
	if s == TriggerEnabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// ParseTriggerState maps an upstream status string to a TriggerState.
// Anything that is not explicitly enabled is treated as disabled.
func ParseTriggerState(status string) TriggerState {
	switch status {
	case "Enabled", "ENABLED", "ENABLED_WITH_ALL_CLOUDTRAIL_MANAGEMENT_EVENTS":
		return TriggerEnabled
	default:
		return TriggerDisabled
	}
}

// TriggerMapping is an event source that invokes a function. The set of
// implementations is closed: QueueTrigger, StreamTrigger and BusTrigger.
type TriggerMapping interface {
	Name() string
	TypeLabel() string
	BatchSize() (int32, bool)
	BatchWindow() (int32, bool)
	State() TriggerState
	isTrigger()
}

// QueueTrigger is an SQS event source mapping.
type QueueTrigger struct {
	QueueName string
	Size      int32
	Window    int32
	Status    TriggerState
}

func (t QueueTrigger) Name() string               { return t.QueueName }
func (t QueueTrigger) TypeLabel() string          { return "SQS" }
func (t QueueTrigger) BatchSize() (int32, bool)   { return t.Size, true }
func (t QueueTrigger) BatchWindow() (int32, bool) { return t.Window, true }
func (t QueueTrigger) State() TriggerState        { return t.Status }
func (QueueTrigger) isTrigger()                   {}

// StreamTrigger is a Kinesis or DynamoDB stream event source mapping.
type StreamTrigger struct {
	Source     string // "Kinesis" or "DynamoDB"
	StreamName string
	Size       int32
	Window     int32
	Status     TriggerState
}

func (t StreamTrigger) Name() string               { return t.StreamName }
func (t StreamTrigger) TypeLabel() string          { return t.Source }
func (t StreamTrigger) BatchSize() (int32, bool)   { return t.Size, true }
func (t StreamTrigger) BatchWindow() (int32, bool) { return t.Window, true }
func (t StreamTrigger) State() TriggerState        { return t.Status }
func (StreamTrigger) isTrigger()                   {}

// BusTrigger is an EventBridge rule targeting the function.
type BusTrigger struct {
	RuleName string
	EventBus string
	Status   TriggerState
}

func (t BusTrigger) Name() string { return t.RuleName }

func (t BusTrigger) TypeLabel() string {
	bus := t.EventBus
	if bus == "" {
		bus = "default"
	}
	return fmt.Sprintf("EventBridge (%s)", bus)
}

func (t BusTrigger) BatchSize() (int32, bool)   { return 0, false }
func (t BusTrigger) BatchWindow() (int32, bool) { return 0, false }
func (t BusTrigger) State() TriggerState        { return t.Status }
func (BusTrigger) isTrigger()                   {}
