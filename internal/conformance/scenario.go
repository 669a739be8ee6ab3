package conformance

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oising/itc4net/itc"
)

// logger is the conformance package's diagnostic logger, mirroring the
// teacher harness's slog.Logger field: discarded by default so running
// the suite stays quiet, swappable via SetLogger for a caller that
// wants to see step-by-step progress and assertion failures.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger replaces the package's diagnostic logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Scenario defines a conformance test scenario: a sequence of steps
// driving one or more named participants through the itc kernel, plus
// assertions on the resulting causal relationships.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps is the ordered sequence of operations to perform.
	Steps []Step `yaml:"steps"`

	// Assertions validate causal relationships between participants
	// after all steps have run.
	Assertions []Assertion `yaml:"assertions"`
}

// Step represents one operation in a scenario's flow.
//
// Exactly one operation field should be set; which one determines the
// step's kind. Participant names referenced by a step that do not yet
// exist are implicitly seeded (Stamp = Seed()) on first use, except for
// "fork", "fork4" and "join", which must reference existing
// participants.
type Step struct {
	// Seed introduces a new participant at the canonical seed stamp.
	Seed string `yaml:"seed,omitempty"`

	// Fork splits Fork.From into two new named participants.
	Fork *ForkStep `yaml:"fork,omitempty"`

	// Fork4 splits Fork4.From into four new named participants.
	Fork4 *Fork4Step `yaml:"fork4,omitempty"`

	// Event inflates the named participant's own history.
	Event string `yaml:"event,omitempty"`

	// Send has From push an anonymous message onto the named queue.
	Send *SendStep `yaml:"send,omitempty"`

	// Receive has To pop the next message off the named queue and
	// merge it into its own stamp.
	Receive *ReceiveStep `yaml:"receive,omitempty"`

	// Join retires two participants' identities back into one, stored
	// under the first participant's name; the second name is removed.
	Join *JoinStep `yaml:"join,omitempty"`
}

// ForkStep names the source participant and the two names its children
// are stored under.
type ForkStep struct {
	From string `yaml:"from"`
	Into []string `yaml:"into"`
}

// Fork4Step names the source participant and the four names its
// children are stored under.
type Fork4Step struct {
	From string `yaml:"from"`
	Into []string `yaml:"into"`
}

// SendStep names the sending participant and the queue it pushes onto.
type SendStep struct {
	From  string `yaml:"from"`
	Queue string `yaml:"queue"`
}

// ReceiveStep names the queue to pop from and the receiving
// participant.
type ReceiveStep struct {
	Queue string `yaml:"queue"`
	To    string `yaml:"to"`
}

// JoinStep names the two participants to retire into one.
type JoinStep struct {
	Into string `yaml:"into"`
	From string `yaml:"from"`
}

// Assertion validates a causal relationship between two participants
// after a scenario's steps have run.
type Assertion struct {
	// Type is one of "leq", "equiv", "concurrent", "dominates".
	Type string `yaml:"type"`

	// A and B name the participants to compare.
	A string `yaml:"a"`
	B string `yaml:"b"`

	// Want is the expected boolean result of the comparison.
	Want bool `yaml:"want"`
}

// Assertion type constants.
const (
	AssertLeq        = "leq"
	AssertEquiv      = "equiv"
	AssertConcurrent = "concurrent"
	AssertDominates  = "dominates"
)

// LoadScenario reads and strictly parses a scenario YAML file, catching
// typos in field names the way a loose decode would silently swallow.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, s Step) error {
	set := 0
	if s.Seed != "" {
		set++
	}
	if s.Fork != nil {
		set++
		if s.Fork.From == "" || len(s.Fork.Into) != 2 {
			return fmt.Errorf("steps[%d].fork: from and two-element into are required", index)
		}
	}
	if s.Fork4 != nil {
		set++
		if s.Fork4.From == "" || len(s.Fork4.Into) != 4 {
			return fmt.Errorf("steps[%d].fork4: from and four-element into are required", index)
		}
	}
	if s.Event != "" {
		set++
	}
	if s.Send != nil {
		set++
		if s.Send.From == "" || s.Send.Queue == "" {
			return fmt.Errorf("steps[%d].send: from and queue are required", index)
		}
	}
	if s.Receive != nil {
		set++
		if s.Receive.Queue == "" || s.Receive.To == "" {
			return fmt.Errorf("steps[%d].receive: queue and to are required", index)
		}
	}
	if s.Join != nil {
		set++
		if s.Join.Into == "" || s.Join.From == "" {
			return fmt.Errorf("steps[%d].join: into and from are required", index)
		}
	}
	if set != 1 {
		return fmt.Errorf("steps[%d]: exactly one operation must be set, found %d", index, set)
	}
	return nil
}

func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case AssertLeq, AssertEquiv, AssertConcurrent, AssertDominates:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	if a.A == "" || a.B == "" {
		return fmt.Errorf("assertions[%d]: a and b are required", index)
	}
	return nil
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass indicates every assertion matched its Want.
	Pass bool

	// Failures names the assertions that did not match, in order.
	Failures []string

	// Stamps holds every named participant's final stamp, for golden
	// comparison.
	Stamps map[string]itc.Stamp
}

// Run executes a scenario's steps in order against a fresh set of
// participants, then evaluates its assertions.
func Run(scenario *Scenario) (*Result, error) {
	participants := map[string]itc.Stamp{}
	queues := map[string]*MessageQueue{}

	seedIfAbsent := func(name string) {
		if _, ok := participants[name]; !ok {
			participants[name] = itc.Seed()
		}
	}

	for i, step := range scenario.Steps {
		switch {
		case step.Seed != "":
			participants[step.Seed] = itc.Seed()

		case step.Fork != nil:
			parent, ok := participants[step.Fork.From]
			if !ok {
				return nil, fmt.Errorf("steps[%d]: fork.from %q is not a known participant", i, step.Fork.From)
			}
			a, b := parent.Fork()
			participants[step.Fork.Into[0]] = a
			participants[step.Fork.Into[1]] = b
			delete(participants, step.Fork.From)

		case step.Fork4 != nil:
			parent, ok := participants[step.Fork4.From]
			if !ok {
				return nil, fmt.Errorf("steps[%d]: fork4.from %q is not a known participant", i, step.Fork4.From)
			}
			a, b, c, d := parent.Fork4()
			participants[step.Fork4.Into[0]] = a
			participants[step.Fork4.Into[1]] = b
			participants[step.Fork4.Into[2]] = c
			participants[step.Fork4.Into[3]] = d
			delete(participants, step.Fork4.From)

		case step.Event != "":
			seedIfAbsent(step.Event)
			participants[step.Event] = participants[step.Event].Event()

		case step.Send != nil:
			seedIfAbsent(step.Send.From)
			s := participants[step.Send.From]
			s2, msg := s.Send()
			participants[step.Send.From] = s2
			q, ok := queues[step.Send.Queue]
			if !ok {
				q = NewMessageQueue()
				queues[step.Send.Queue] = q
			}
			q.Enqueue(msg)

		case step.Receive != nil:
			seedIfAbsent(step.Receive.To)
			q, ok := queues[step.Receive.Queue]
			if !ok {
				return nil, fmt.Errorf("steps[%d]: receive.queue %q has never been sent to", i, step.Receive.Queue)
			}
			msg, ok := q.TryDequeue()
			if !ok {
				return nil, fmt.Errorf("steps[%d]: receive.queue %q is empty", i, step.Receive.Queue)
			}
			merged, err := participants[step.Receive.To].Receive(msg.Stamp)
			if err != nil {
				return nil, fmt.Errorf("steps[%d]: receive: %w", i, err)
			}
			participants[step.Receive.To] = merged

		case step.Join != nil:
			into, ok := participants[step.Join.Into]
			if !ok {
				return nil, fmt.Errorf("steps[%d]: join.into %q is not a known participant", i, step.Join.Into)
			}
			from, ok := participants[step.Join.From]
			if !ok {
				return nil, fmt.Errorf("steps[%d]: join.from %q is not a known participant", i, step.Join.From)
			}
			joined, err := itc.Join(into, from)
			if err != nil {
				return nil, fmt.Errorf("steps[%d]: join: %w", i, err)
			}
			participants[step.Join.Into] = joined
			delete(participants, step.Join.From)
		}

		logger.Info("step completed", "scenario", scenario.Name, "index", i, "kind", stepKind(step))
	}

	result := &Result{Pass: true, Stamps: participants}
	for _, a := range scenario.Assertions {
		sa, ok := participants[a.A]
		if !ok {
			return nil, fmt.Errorf("assertion references unknown participant %q", a.A)
		}
		sb, ok := participants[a.B]
		if !ok {
			return nil, fmt.Errorf("assertion references unknown participant %q", a.B)
		}

		var got bool
		switch a.Type {
		case AssertLeq:
			got = sa.Leq(sb)
		case AssertEquiv:
			got = sa.Equiv(sb)
		case AssertConcurrent:
			got = sa.Concurrent(sb)
		case AssertDominates:
			got = sa.Dominates(sb)
		}

		if got != a.Want {
			result.Pass = false
			failure := fmt.Sprintf("%s(%s,%s): got %v, want %v", a.Type, a.A, a.B, got, a.Want)
			result.Failures = append(result.Failures, failure)
			logger.Warn("scenario assertion failed", "scenario", scenario.Name, "failure", failure)
		}
	}

	return result, nil
}

// stepKind names the operation a step performs, for diagnostic logging.
func stepKind(s Step) string {
	switch {
	case s.Seed != "":
		return "seed"
	case s.Fork != nil:
		return "fork"
	case s.Fork4 != nil:
		return "fork4"
	case s.Event != "":
		return "event"
	case s.Send != nil:
		return "send"
	case s.Receive != nil:
		return "receive"
	case s.Join != nil:
		return "join"
	default:
		return "unknown"
	}
}
