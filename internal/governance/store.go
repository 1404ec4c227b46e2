package governance

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Store supplies the effective policy for an activity.
type Store interface {
	// GetEffectivePolicy returns the merged global+activity policy.
	// Implementations must be safe for concurrent use.
	GetEffectivePolicy(ctx context.Context, activityID string) (Policy, error)
}

// policyDoc is the YAML wire form of one policy block.
type policyDoc struct {
	MaxHelpLevel           string             `yaml:"max_help_level"`
	BlockCompleteSolutions bool               `yaml:"block_complete_solutions"`
	RiskThresholds         map[string]float64 `yaml:"risk_thresholds"`
	Version                string             `yaml:"version"`
}

// policyFile is the YAML document layout: one global block plus per-activity
// overrides.
type policyFile struct {
	Global     policyDoc            `yaml:"global"`
	Activities map[string]policyDoc `yaml:"activities"`
}

// merge overlays an activity block on this one, field by field. Merging
// happens at the wire layer because only here is "unset" distinguishable:
// an empty max_help_level keeps the base value, while an explicit
// "none" overrides it. The bool can only tighten; an activity cannot
// relax a base block_complete_solutions.
func (d policyDoc) merge(over policyDoc) policyDoc {
	out := d
	if over.MaxHelpLevel != "" {
		out.MaxHelpLevel = over.MaxHelpLevel
	}
	if over.BlockCompleteSolutions {
		out.BlockCompleteSolutions = true
	}
	if len(over.RiskThresholds) > 0 {
		merged := make(map[string]float64, len(d.RiskThresholds)+len(over.RiskThresholds))
		for k, v := range d.RiskThresholds {
			merged[k] = v
		}
		for k, v := range over.RiskThresholds {
			merged[k] = v
		}
		out.RiskThresholds = merged
	}
	if over.Version != "" {
		out.Version = over.Version
	}
	return out
}

// defaultDoc is the wire form of Default(), overlaid under a global block
// that configures nothing.
func defaultDoc() policyDoc {
	return policyDoc{
		MaxHelpLevel:           "guided",
		BlockCompleteSolutions: true,
		Version:                "default",
	}
}

// FileStore reads policies from a YAML file and caches the effective policy
// per activity with a bounded TTL. Read-only: the core never writes back.
type FileStore struct {
	path string
	ttl  time.Duration

	mu    sync.Mutex
	cache map[string]cachedPolicy
}

type cachedPolicy struct {
	policy   Policy
	loadedAt time.Time
}

// DefaultTTL bounds policy staleness.
const DefaultTTL = 5 * time.Minute

// NewFileStore creates a policy store over the YAML file at path.
// ttl <= 0 means DefaultTTL.
func NewFileStore(path string, ttl time.Duration) *FileStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{
		path:  path,
		ttl:   ttl,
		cache: make(map[string]cachedPolicy),
	}
}

// GetEffectivePolicy loads, merges and caches the policy for activityID.
// Callers are expected to fall back to Restrictive() on error (fail-closed).
func (s *FileStore) GetEffectivePolicy(_ context.Context, activityID string) (Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cache[activityID]; ok && time.Since(c.loadedAt) < s.ttl {
		return c.policy, nil
	}

	pol, err := s.load(activityID)
	if err != nil {
		return Restrictive(), err
	}

	s.cache[activityID] = cachedPolicy{policy: pol, loadedAt: time.Now()}
	return pol, nil
}

func (s *FileStore) load(activityID string) (Policy, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}

	var doc policyFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Policy{}, fmt.Errorf("parse policy file: %w", err)
	}

	// An empty global block still blocks solutions by default.
	if doc.Global.MaxHelpLevel == "" && !doc.Global.BlockCompleteSolutions {
		doc.Global = defaultDoc().merge(doc.Global)
	}

	effective := doc.Global
	if act, ok := doc.Activities[activityID]; ok {
		effective = doc.Global.merge(act)
	}

	pol, err := effective.toPolicy(activityID)
	if err != nil {
		return Policy{}, fmt.Errorf("policy for activity %q: %w", activityID, err)
	}
	return pol, nil
}

func (d policyDoc) toPolicy(activityID string) (Policy, error) {
	pol := Policy{
		ActivityID:             activityID,
		BlockCompleteSolutions: d.BlockCompleteSolutions,
		RiskThresholds:         d.RiskThresholds,
		Version:                d.Version,
	}
	if d.MaxHelpLevel != "" {
		level, err := ParseHelpLevel(d.MaxHelpLevel)
		if err != nil {
			return Policy{}, err
		}
		pol.MaxHelpLevel = level
	}
	return pol, nil
}

// StaticStore returns a fixed policy for every activity. Used in tests and
// in single-policy deployments.
type StaticStore struct {
	Policy Policy
	Err    error
}

func (s *StaticStore) GetEffectivePolicy(context.Context, string) (Policy, error) {
	if s.Err != nil {
		return Restrictive(), s.Err
	}
	return s.Policy, nil
}
