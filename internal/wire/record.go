package wire

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// FormatVersion is the record version this build reads and writes.
const FormatVersion = 1

// Dimension bounds accepted from feeds. Anything larger is a broken or
// hostile record, not a playable maze.
const (
	MinDim = 1
	MaxDim = 256
)

// Skill tiers and difficulties carried by puzzle records.
var (
	SkillTiers   = []string{"beginner", "intermediate", "expert"}
	Difficulties = []string{"easy", "medium", "hard"}
)

// Record is one puzzle as it travels in a feed: header fields plus the two
// encoded payloads. Records are produced by the authoring tool, loaded once
// and never mutated.
type Record struct {
	V          int    `json:"v"`
	Alg        string `json:"alg"`
	W          int    `json:"w"`
	H          int    `json:"h"`
	Grid       string `json:"g"`
	Path       string `json:"p"`
	Len        int    `json:"L"`
	Hints      []int  `json:"hints,omitempty"`
	SkillTier  string `json:"skillTier,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// ParseRecord reads one feed line into a validated record.
func ParseRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, &FormatError{Reason: fmt.Sprintf("record is not valid JSON: %v", err)}
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Validate checks the header fields. Payloads are not decoded here; that
// happens when the puzzle is compiled.
func (r Record) Validate() error {
	if r.V != FormatVersion {
		return fmt.Errorf("wire: unsupported record version %d", r.V)
	}
	if r.W < MinDim || r.W > MaxDim || r.H < MinDim || r.H > MaxDim {
		return fmt.Errorf("wire: record dimensions %dx%d out of range", r.W, r.H)
	}
	if r.Len < 1 || r.Len > 4*r.W*r.H {
		return fmt.Errorf("wire: record solution length %d out of range", r.Len)
	}
	if r.Grid == "" || r.Path == "" {
		return fmt.Errorf("wire: record is missing a payload")
	}
	if r.SkillTier != "" && !contains(SkillTiers, r.SkillTier) {
		return fmt.Errorf("wire: unknown skill tier %q", r.SkillTier)
	}
	if r.Difficulty != "" && !contains(Difficulties, r.Difficulty) {
		return fmt.Errorf("wire: unknown difficulty %q", r.Difficulty)
	}
	return nil
}

// CleanHints returns the hint checkpoints sorted, deduplicated and clamped
// to [1, L].
func (r Record) CleanHints() []int {
	out := make([]int, 0, len(r.Hints))
	for _, h := range r.Hints {
		if h < 1 {
			h = 1
		}
		if h > r.Len {
			h = r.Len
		}
		out = append(out, h)
	}
	sort.Ints(out)
	dedup := out[:0]
	for i, h := range out {
		if i == 0 || h != out[i-1] {
			dedup = append(dedup, h)
		}
	}
	return dedup
}

// Fingerprint derives a stable short identity for the puzzle from the
// fields that define it. Records carry no explicit ID, so run results are
// keyed by this.
func (r Record) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d|%s|%s", r.Alg, r.W, r.H, r.Grid, r.Path)))
	return hex.EncodeToString(sum[:])[:12]
}

// MarshalLine renders the record as a single feed line without the trailing
// newline.
func (r Record) MarshalLine() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal record: %w", err)
	}
	return data, nil
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
