package exercise

import (
	"fmt"
	"strconv"
	"strings"
)

const refPrefix = "exercise_"

// Ref identifies an exercise by its skill and position in a recommendation.
type Ref struct {
	SkillID string
	Seq     int
}

// String renders the ref as "exercise_{skillID}_{seq}".
func (r Ref) String() string {
	return refPrefix + r.SkillID + "_" + strconv.Itoa(r.Seq)
}

// ParseRef parses the String form. The sequence is taken after the last
// underscore so skill ids may contain underscores.
func ParseRef(s string) (Ref, error) {
	rest, ok := strings.CutPrefix(s, refPrefix)
	if !ok {
		return Ref{}, fmt.Errorf("parse exercise ref %q: missing %q prefix", s, refPrefix)
	}
	i := strings.LastIndexByte(rest, '_')
	if i <= 0 {
		return Ref{}, fmt.Errorf("parse exercise ref %q: missing sequence", s)
	}
	seq, err := strconv.Atoi(rest[i+1:])
	if err != nil || seq < 0 {
		return Ref{}, fmt.Errorf("parse exercise ref %q: bad sequence", s)
	}
	return Ref{SkillID: rest[:i], Seq: seq}, nil
}
