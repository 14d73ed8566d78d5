// Package taskname formats and parses task-name identifiers.
//
// A task name follows the grammar `<taskPrefix>_<generation>_<randomSuffix>`.
// taskPrefix may itself contain underscores, so parsers split on the last
// two underscores from the right rather than the first two.
package taskname

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format builds a task name from its components.
func Format(taskPrefix string, generation int64, randomSuffix string) string {
	return fmt.Sprintf("%s_%d_%s", taskPrefix, generation, randomSuffix)
}

// NewSuffix returns a fresh random suffix suitable for Format.
func NewSuffix() string {
	var buf [6]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand on a supported platform does not fail; if it ever
		// does, a non-random but still unique-enough fallback keeps task
		// minting from panicking mid-rebalance.
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}

	return hex.EncodeToString(buf[:])
}

// Next formats the successor name for taskPrefix at generation+1 with a
// freshly minted random suffix.
func Next(taskPrefix string, generation int64) string {
	return Format(taskPrefix, generation+1, NewSuffix())
}

// Parsed holds the decomposed fields of a task name.
type Parsed struct {
	TaskPrefix   string
	Generation   int64
	RandomSuffix string
}

// Parse decomposes a task name produced by Format.
//
// It splits on the last two underscores from the right so that taskPrefix
// values containing underscores parse correctly.
func Parse(name string) (Parsed, error) {
	lastUnderscore := strings.LastIndexByte(name, '_')
	if lastUnderscore < 0 {
		return Parsed{}, fmt.Errorf("taskname: %q is not a valid task name", name)
	}

	rest := name[:lastUnderscore]
	suffix := name[lastUnderscore+1:]

	secondLastUnderscore := strings.LastIndexByte(rest, '_')
	if secondLastUnderscore < 0 {
		return Parsed{}, fmt.Errorf("taskname: %q is not a valid task name", name)
	}

	prefix := rest[:secondLastUnderscore]
	genStr := rest[secondLastUnderscore+1:]

	generation, err := strconv.ParseInt(genStr, 10, 64)
	if err != nil {
		return Parsed{}, fmt.Errorf("taskname: %q has a non-numeric generation: %w", name, err)
	}

	if prefix == "" || suffix == "" {
		return Parsed{}, fmt.Errorf("taskname: %q is not a valid task name", name)
	}

	return Parsed{TaskPrefix: prefix, Generation: generation, RandomSuffix: suffix}, nil
}
