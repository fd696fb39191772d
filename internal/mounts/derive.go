package mounts

import (
	"strings"

	"github.com/shinji-kodama/frappe-mounts/internal/model"
)

// SkipReason explains why a record produced no mount.
type SkipReason string

const (
	// SkipNotObject means the array element was not a JSON object.
	SkipNotObject SkipReason = "not an object"

	// SkipNoDestination means neither "target" nor "app" was usable.
	SkipNoDestination SkipReason = "no target or app"

	// SkipNoSource means "source" was missing or empty.
	SkipNoSource SkipReason = "no source"
)

// SkippedRecord identifies a dropped record by its position in the input.
type SkippedRecord struct {
	Index  int        `json:"index"`
	Reason SkipReason `json:"reason"`
}

// Derivation is the outcome of DeriveAll.
type Derivation struct {
	// Mounts are in input order.
	Mounts  []model.ResolvedMount
	Skipped []SkippedRecord
}

// DecodeRecord converts one raw array element into a MountSpec.
// ok is false when the element is not a JSON object. Fields holding
// anything other than a string are treated as absent.
func DecodeRecord(raw interface{}) (spec model.MountSpec, ok bool) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return model.MountSpec{}, false
	}
	return model.MountSpec{
		Source: stringField(obj, "source"),
		Target: stringField(obj, "target"),
		App:    stringField(obj, "app"),
	}, true
}

func stringField(obj map[string]interface{}, key string) string {
	s, _ := obj[key].(string)
	return s
}

// Derive resolves a MountSpec into a concrete bind mount. It is a pure
// function of its arguments.
//
// Policy, in order:
//  1. no usable target and no usable app: skip
//  2. no target but an app: target = appBase + "/" + app
//  3. no usable source (or target): skip
func Derive(spec model.MountSpec, appBase string) (model.ResolvedMount, bool) {
	m, reason := derive(spec, appBase)
	return m, reason == ""
}

func derive(spec model.MountSpec, appBase string) (model.ResolvedMount, SkipReason) {
	target := spec.Target
	if blank(target) && blank(spec.App) {
		return model.ResolvedMount{}, SkipNoDestination
	}
	if blank(target) {
		target = DefaultTarget(appBase, spec.App)
	}
	if blank(spec.Source) || blank(target) {
		return model.ResolvedMount{}, SkipNoSource
	}
	return model.ResolvedMount{Source: spec.Source, Target: target}, ""
}

// DefaultTarget is the in-container path of an app under appBase.
func DefaultTarget(appBase, app string) string {
	return strings.TrimRight(appBase, "/") + "/" + app
}

// DeriveAll decodes and derives every raw record, keeping input order.
func DeriveAll(records []interface{}, appBase string) Derivation {
	var d Derivation
	for i, raw := range records {
		spec, ok := DecodeRecord(raw)
		if !ok {
			d.Skipped = append(d.Skipped, SkippedRecord{Index: i, Reason: SkipNotObject})
			continue
		}
		m, reason := derive(spec, appBase)
		if reason != "" {
			d.Skipped = append(d.Skipped, SkippedRecord{Index: i, Reason: reason})
			continue
		}
		d.Mounts = append(d.Mounts, m)
	}
	return d
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
