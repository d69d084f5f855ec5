// Package reconcile decides how a persistence descriptor should change given
// the set of managed classes found on the classpath.
//
// Reconcile is pure: it never touches the filesystem and never modifies its
// inputs. Applying the decision is a separate step (ApplyAppend) so callers
// can inspect or log the outcome before committing to it.
package reconcile

import (
	"github.com/ethlo/jpagen/internal/descriptor"
	"github.com/ethlo/jpagen/pkg/jpagen"
)

// Options controls a reconciliation.
type Options struct {
	// UnitName names the unit of a freshly created descriptor.
	UnitName string

	// AppendDiscovered adds discovered classes the descriptor does not list.
	AppendDiscovered bool
}

// Result is the outcome of a reconciliation.
type Result struct {
	// Descriptor is the working model: a copy of the existing descriptor,
	// or a newly created one.
	Descriptor *descriptor.Descriptor

	// Created is true when no descriptor existed.
	Created bool

	// Undefined lists discovered classes missing from the existing
	// descriptor, sorted. Always empty when Created is true.
	Undefined []string

	// ToAppend is the set of classes ApplyAppend will add.
	ToAppend jpagen.ClassSet
}

// Diagnostics returns the undefined classes that stay undeclared once
// ToAppend is applied, sorted. These are the classes worth a warning.
func (r Result) Diagnostics() []string {
	out := make([]string, 0, len(r.Undefined))
	for _, name := range r.Undefined {
		if !r.ToAppend.Contains(name) {
			out = append(out, name)
		}
	}
	return out
}

// Reconcile computes the reconciliation of existing (nil when absent) against
// the discovered managed classes. Classes listed in the descriptor but no
// longer discovered are kept.
func Reconcile(existing *descriptor.Descriptor, discovered jpagen.ClassSet, opts Options) Result {
	var result Result

	if existing == nil {
		result.Descriptor = descriptor.Create(opts.UnitName)
		result.Created = true
		result.Undefined = []string{}
	} else {
		result.Descriptor = clone(existing)
		result.Undefined = discovered.Difference(existing.Unit.Classes).Sorted()
	}

	if opts.AppendDiscovered {
		result.ToAppend = discovered.Difference(result.Descriptor.Unit.Classes)
	} else {
		result.ToAppend = jpagen.NewClassSet()
	}

	return result
}

// ApplyAppend adds classes to d and returns the names that were not already
// present, sorted. Applying the same set twice adds nothing the second time.
func ApplyAppend(d *descriptor.Descriptor, classes jpagen.ClassSet) []string {
	if d.Unit.Classes == nil {
		d.Unit.Classes = jpagen.NewClassSet()
	}

	added := jpagen.NewClassSet()
	for name := range classes {
		if d.Unit.Classes.Add(name) {
			added.Add(name)
		}
	}
	return added.Sorted()
}

func clone(d *descriptor.Descriptor) *descriptor.Descriptor {
	out := *d
	u := &out.Unit

	u.MappingFiles = append([]string(nil), d.Unit.MappingFiles...)
	u.JarFiles = append([]string(nil), d.Unit.JarFiles...)
	u.Properties = append(descriptor.Properties(nil), d.Unit.Properties...)
	if d.Unit.ExcludeUnlistedClasses != nil {
		v := *d.Unit.ExcludeUnlistedClasses
		u.ExcludeUnlistedClasses = &v
	}
	if d.Unit.Classes != nil {
		u.Classes = d.Unit.Classes.Clone()
	} else {
		u.Classes = jpagen.NewClassSet()
	}

	return &out
}
