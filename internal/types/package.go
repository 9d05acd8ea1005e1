package types

import (
	"errors"
	"fmt"

	"xpm/internal/shared"
)

// PackageInfo is the manifest emitted by `swift package dump-package`.
// Only the fields the pipeline reads are decoded.
type PackageInfo struct {
	Name    string   `json:"name"`
	Targets []Target `json:"targets"`
}

type Target struct {
	Name         string             `json:"name"`
	Dependencies []TargetDependency `json:"dependencies"`
}

// TargetDependency mirrors the `{"byName": [...]}` entries of a target.
// Other dependency kinds (product, target) decode to an empty ByName.
type TargetDependency struct {
	ByName []string `json:"byName"`
}

func (p PackageInfo) Target(name string) (Target, bool) {
	for _, target := range p.Targets {
		if target.Name == name {
			return target, true
		}
	}
	return Target{}, false
}

// Validate rejects manifests missing the keys the pipeline relies on.
// Decoding `null` or an unrelated object leaves both unset.
func (p PackageInfo) Validate() error {
	if p.Name == "" {
		return errors.New("manifest has no name")
	}
	if p.Targets == nil {
		return errors.New("manifest has no targets")
	}
	return nil
}

// DependencyNames flattens the by-name references of the target.
func (t Target) DependencyNames() []string {
	var names []string
	for _, dep := range t.Dependencies {
		names = append(names, dep.ByName...)
	}
	return names
}

// DependencyState is the lock file written by `swift package resolve`.
type DependencyState struct {
	Version int                   `json:"version"`
	Object  DependencyStateObject `json:"object"`
}

type DependencyStateObject struct {
	Dependencies []Dependency `json:"dependencies"`
}

// Validate rejects lock states without a dependency list or with entries
// that cannot be keyed and located.
func (s DependencyState) Validate() error {
	if s.Object.Dependencies == nil {
		return errors.New("lock state has no object.dependencies")
	}
	for i, dep := range s.Object.Dependencies {
		switch {
		case dep.PackageRef.Name == "":
			return fmt.Errorf("dependency %d has no packageRef.name", i)
		case dep.State.CheckoutState.Revision == "":
			return fmt.Errorf("dependency %q has no state.checkoutState.revision", dep.PackageRef.Name)
		case dep.Subpath == "":
			return fmt.Errorf("dependency %q has no subpath", dep.PackageRef.Name)
		}
	}
	return nil
}

type Dependency struct {
	PackageRef PackageRef    `json:"packageRef"`
	State      DependencyPin `json:"state"`
	Subpath    string        `json:"subpath"`
}

type PackageRef struct {
	Name string `json:"name"`
}

type DependencyPin struct {
	CheckoutState CheckoutState `json:"checkoutState"`
}

type CheckoutState struct {
	Revision string `json:"revision"`
}

const revisionKeyLength = 8

// Package is either the root package under development or a resolved
// dependency. VersionedName keys every artifact the pipeline produces.
type Package interface {
	Name() string
	VersionedName() string
	SchemeName() string
}

// RootPackage is never cached: its versioned name carries no revision.
type RootPackage struct {
	Info PackageInfo
}

func NewRootPackage(info PackageInfo) RootPackage {
	return RootPackage{Info: info}
}

func (r RootPackage) Name() string          { return r.Info.Name }
func (r RootPackage) VersionedName() string { return r.Info.Name }
func (r RootPackage) SchemeName() string    { return schemeName(r.Info.Name) }

func (d Dependency) Name() string { return d.PackageRef.Name }

func (d Dependency) VersionedName() string {
	return d.PackageRef.Name + "." + shared.Prefix(d.State.CheckoutState.Revision, revisionKeyLength)
}

func (d Dependency) SchemeName() string { return schemeName(d.PackageRef.Name) }

// IsRoot reports whether pkg is the root package variant.
func IsRoot(pkg Package) bool {
	switch pkg.(type) {
	case RootPackage, *RootPackage:
		return true
	default:
		return false
	}
}

func schemeName(name string) string {
	return name + "-Package"
}

var (
	_ Package = RootPackage{}
	_ Package = Dependency{}
)
