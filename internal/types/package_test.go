package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDependencyVersionedName(t *testing.T) {
	tests := []struct {
		name     string
		revision string
		want     string
	}{
		{name: "full sha", revision: "0123456789abcdef0123456789abcdef01234567", want: "Alamofire.01234567"},
		{name: "exactly eight", revision: "abcdef12", want: "Alamofire.abcdef12"},
		{name: "short revision", revision: "123456", want: "Alamofire.123456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dep := Dependency{
				PackageRef: PackageRef{Name: "Alamofire"},
				State:      DependencyPin{CheckoutState: CheckoutState{Revision: tt.revision}},
				Subpath:    "alamofire",
			}
			if diff := cmp.Diff(tt.want, dep.VersionedName()); diff != "" {
				t.Fatalf("unexpected versioned name (-want +got):\n%s", diff)
			}
			assert.Equal(t, "Alamofire", dep.Name())
			assert.Equal(t, "Alamofire-Package", dep.SchemeName())
		})
	}
}

func TestRootPackageNames(t *testing.T) {
	root := NewRootPackage(PackageInfo{Name: "Foo"})
	assert.Equal(t, "Foo", root.Name())
	assert.Equal(t, "Foo", root.VersionedName())
	assert.Equal(t, "Foo-Package", root.SchemeName())
}

func TestIsRoot(t *testing.T) {
	root := NewRootPackage(PackageInfo{Name: "Foo"})
	assert.True(t, IsRoot(root))
	assert.True(t, IsRoot(&root))
	assert.False(t, IsRoot(Dependency{PackageRef: PackageRef{Name: "Bar"}}))
}

func TestTargetDependencyNames(t *testing.T) {
	info := PackageInfo{
		Name: "foo",
		Targets: []Target{
			{Name: "a", Dependencies: []TargetDependency{{ByName: []string{"x"}}, {}, {ByName: []string{"y", "z"}}}},
		},
	}
	target, ok := info.Target("a")
	assert.True(t, ok)
	if diff := cmp.Diff([]string{"x", "y", "z"}, target.DependencyNames()); diff != "" {
		t.Fatalf("unexpected dependency names (-want +got):\n%s", diff)
	}

	_, ok = info.Target("missing")
	assert.False(t, ok)
}

func TestPackageInfoValidate(t *testing.T) {
	assert.NoError(t, PackageInfo{Name: "Foo", Targets: []Target{}}.Validate())
	assert.Error(t, PackageInfo{}.Validate())
	assert.Error(t, PackageInfo{Name: "Foo"}.Validate())
	assert.Error(t, PackageInfo{Targets: []Target{}}.Validate())
}

func TestDependencyStateValidate(t *testing.T) {
	valid := Dependency{
		PackageRef: PackageRef{Name: "x"},
		State:      DependencyPin{CheckoutState: CheckoutState{Revision: "abc"}},
		Subpath:    "x",
	}
	state := func(deps ...Dependency) DependencyState {
		return DependencyState{Version: 1, Object: DependencyStateObject{Dependencies: deps}}
	}

	assert.NoError(t, state(valid).Validate())
	assert.NoError(t, DependencyState{Object: DependencyStateObject{Dependencies: []Dependency{}}}.Validate())
	assert.Error(t, DependencyState{Version: 1}.Validate())

	noSubpath := valid
	noSubpath.Subpath = ""
	assert.ErrorContains(t, state(valid, noSubpath).Validate(), "subpath")

	noRevision := valid
	noRevision.State.CheckoutState.Revision = ""
	assert.ErrorContains(t, state(noRevision).Validate(), "revision")
}
