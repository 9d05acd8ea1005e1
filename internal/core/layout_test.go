package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"xpm/internal/types"
)

func testDependency(name string) types.Dependency {
	return types.Dependency{
		PackageRef: types.PackageRef{Name: name},
		State:      types.DependencyPin{CheckoutState: types.CheckoutState{Revision: "123456"}},
		Subpath:    name,
	}
}

func TestLayoutPaths(t *testing.T) {
	layout := NewLayout("/root/package/path", "", "/")
	root := types.NewRootPackage(types.PackageInfo{Name: "Foo"})
	dep := testDependency("Bar")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "build dir", got: layout.BuildDir(), want: "/root/package/path/.build"},
		{name: "lock file", got: layout.DependenciesStateFile(), want: "/root/package/path/.build/dependencies-state.json"},
		{name: "root source", got: layout.SourceDir(root), want: "/root/package/path"},
		{name: "dependency source", got: layout.SourceDir(dep), want: "/root/package/path/.build/checkouts/Bar"},
		{name: "root project", got: layout.Project(root), want: "/.xpm/projects/Foo.xcodeproj"},
		{name: "dependency project", got: layout.Project(dep), want: "/.xpm/projects/Bar.123456.xcodeproj"},
		{name: "package build dir", got: layout.PackageBuildDir(dep), want: "/.xpm/build/Bar"},
		{name: "archive", got: layout.Archive(root, "iphoneos"), want: "/.xpm/archives/Foo/iphoneos.xcarchive"},
		{name: "archived frameworks", got: layout.ArchivedFrameworksDir(dep, "macosx"), want: "/.xpm/archives/Bar.123456/macosx.xcarchive/Products/Library/Frameworks"},
		{name: "derived data", got: layout.DerivedData(root, "iphoneos"), want: "/.xpm/DerivedData/Foo/iphoneos"},
		{name: "default frameworks dir", got: layout.FrameworksDir(), want: "/.xpm/frameworks"},
		{name: "xcframework", got: layout.XCFramework("Foo"), want: "/.xpm/frameworks/Foo.xcframework"},
		{name: "report", got: layout.ReportFile(), want: "/.xpm/build-report.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Fatalf("unexpected path (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutResolvesRelativePaths(t *testing.T) {
	layout := NewLayout("pkg", "out", "/work")
	assert.Equal(t, "/work/pkg", layout.RootPackageDir)
	assert.Equal(t, "/work/out", layout.FrameworksDir())
	assert.Equal(t, "/work/out/Foo.xcframework", layout.XCFramework("Foo"))

	layout = NewLayout("", "/output", "/work/")
	assert.Equal(t, "/work", layout.RootPackageDir)
	assert.Equal(t, "/output", layout.FrameworksDir())
	assert.Equal(t, "/work/.xpm", layout.ToolDir())
}

func TestLayoutSeparatesPackagesAndSDKs(t *testing.T) {
	layout := NewLayout("/pkg", "", "/")
	foo := testDependency("Foo")
	fooNext := foo
	fooNext.State.CheckoutState.Revision = "abcdef01"

	seen := map[string]struct{}{}
	for _, pkg := range []types.Package{foo, fooNext, testDependency("Bar")} {
		for _, sdk := range []string{"iphoneos", "iphonesimulator", "macosx"} {
			path := layout.Archive(pkg, sdk)
			_, dup := seen[path]
			assert.False(t, dup, "archive path %s is shared", path)
			seen[path] = struct{}{}
		}
	}
}
