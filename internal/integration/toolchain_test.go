package integration

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"xpm/internal/app"
)

// fakeSwift answers dump-package with a fixed manifest, resolve with a
// fixed lock file, and generate-xcodeproj by creating the project dir.
const fakeSwift = `#!/bin/sh
set -e
pkg=""
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    --package-path) pkg="$2"; shift 2 ;;
    --build-path) shift 2 ;;
    --output) out="$2"; shift 2 ;;
    dump-package)
      printf '{"name":"Foo","targets":[{"name":"Foo","dependencies":[{"byName":["x"]}]}]}'
      exit 0 ;;
    resolve)
      mkdir -p "$pkg/.build"
      cat > "$pkg/.build/dependencies-state.json" <<'JSON'
{"version":1,"object":{"dependencies":[
{"packageRef":{"name":"x"},"state":{"checkoutState":{"revision":"0123456789abcdef"}},"subpath":"x"},
{"packageRef":{"name":"y"},"state":{"checkoutState":{"revision":"fedcba9876543210"}},"subpath":"y"}]}}
JSON
      exit 0 ;;
    *) shift ;;
  esac
done
mkdir -p "$out"
`

// fakeXcodebuild creates the directories a real archive and
// -create-xcframework would produce.
const fakeXcodebuild = `#!/bin/sh
set -e
mode="$1"
archive=""
scheme=""
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -archivePath) archive="$2"; shift 2 ;;
    -scheme) scheme="$2"; shift 2 ;;
    -output) out="$2"; shift 2 ;;
    *) shift ;;
  esac
done
case "$mode" in
  archive)
    echo "archiving $scheme"
    mkdir -p "$archive/Products/Library/Frameworks/${scheme%-Package}.framework" ;;
  -create-xcframework)
    mkdir -p "$out" ;;
  *)
    echo "unsupported mode $mode" >&2
    exit 64 ;;
esac
`

const failingXcodebuild = `#!/bin/sh
echo "error: no such scheme" >&2
exit 65
`

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain requires /bin/sh")
	}
}

func writeScript(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

// fakeToolchain installs scripts standing in for swift and xcodebuild.
func fakeToolchain(t *testing.T, xcodebuild string) app.Toolchain {
	t.Helper()
	requireShell(t)
	dir := t.TempDir()
	return app.Toolchain{
		Swift:      writeScript(t, dir, "swift", fakeSwift),
		Xcodebuild: writeScript(t, dir, "xcodebuild", xcodebuild),
	}
}

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}
