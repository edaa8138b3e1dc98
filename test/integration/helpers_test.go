//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir   string // HOME, holds ~/.krepel/config.yaml
	KrepelDir string // KREPEL_DIR, holds templates/
	WorkDir   string // where projects are generated
}

// setupTestEnv creates isolated temp directories and points HOME and
// KREPEL_DIR at them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:   t.TempDir(),
		KrepelDir: t.TempDir(),
		WorkDir:   t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("USERPROFILE", env.HomeDir)
	t.Setenv("KREPEL_DIR", env.KrepelDir)
	t.Setenv("KREPEL_TEMPLATE", "")
	os.Unsetenv("KREPEL_TEMPLATE")

	return env
}

// setupKrepelTemplates writes the "project" and "library" template sets a
// krepel checkout ships with.
func setupKrepelTemplates(t *testing.T, krepelDir string) {
	t.Helper()

	project := filepath.Join(krepelDir, "templates", "project")
	writeFile(t, filepath.Join(project, "CMakeLists.txt"), `cmake_minimum_required(VERSION 3.0)
project(~friendly_name)

set(KREPEL_DIR "~krepel_dir")
list(APPEND CMAKE_MODULE_PATH "${KREPEL_DIR}/cmake")
include(krepel)

add_subdirectory(code/~friendly_name)
`)
	writeFile(t, filepath.Join(project, "code", "~friendly_name", "CMakeLists.txt"), `file(GLOB_RECURSE ~{cmake_name}_SOURCES *.cpp *.h)
add_executable(~friendly_name ${~{cmake_name}_SOURCES})
target_link_libraries(~friendly_name krEngine)
`)
	writeFile(t, filepath.Join(project, "code", "~friendly_name", "main.cpp"), `#include <krEngine/game/gameLoop.h>

// ~~ generated by krepel-new ~~
int main(int argc, char* argv[])
{
  kr::GameLoop loop("~friendly_name");
  return loop.run();
}
`)
	writeFile(t, filepath.Join(project, ".git", "HEAD"), "ref: refs/heads/master\n")

	library := filepath.Join(krepelDir, "templates", "library")
	writeFile(t, filepath.Join(library, "krepel-template.yaml"), `name: library
description: Static library linked against krEngine
min_version: ">= 0.1.0"
exclude:
  - "notes/**"
verbatim:
  - "**/*.png"
variables:
  engine_lib: krEngine
  cxx_standard: "14"
`)
	writeFile(t, filepath.Join(library, "CMakeLists.txt"), `add_library(~friendly_name STATIC src/~{friendly_name}.cpp)
set_property(TARGET ~friendly_name PROPERTY CXX_STANDARD ~cxx_standard)
target_link_libraries(~friendly_name ~engine_lib)
`)
	writeFile(t, filepath.Join(library, "src", "~friendly_name.cpp"), "namespace ~friendly_name {}\n")
	writeFile(t, filepath.Join(library, "assets", "icon.png"), "\x89PNG~\x00~")
	writeFile(t, filepath.Join(library, "notes", "todo.md"), "~unknown\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
