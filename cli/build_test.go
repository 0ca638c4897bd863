package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prefdoctor/prefbuild/cli/bun"
	"github.com/prefdoctor/prefbuild/platform"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// stubCompiler records invocations and optionally simulates failures or the
// artifact the real compiler would write.
type stubCompiler struct {
	invocations   []bun.CompileOptions
	failTargets   map[string]bool
	writeArtifact bool
}

func (s *stubCompiler) Compile(opts bun.CompileOptions) error {
	s.invocations = append(s.invocations, opts)
	if s.failTargets[opts.Target] {
		return errors.New("simulated compiler failure")
	}
	if s.writeArtifact {
		return os.WriteFile(opts.Outfile, []byte("executable"), 0755)
	}
	return nil
}

func newTestApp(compiler Compiler) *App {
	return &App{
		logger:   zerolog.Nop(),
		compiler: compiler,
	}
}

func testOptions(outDir string) buildOptions {
	return buildOptions{
		Entry:  "src/index.ts",
		OutDir: outDir,
		Name:   "pref-doctor",
		Minify: true,
	}
}

func TestArtifactPath(t *testing.T) {
	linux, ok := platform.Find("linux", "x64")
	require.True(t, ok)
	windows, ok := platform.Find("windows", "x64")
	require.True(t, ok)

	tests := []struct {
		name string
		desc *platform.Descriptor
		want string
	}{
		{
			name: "linux no suffix",
			desc: &linux,
			want: filepath.Join("build", "pref-doctor-linux-x64"),
		},
		{
			name: "windows exe suffix",
			desc: &windows,
			want: filepath.Join("build", "pref-doctor-windows-x64.exe"),
		},
		{
			name: "bare fallback build",
			desc: nil,
			want: filepath.Join("build", "pref-doctor"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPath(tt.desc, testOptions("build"))
			if got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildPlatformSuccessReportsSize(t *testing.T) {
	stub := &stubCompiler{writeArtifact: true}
	app := newTestApp(stub)
	outDir := filepath.Join(t.TempDir(), "build")

	desc, ok := platform.Find("linux", "x64")
	require.True(t, ok)

	outcome := app.buildPlatform(app.logger, &desc, testOptions(outDir))

	require.True(t, outcome.Success)
	require.NoError(t, outcome.Err)
	require.NotNil(t, outcome.Size)
	require.Equal(t, uint64(len("executable")), *outcome.Size)
	require.Equal(t, filepath.Join(outDir, "pref-doctor-linux-x64"), outcome.Artifact)

	require.Len(t, stub.invocations, 1)
	require.Equal(t, "bun-linux-x64", stub.invocations[0].Target)
	require.Equal(t, "src/index.ts", stub.invocations[0].Entry)
}

func TestBuildPlatformMissingArtifactStillSucceeds(t *testing.T) {
	// Compiler reports success but writes nothing: size reporting is
	// best-effort and must not downgrade the result.
	stub := &stubCompiler{}
	app := newTestApp(stub)
	outDir := filepath.Join(t.TempDir(), "build")

	desc, ok := platform.Find("darwin", "arm64")
	require.True(t, ok)

	outcome := app.buildPlatform(app.logger, &desc, testOptions(outDir))

	require.True(t, outcome.Success)
	require.Nil(t, outcome.Size)
}

func TestBuildPlatformCompilerFailure(t *testing.T) {
	stub := &stubCompiler{failTargets: map[string]bool{"bun-linux-x64": true}}
	app := newTestApp(stub)
	outDir := filepath.Join(t.TempDir(), "build")

	desc, ok := platform.Find("linux", "x64")
	require.True(t, ok)

	outcome := app.buildPlatform(app.logger, &desc, testOptions(outDir))

	require.False(t, outcome.Success)
	require.Error(t, outcome.Err)
	require.Nil(t, outcome.Size)
}

func TestBuildPlatformOutputDirFailure(t *testing.T) {
	// A regular file where the output directory should go makes MkdirAll
	// fail; that is a build failure for the platform, not a crash.
	stub := &stubCompiler{}
	app := newTestApp(stub)

	outDir := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.WriteFile(outDir, []byte("not a directory"), 0644))

	desc, ok := platform.Find("linux", "x64")
	require.True(t, ok)

	outcome := app.buildPlatform(app.logger, &desc, testOptions(outDir))

	require.False(t, outcome.Success)
	require.Error(t, outcome.Err)
	require.Empty(t, stub.invocations)
}

func TestBuildPlatformFallbackHasNoTarget(t *testing.T) {
	stub := &stubCompiler{writeArtifact: true}
	app := newTestApp(stub)
	outDir := filepath.Join(t.TempDir(), "build")

	outcome := app.buildPlatform(app.logger, nil, testOptions(outDir))

	require.True(t, outcome.Success)
	require.Equal(t, filepath.Join(outDir, "pref-doctor"), outcome.Artifact)
	require.Len(t, stub.invocations, 1)
	require.Empty(t, stub.invocations[0].Target)
}
