package di_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/bundlecfg/internal/config"
	"github.com/omarluq/bundlecfg/internal/di"
	"github.com/omarluq/bundlecfg/internal/environ"
)

const validConfig = `
project:
  context: web
  entries:
    - name: main
      modules: [./src/main.js]
records:
  job_env: BUILD_TAG
  ci_dir: /ci/records/
  home_suffix: .records.json
logging:
  level: info
  format: json
`

// shutdownContainer shuts down the container and logs any error (for use in t.Cleanup).
func shutdownContainer(t *testing.T, container *di.Container) {
	t.Helper()
	if err := container.Shutdown(); err != nil {
		t.Logf("container shutdown: %v", err)
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "bundlecfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newContainer(t *testing.T, opts di.Options) *di.Container {
	t.Helper()
	container, err := di.NewContainer(opts)
	require.NoError(t, err)
	t.Cleanup(func() { shutdownContainer(t, container) })
	return container
}

func TestContainerResolvesSettingsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, validConfig)
	env := &environ.Static{Env: map[string]string{}, Wd: "/elsewhere", Home: "/home/alice"}

	container := newContainer(t, di.Options{ConfigPath: path, Env: env})

	cfgSvc, err := di.Invoke[*di.ConfigService](container)
	require.NoError(t, err)
	assert.Equal(t, path, cfgSvc.Path)
	assert.Equal(t, dir, cfgSvc.Config.BaseDir)

	got, err := di.InvokeNamed[string](container, di.ConfigPathKey)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	d, err := di.MustInvoke[*di.DescriptorService](container).Build()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "web"), d.Context())
	assert.Equal(t, "/home/alice/.elsewhere.records.json", d.RecordsPath())
}

func TestContainerUsesDefaultsWithoutSettings(t *testing.T) {
	t.Parallel()

	env := &environ.Static{Env: map[string]string{}, Wd: t.TempDir(), Home: "/home/alice"}
	container := newContainer(t, di.Options{Env: env})

	cfgSvc, err := di.Invoke[*di.ConfigService](container)
	require.NoError(t, err)
	assert.Empty(t, cfgSvc.Path)
	assert.Equal(t, config.DefaultEntries(), cfgSvc.Config.Project.Entries)

	require.NoError(t, container.HealthCheck())
}

func TestContainerEnvFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, validConfig)
	dotenv := filepath.Join(dir, "ci.env")
	require.NoError(t, os.WriteFile(dotenv, []byte("BUILD_TAG=shop/main\n"), 0o600))

	env := &environ.Static{Env: map[string]string{}, Wd: dir, Home: "/home/alice"}
	container := newContainer(t, di.Options{ConfigPath: path, Env: env, EnvFiles: []string{dotenv}})

	recSvc := di.MustInvoke[*di.RecordsService](container)
	assert.Equal(t, mo.Some("shop/main"), recSvc.Job())

	got, err := recSvc.Path(mo.None[string]())
	require.NoError(t, err)
	assert.Equal(t, "/ci/records/shopmain.json", got)

	got, err = recSvc.Path(mo.Some("release 7"))
	require.NoError(t, err)
	assert.Equal(t, "/ci/records/release7.json", got)
}

func TestContainerMissingEnvFile(t *testing.T) {
	t.Parallel()

	env := &environ.Static{Env: map[string]string{}, Wd: t.TempDir(), Home: "/home/alice"}
	container := newContainer(t, di.Options{Env: env, EnvFiles: []string{"/nonexistent/.env"}})

	_, err := di.Invoke[*di.ConfigService](container)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load env files")
}

func TestContainerLogLevelOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, validConfig)
	env := &environ.Static{Env: map[string]string{}, Wd: dir, Home: "/home/alice"}

	container := newContainer(t, di.Options{ConfigPath: path, Env: env, LogLevel: "debug"})
	cfgSvc := di.MustInvoke[*di.ConfigService](container)
	assert.Equal(t, "debug", cfgSvc.Config.Logging.Level)

	bad := newContainer(t, di.Options{ConfigPath: path, Env: env, LogLevel: "verbose"})
	_, err := di.Invoke[*di.ConfigService](bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestContainerInvalidSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, "project:\n  entries: []\n")
	env := &environ.Static{Env: map[string]string{}, Wd: dir, Home: "/home/alice"}

	container := newContainer(t, di.Options{ConfigPath: path, Env: env})
	err := container.HealthCheck()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config service unhealthy")
}

func TestContainerMissingSettingsFile(t *testing.T) {
	t.Parallel()

	env := &environ.Static{Env: map[string]string{}, Wd: "/", Home: "/home/alice"}
	container := newContainer(t, di.Options{ConfigPath: "/nonexistent/bundlecfg.yaml", Env: env})

	_, err := di.Invoke[*di.DescriptorService](container)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestContainerShutdownClosesLogFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "bundlecfg.log")
	path := writeConfig(t, dir, "logging:\n  level: debug\n  format: json\n  output: "+logPath+"\n")
	env := &environ.Static{Env: map[string]string{}, Wd: dir, Home: "/home/alice"}

	container, err := di.NewContainer(di.Options{ConfigPath: path, Env: env})
	require.NoError(t, err)

	_, err = di.Invoke[*di.DescriptorService](container)
	require.NoError(t, err)
	require.NoError(t, container.Shutdown())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "settings loaded")
}

// slowService blocks in Shutdown until released.
type slowService struct {
	release chan struct{}
}

func (s *slowService) Shutdown() error {
	<-s.release
	return nil
}

func TestContainerShutdownWithContext(t *testing.T) {
	t.Parallel()

	t.Run("completes within deadline", func(t *testing.T) {
		t.Parallel()

		env := &environ.Static{Env: map[string]string{}, Wd: t.TempDir(), Home: "/home/alice"}
		container, err := di.NewContainer(di.Options{Env: env})
		require.NoError(t, err)

		_, err = di.Invoke[*di.DescriptorService](container)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, container.ShutdownWithContext(ctx))
	})

	t.Run("times out on a blocked service", func(t *testing.T) {
		t.Parallel()

		env := &environ.Static{Env: map[string]string{}, Wd: t.TempDir(), Home: "/home/alice"}
		container, err := di.NewContainer(di.Options{Env: env})
		require.NoError(t, err)

		slow := &slowService{release: make(chan struct{})}
		t.Cleanup(func() { close(slow.release) })
		do.ProvideValue(container.Injector(), slow)
		_, err = di.Invoke[*slowService](container)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = container.ShutdownWithContext(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "shutdown timed out")
	})
}

func TestRecordsServiceWarnsOnEmptyStem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "records.log")
	path := writeConfig(t, dir, "logging:\n  level: warn\n  format: json\n  output: records.log\n")
	env := &environ.Static{Env: map[string]string{"JOB_NAME": "   "}, Wd: "/", Home: "/home/alice"}

	container, err := di.NewContainer(di.Options{ConfigPath: path, Env: env})
	require.NoError(t, err)

	got, err := di.MustInvoke[*di.RecordsService](container).Path(mo.None[string]())
	require.NoError(t, err)
	assert.Equal(t, "/jenkins/webpack.records/.json", got)
	require.NoError(t, container.Shutdown())

	// The relative log output is placed next to the settings file.
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"warn"`)
	assert.Contains(t, string(data), "records file name is empty")
}
