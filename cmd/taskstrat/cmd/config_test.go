package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskstrat.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := writeConfigFile(t, `
settle = "3s"
metrics_addr = ":9090"

[[task]]
id = "A"
duration = "1s"

[[task]]
id = "B"
duration = "1100ms"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", config.MetricsAddr)

	settle, err := config.SettleDuration(time.Second)
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, settle)

	tasks, err := config.Tasks()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "A", tasks[0].ID())
	require.Equal(t, time.Second, tasks[0].Duration())
	require.Equal(t, "B", tasks[1].ID())
	require.Equal(t, 1100*time.Millisecond, tasks[1].Duration())
}

func TestLoadConfig_DefaultsWhenUnset(t *testing.T) {
	path := writeConfigFile(t, ``)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Empty(t, config.Task)

	settle, err := config.SettleDuration(2 * time.Second)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, settle)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	badDuration := writeConfigFile(t, `
[[task]]
id = "A"
duration = "fast"
`)
	config, err := LoadConfig(badDuration)
	require.NoError(t, err)
	_, err = config.Tasks()
	require.Error(t, err)

	badSettle := writeConfigFile(t, `settle = "soon"`)
	config, err = LoadConfig(badSettle)
	require.NoError(t, err)
	_, err = config.SettleDuration(time.Second)
	require.Error(t, err)

	emptyID := writeConfigFile(t, `
[[task]]
id = ""
duration = "1s"
`)
	config, err = LoadConfig(emptyID)
	require.NoError(t, err)
	_, err = config.Tasks()
	require.Error(t, err)
}
