package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/crypto"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPIN = "4826"

type fakePrompter struct {
	answers []string
	prompts []string
}

func (p *fakePrompter) ReadSecret(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return "", errNoInput
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

type testCLI struct {
	dir      string
	prompter *fakePrompter
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	return &testCLI{dir: t.TempDir(), prompter: &fakePrompter{}}
}

func (c *testCLI) deps() Deps {
	return Deps{
		LoadConfig: func() (*config.StructuredConfig, error) {
			return &config.StructuredConfig{
				App: config.App{InactivityTimeout: config.DefaultInactivityTimeout},
				Storage: config.Storage{
					Vault:     config.Vault{Path: filepath.Join(c.dir, "vault.db")},
					BackupDir: filepath.Join(c.dir, "backups"),
				},
			}, nil
		},
		Open: func(ctx context.Context, cfg *config.StructuredConfig) (*service.ClientServices, error) {
			return service.NewClientServices(ctx, service.ClientDeps{
				Storages: store.NewClientStorages(ctx, cfg.Storage, logger.Nop()),
				KeyChain: crypto.NewKeyChainServiceWithParams(models.KDFParams{Time: 1, Memory: 64, Threads: 1, KeyLen: crypto.KeySize}),
			}, cfg.App, models.NewAppBuildInfo("v2.0.0", "2026-10-01", "1a2b3c4"), logger.Nop())
		},
		Prompter:  c.prompter,
		BuildInfo: models.NewAppBuildInfo("v2.0.0", "2026-10-01", "1a2b3c4"),
	}
}

func (c *testCLI) run(answers []string, args ...string) (string, error) {
	c.prompter.answers = answers
	cmd := NewRootCommand(c.deps())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_InvalidFormat(t *testing.T) {
	c := newTestCLI(t)

	_, err := c.run(nil, "--format", "xml", "status")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRoot_ConfigError(t *testing.T) {
	c := newTestCLI(t)
	deps := c.deps()
	deps.LoadConfig = func() (*config.StructuredConfig, error) { return nil, errors.New("bad yaml") }

	cmd := NewRootCommand(deps)
	cmd.SetArgs([]string{"status"})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad yaml")
}

func TestStatus_NotInitialized(t *testing.T) {
	c := newTestCLI(t)

	out, err := c.run(nil, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Status: Not initialized")
	assert.Contains(t, out, "Storage: OK")
}

func TestInit_ThenStatus(t *testing.T) {
	c := newTestCLI(t)

	out, err := c.run([]string{testPIN, testPIN}, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Vault initialized")

	out, err = c.run(nil, "--format", "json", "status")
	require.NoError(t, err)

	var st statusOutput
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.True(t, st.Configured)
	assert.False(t, st.Degraded)
	assert.Equal(t, "15m0s", st.InactivityTimeout)
}

func TestInit_Mismatch(t *testing.T) {
	c := newTestCLI(t)

	_, err := c.run([]string{testPIN, "4827"}, "init")
	require.ErrorIs(t, err, errCredentialMismatch)

	out, err := c.run(nil, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not initialized")
}

func TestInit_WeakCredential(t *testing.T) {
	c := newTestCLI(t)

	_, err := c.run([]string{"12", "12"}, "init")

	require.ErrorIs(t, err, service.ErrWeakCredential)
}

func TestInit_AlreadyInitialized(t *testing.T) {
	c := newTestCLI(t)
	_, err := c.run([]string{testPIN, testPIN}, "init")
	require.NoError(t, err)

	_, err = c.run([]string{testPIN, testPIN}, "init")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestExportImport_RoundTrip(t *testing.T) {
	c := newTestCLI(t)
	_, err := c.run([]string{testPIN, testPIN}, "init")
	require.NoError(t, err)

	out, err := c.run([]string{testPIN}, "--format", "json", "export")
	require.NoError(t, err)

	var exported map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	path := exported["path"]
	assert.True(t, strings.HasSuffix(path, ".osteobak"))
	assert.Equal(t, filepath.Join(c.dir, "backups"), filepath.Dir(path))

	// restore into a brand new vault
	fresh := newTestCLI(t)
	out, err = fresh.run([]string{testPIN}, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Vault restored")
	assert.Equal(t, []string{"Archive PIN or password: "}, fresh.prompter.prompts)

	out, err = fresh.run(nil, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: Initialized")
}

func TestExport_WrongCredential(t *testing.T) {
	c := newTestCLI(t)
	_, err := c.run([]string{testPIN, testPIN}, "init")
	require.NoError(t, err)

	_, err = c.run([]string{"9999"}, "export")

	require.ErrorIs(t, err, service.ErrWrongCredential)
	matches, _ := filepath.Glob(filepath.Join(c.dir, "backups", "*.osteobak"))
	assert.Empty(t, matches)
}

func TestImport_ExistingVaultRequiresCurrentCredential(t *testing.T) {
	src := newTestCLI(t)
	_, err := src.run([]string{"11112222", "11112222"}, "init")
	require.NoError(t, err)
	_, err = src.run([]string{"11112222"}, "export", "--dir", src.dir)
	require.NoError(t, err)
	archives, err := filepath.Glob(filepath.Join(src.dir, "*.osteobak"))
	require.NoError(t, err)
	require.Len(t, archives, 1)

	dst := newTestCLI(t)
	_, err = dst.run([]string{testPIN, testPIN}, "init")
	require.NoError(t, err)

	_, err = dst.run([]string{"0000"}, "import", archives[0])
	require.ErrorIs(t, err, service.ErrWrongCredential)

	_, err = dst.run([]string{testPIN, "wrong-archive-pass"}, "import", archives[0])
	require.ErrorIs(t, err, service.ErrRestore)

	_, err = dst.run([]string{testPIN, "11112222"}, "import", archives[0])
	require.NoError(t, err)

	// the archive credential now opens the vault
	_, err = dst.run([]string{"11112222"}, "export", "--dir", dst.dir)
	require.NoError(t, err)
}

func TestImport_NotAnArchive(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(c.dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a backup"), 0o600))

	_, err := c.run([]string{testPIN}, "import", path)

	require.ErrorIs(t, err, service.ErrRestore)
	require.ErrorIs(t, err, store.ErrArchiveMalformed)
	assert.Contains(t, err.Error(), "is not a usable backup")

	out, err := c.run(nil, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not initialized")
}

func TestRoutes(t *testing.T) {
	c := newTestCLI(t)

	out, err := c.run(nil, "routes")
	require.NoError(t, err)
	assert.Contains(t, out, "ENTITY TYPE")
	assert.Contains(t, out, "patients")
	assert.Contains(t, out, "local_encrypted")

	out, err = c.run(nil, "--format", "json", "routes", "cabinets")
	require.NoError(t, err)

	var decisions []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decisions))
	require.Len(t, decisions, 1)
	assert.Equal(t, "remote", decisions[0]["destination"])
	assert.Equal(t, "non_sensitive", decisions[0]["reason"])
}

func TestVersion(t *testing.T) {
	c := newTestCLI(t)

	out, err := c.run(nil, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "v2.0.0")
	assert.Contains(t, out, "1a2b3c4")
}
