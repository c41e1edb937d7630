package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr bool
	}{
		{name: "defaults", modify: func(s *Settings) {}},
		{name: "explicit family", modify: func(s *Settings) { s.OSFamily = "linux" }},
		{name: "textfile", modify: func(s *Settings) { s.Textfile = "/var/lib/node_exporter/zpool.prom" }},
		{name: "empty zpool", modify: func(s *Settings) { s.ZpoolPath = "" }, wantErr: true},
		{name: "empty lsblk", modify: func(s *Settings) { s.LsblkPath = "" }, wantErr: true},
		{name: "zero timeout", modify: func(s *Settings) { s.Timeout = 0 }, wantErr: true},
		{name: "empty family", modify: func(s *Settings) { s.OSFamily = "" }, wantErr: true},
		{name: "bad level", modify: func(s *Settings) { s.LogLevel = "loud" }, wantErr: true},
		{name: "bad format", modify: func(s *Settings) { s.LogFormat = "xml" }, wantErr: true},
		{name: "textfile extension", modify: func(s *Settings) { s.Textfile = "/tmp/zpool.txt" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.modify(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "zpool: /usr/sbin/zpool\ntimeout: 5s\nos-family: Linux\nstrict: true\nlog-level: DEBUG\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/sbin/zpool", s.ZpoolPath)
	assert.Equal(t, "lsblk", s.LsblkPath, "unset keys keep their default")
	assert.Equal(t, 5*time.Second, s.Timeout)
	assert.Equal(t, "linux", s.OSFamily)
	assert.True(t, s.Strict)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ZPOOLCTL_OS_FAMILY", "solaris")
	t.Setenv("ZPOOLCTL_TIMEOUT", "2m")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("os-family: linux\n"), 0o644))

	s, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "solaris", s.OSFamily, "environment beats the config file")
	assert.Equal(t, 2*time.Minute, s.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(viper.New(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit config file must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("timeout: -1s\n"), 0o644))
	_, err = Load(viper.New(), bad)
	assert.ErrorContains(t, err, "timeout")
}
