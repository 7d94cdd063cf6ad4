package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hermann-web/resumodel/internal/resumeerr"
)

func setupRun(t *testing.T, profile string) (outPath string) {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"personal_info.yml": "personal_info:\n  name: Test User\n",
		"experiences.yml":   "experiences:\n  EXP1:\n    title: Engineer\n    company: ACME\n    date: \"2024\"\n",
		"profiles.yml":      "profiles:\n  TEST_PROFILE:\n    title: Engineer\n    summary: test run\n    experiences: [EXP1]\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	tmplPath := filepath.Join(dir, "resume.tmpl")
	require.NoError(t, os.WriteFile(tmplPath, []byte("Name: {{ .PersonalInfo.Name }}\n"), 0644))

	outPath = filepath.Join(t.TempDir(), "out", "resume.tex")

	prevData, prevProfile, prevTmpl, prevOut := dataDir, profileName, templatePath, outputPath
	t.Cleanup(func() {
		dataDir, profileName, templatePath, outputPath = prevData, prevProfile, prevTmpl, prevOut
	})
	dataDir, profileName, templatePath, outputPath = dir, profile, tmplPath, outPath
	return outPath
}

func TestGenerate_EndToEnd(t *testing.T) {
	outPath := setupRun(t, "TEST_PROFILE")

	require.NoError(t, generate())

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Test User")
}

func TestGenerate_UnknownProfile(t *testing.T) {
	outPath := setupRun(t, "INVALID_PROFILE")

	err := generate()
	require.Error(t, err)
	assert.Equal(t, resumeerr.KindData, resumeerr.KindOf(err))
	assert.Contains(t, err.Error(), "INVALID_PROFILE")

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no output file should be produced on failure")
}
