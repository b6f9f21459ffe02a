package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(args ...string) (string, error) {
	root := GetRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCommandHelp(t *testing.T) {
	out, err := executeCommand("--help")
	require.NoError(t, err)
	assert.Contains(t, out, "paperforge")
	assert.Contains(t, out, "detect")
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "serve")
}

func TestRootCommandVersion(t *testing.T) {
	out, err := executeCommand("--version")
	require.NoError(t, err)
	assert.Contains(t, out, "paperforge version")
}

func TestSubcommandsRegistered(t *testing.T) {
	root := GetRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "detect")
	assert.Contains(t, names, "pages")
	assert.Contains(t, names, "pool")
	assert.Contains(t, names, "generate")
	assert.Contains(t, names, "serve")
}

func TestGenerateRequiresExam(t *testing.T) {
	_, err := executeCommand("generate", "--booklet", "b.pdf")
	assert.Error(t, err)
}

func TestBookletPathStaysInDirectory(t *testing.T) {
	tests := []struct {
		name   string
		examID string
		want   string
	}{
		{name: "plain identifier", examID: "math-2026", want: "booklets/math-2026.pdf"},
		{name: "parent traversal neutralized", examID: "../../etc/passwd", want: "booklets/____etc_passwd.pdf"},
		{name: "absolute path neutralized", examID: "/etc/passwd", want: "booklets/_etc_passwd.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bookletPath("booklets", tt.examID)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
			assert.True(t, strings.HasPrefix(got, "booklets"+string(filepath.Separator)))
			assert.NotContains(t, got, "..")
		})
	}
}
