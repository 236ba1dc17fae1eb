// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/lowendtheory/dubplate/internal/api"
)

// MockDoer is a test double for [api.Doer]. Calls records every invocation;
// Response and Err script the result.
type MockDoer struct {
	Response json.RawMessage
	Err      error
	Calls    []api.Operation
}

func (m *MockDoer) Call(ctx context.Context, op api.Operation, req api.Request) (json.RawMessage, error) {
	m.Calls = append(m.Calls, op)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
