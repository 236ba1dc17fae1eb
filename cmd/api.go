package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lowendtheory/dubplate/internal/api"
	"github.com/lowendtheory/dubplate/internal/shared"
	"github.com/urfave/cli/v3"
)

// parsePair splits a name=value flag.
func parsePair(raw string) (string, string, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("%w: expected name=value, got %q", shared.ErrInvalidFlag, raw)
	}
	return name, value, nil
}

// APICall invokes a named operation directly and prints the raw response.
func (r *Runner) APICall(ctx context.Context, cmd *cli.Command) error {
	opName := cmd.StringArg("operation")
	if opName == "" {
		return fmt.Errorf("%w: operation name", shared.ErrMissingArgument)
	}

	req := api.Request{}

	if raw := cmd.String("arg"); raw != "" {
		name, value, err := parsePair(raw)
		if err != nil {
			return err
		}
		req.Args = map[string]string{name: value}
	}
	if raw := cmd.String("query"); raw != "" {
		name, value, err := parsePair(raw)
		if err != nil {
			return err
		}
		req.Query = []api.Param{{Key: name, Value: value}}
	}
	if data := cmd.String("data"); data != "" {
		if !json.Valid([]byte(data)) {
			return fmt.Errorf("%w: body is not valid JSON", shared.ErrInvalidFlag)
		}
		req.Body = json.RawMessage(data)
	}

	r.logger.Infof("calling operation %v", opName)

	data, err := r.client.Call(ctx, api.Operation(opName), req)
	if err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return r.writeJSON(decoded, cmd.Bool("pretty"))
}

// APIOperations lists every operation in the endpoint table.
func (r *Runner) APIOperations(ctx context.Context, cmd *cli.Command) error {
	for _, op := range api.Operations() {
		ep, err := api.Resolve(op)
		if err != nil {
			return err
		}
		marker := " "
		if ep.RequiresAuth {
			marker = "*"
		}
		r.writePlain("%s %-20s %-6s %s\n", marker, op, ep.Method, ep.Path)
	}
	return r.writePlain("\n* requires login\n")
}
