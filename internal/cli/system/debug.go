package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/lernplan/internal/cli"
	"github.com/julianstephens/lernplan/internal/storage"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show storage location."`
	Dump   *DebugDumpCmd   `cmd:"" help:"Dump a stored value, pretty-printed when it is JSON."`
	Keys   *DebugKeysCmd   `cmd:"" help:"List stored keys."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"driver": ctx.Config.Storage.Driver,
		"path":   ctx.Store.GetConfigPath(),
	}
	return printJSON(ctx, output)
}

type DebugDumpCmd struct {
	Key string `arg:"" optional:"" default:"germanLearningData" help:"Key to dump."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	raw, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no value stored for key: %s", cmd.Key)
		}
		return fmt.Errorf("failed to read %s: %w", cmd.Key, err)
	}

	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		// Not JSON, print verbatim
		ctx.Println(raw)
		return nil
	}
	return printJSON(ctx, v)
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	return printJSON(ctx, keys)
}

func printJSON(ctx *cli.Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
