package system

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/storage"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" help:"Show storage location."`
	Keys   DebugKeysCmd   `cmd:"" help:"List stored record keys."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump a stored record as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	for _, key := range keys {
		ctx.Println(key)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Record key, e.g. quitnow_user."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no record found for key: %s", cmd.Key)
		}
		return fmt.Errorf("failed to get record: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		// stored bytes are not JSON; show them raw
		ctx.Println(string(data))
		return nil
	}
	ctx.Println(pretty.String())
	return nil
}
