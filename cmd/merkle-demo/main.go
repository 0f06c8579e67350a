package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/zero-merkle-go/pkg/config"
	"github.com/Layr-Labs/zero-merkle-go/pkg/hasher"
	"github.com/Layr-Labs/zero-merkle-go/pkg/logger"
	"github.com/Layr-Labs/zero-merkle-go/pkg/merkle"
)

func main() {
	app := &cli.App{
		Name:  "merkle-demo",
		Usage: "Exercise the zero-merkle tree implementations from the command line",
		Description: `Demo driver for the fixed-height merkle trees in this repository.

Subcommands:
- sparse: set leaves at arbitrary indices in a sparse zero-default tree
- append: append leaves left-to-right in an O(height)-state tree
- verify: check a delta proof produced by either tree`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "height",
				Aliases: []string{"t"},
				Value:   config.DefaultTreeHeight,
				Usage:   fmt.Sprintf("Tree height in [0, %d]", merkle.MaxHeight),
				EnvVars: []string{config.EnvMerkleTreeHeight},
			},
			&cli.StringFlag{
				Name:    "hasher",
				Aliases: []string{"H"},
				Value:   hasher.Keccak256HasherName,
				Usage:   "Pair hasher name (keccak256, sha3-256, mimc-bn254)",
				EnvVars: []string{config.EnvMerkleHasher},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvMerkleVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "sparse",
				Usage:     "Set leaves in a sparse tree; arguments are index=0xvalue pairs",
				ArgsUsage: "index=value [index=value ...]",
				Action:    runSparse,
			},
			{
				Name:      "append",
				Usage:     "Append leaves to an append-only tree; arguments are 0x-prefixed leaf values",
				ArgsUsage: "value [value ...]",
				Action:    runAppend,
			},
			{
				Name:      "verify",
				Usage:     "Verify a JSON delta proof read from a file or stdin",
				ArgsUsage: "[proof.json]",
				Action:    runVerify,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// setup builds the validated config, logger and hasher shared by all commands.
func setup(c *cli.Context) (*config.DemoConfig, *zap.Logger, hasher.PairHasher, error) {
	cfg := &config.DemoConfig{
		Height:  c.Int("height"),
		Hasher:  c.String("hasher"),
		Verbose: c.Bool("verbose"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Verbose})
	if err != nil {
		return nil, nil, nil, err
	}

	h, err := cfg.NewPairHasher()
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, l, h, nil
}

func runSparse(c *cli.Context) error {
	cfg, l, h, err := setup(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return fmt.Errorf("no leaves given; expected index=value arguments")
	}

	tree, err := merkle.NewZeroMerkleTree(h, cfg.Height)
	if err != nil {
		return err
	}

	var last *merkle.DeltaMerkleProof
	for _, arg := range c.Args().Slice() {
		index, value, err := parseLeafAssignment(arg)
		if err != nil {
			return err
		}
		delta, err := tree.SetLeaf(index, value)
		if err != nil {
			return err
		}
		l.Sugar().Infow("Set leaf",
			"index", delta.Index,
			"old_root", delta.OldRoot.Hex(),
			"new_root", delta.NewRoot.Hex(),
		)
		last = delta
	}

	return printDeltaProof(last, tree.Root())
}

func runAppend(c *cli.Context) error {
	cfg, l, h, err := setup(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return fmt.Errorf("no leaves given; expected 0x-prefixed leaf values")
	}

	tree, err := merkle.NewAppendOnlyMerkleTree(h, cfg.Height)
	if err != nil {
		return err
	}

	var last *merkle.DeltaMerkleProof
	for _, arg := range c.Args().Slice() {
		value, err := parseLeafValue(arg)
		if err != nil {
			return err
		}
		delta, err := tree.AppendLeaf(value)
		if err != nil {
			return err
		}
		l.Sugar().Infow("Appended leaf",
			"index", delta.Index,
			"old_root", delta.OldRoot.Hex(),
			"new_root", delta.NewRoot.Hex(),
		)
		last = delta
	}

	return printDeltaProof(last, tree.Root())
}

func runVerify(c *cli.Context) error {
	_, l, h, err := setup(c)
	if err != nil {
		return err
	}

	var data []byte
	if c.NArg() > 0 {
		data, err = os.ReadFile(c.Args().First())
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	delta, err := merkle.DecodeDeltaProof(data)
	if err != nil {
		return err
	}

	if !merkle.VerifyDeltaProof(h, delta) {
		l.Sugar().Warnw("Delta proof rejected",
			"index", delta.Index,
			"old_root", delta.OldRoot.Hex(),
			"new_root", delta.NewRoot.Hex(),
		)
		return fmt.Errorf("delta proof does not verify")
	}

	l.Sugar().Infow("Delta proof verified",
		"index", delta.Index,
		"old_root", delta.OldRoot.Hex(),
		"new_root", delta.NewRoot.Hex(),
	)
	return nil
}

// parseLeafAssignment parses an "index=value" argument for the sparse command.
func parseLeafAssignment(arg string) (int64, merkle.Node, error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 {
		return 0, merkle.Node{}, fmt.Errorf("invalid leaf assignment %q, expected index=value", arg)
	}
	index, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, merkle.Node{}, fmt.Errorf("invalid leaf index %q: %w", parts[0], err)
	}
	value, err := parseLeafValue(parts[1])
	if err != nil {
		return 0, merkle.Node{}, err
	}
	return index, value, nil
}

// parseLeafValue parses a leaf value: either a 0x-prefixed 32-byte hex string
// or a small decimal integer.
func parseLeafValue(arg string) (merkle.Node, error) {
	if strings.HasPrefix(arg, "0x") {
		b, err := hexutil.Decode(arg)
		if err != nil {
			return merkle.Node{}, fmt.Errorf("invalid leaf value %q: %w", arg, err)
		}
		return merkle.NodeFromBytes(b)
	}
	v, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return merkle.Node{}, fmt.Errorf("invalid leaf value %q: %w", arg, err)
	}
	return merkle.NodeFromUint64(v), nil
}

// printDeltaProof writes the final root and last delta proof to stdout.
func printDeltaProof(delta *merkle.DeltaMerkleProof, root merkle.Node) error {
	fmt.Printf("root: %s\n", root.Hex())
	if delta == nil {
		return nil
	}
	encoded, err := merkle.EncodeDeltaProof(delta)
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
