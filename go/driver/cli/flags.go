// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/Fantom-foundation/Boltzmann/go/config"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

type configFlagType struct {
	cli.StringFlag
}

var ConfigFlag = &configFlagType{
	cli.StringFlag{
		Name:      "config",
		Aliases:   []string{"c"},
		Usage:     "YAML file describing the simulation, defaults are used if omitted",
		TakesFile: true,
	},
}

// Fetch loads the configuration file named by the flag, or the unvalidated
// defaults if no file is given.
func (f *configFlagType) Fetch(context *cli.Context) (config.Config, error) {
	path := context.String(f.Name)
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

type agentsFlagType struct {
	cli.IntFlag
}

var AgentsFlag = &agentsFlagType{
	cli.IntFlag{
		Name:    "agents",
		Aliases: []string{"n"},
		Usage:   "number of agents",
	},
}

func (f *agentsFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

type widthFlagType struct {
	cli.IntFlag
}

var WidthFlag = &widthFlagType{
	cli.IntFlag{
		Name:  "width",
		Usage: "number of grid columns",
	},
}

func (f *widthFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

type heightFlagType struct {
	cli.IntFlag
}

var HeightFlag = &heightFlagType{
	cli.IntFlag{
		Name:  "height",
		Usage: "number of grid rows",
	},
}

func (f *heightFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

type ticksFlagType struct {
	cli.IntFlag
}

var TicksFlag = &ticksFlagType{
	cli.IntFlag{
		Name:    "ticks",
		Aliases: []string{"t"},
		Usage:   "number of ticks to simulate",
	},
}

func (f *ticksFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

type seedFlagType struct {
	cli.Uint64Flag
}

var SeedFlag = &seedFlagType{
	cli.Uint64Flag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "seed for the random number generator",
	},
}

func (f *seedFlagType) Fetch(context *cli.Context) uint64 {
	return context.Uint64(f.Name)
}

type ledgerFlagType struct {
	cli.StringFlag
}

var LedgerFlag = &ledgerFlagType{
	cli.StringFlag{
		Name:    "ledger",
		Aliases: []string{"l"},
		Usage:   "ledger implementation hosting the stablecoin",
	},
}

func (f *ledgerFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type torusFlagType struct {
	cli.BoolFlag
}

var TorusFlag = &torusFlagType{
	cli.BoolFlag{
		Name:  "torus",
		Usage: "wrap movements around the grid edges",
	},
}

func (f *torusFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type gasLimitFlagType struct {
	cli.Uint64Flag
}

var GasLimitFlag = &gasLimitFlagType{
	cli.Uint64Flag{
		Name:  "gas-limit",
		Usage: "gas granted to each stablecoin transaction",
	},
}

func (f *gasLimitFlagType) Fetch(context *cli.Context) uint64 {
	return context.Uint64(f.Name)
}

type checkInvariantsFlagType struct {
	cli.BoolFlag
}

var CheckInvariantsFlag = &checkInvariantsFlagType{
	cli.BoolFlag{
		Name:  "check-invariants",
		Usage: "verify grid and ledger consistency after every tick",
	},
}

func (f *checkInvariantsFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type outDirFlagType struct {
	cli.StringFlag
}

var OutDirFlag = &outDirFlagType{
	cli.StringFlag{
		Name:      "out",
		Aliases:   []string{"o"},
		Usage:     "directory receiving the gini and wealth CSV tables",
		TakesFile: true,
	},
}

func (f *outDirFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type databaseFlagType struct {
	cli.StringFlag
}

var DatabaseFlag = &databaseFlagType{
	cli.StringFlag{
		Name:      "db",
		Usage:     "SQLite database the run history is stored in",
		TakesFile: true,
	},
}

func (f *databaseFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type runIdFlagType struct {
	cli.StringFlag
}

var RunIdFlag = &runIdFlagType{
	cli.StringFlag{
		Name:  "run-id",
		Usage: "identifier of the run in the database, derived from ledger and seed if omitted",
	},
}

func (f *runIdFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type verbosityFlagType struct {
	cli.IntFlag
}

var VerbosityFlag = &verbosityFlagType{
	cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	},
}

func (f *verbosityFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

// SimulationFlags are the flags overriding entries of the configuration file.
var SimulationFlags = []cli.Flag{
	ConfigFlag,
	AgentsFlag,
	WidthFlag,
	HeightFlag,
	TicksFlag,
	SeedFlag,
	LedgerFlag,
	TorusFlag,
	GasLimitFlag,
	CheckInvariantsFlag,
}

// FetchConfig loads the configuration and applies all simulation flags set
// on the command line. The result is validated.
func FetchConfig(context *cli.Context) (config.Config, error) {
	res, err := ConfigFlag.Fetch(context)
	if err != nil {
		return config.Config{}, err
	}
	if context.IsSet(AgentsFlag.Name) {
		res.Agents = AgentsFlag.Fetch(context)
	}
	if context.IsSet(WidthFlag.Name) {
		res.Width = WidthFlag.Fetch(context)
	}
	if context.IsSet(HeightFlag.Name) {
		res.Height = HeightFlag.Fetch(context)
	}
	if context.IsSet(TicksFlag.Name) {
		res.Ticks = TicksFlag.Fetch(context)
	}
	if context.IsSet(SeedFlag.Name) {
		res.Seed = SeedFlag.Fetch(context)
	}
	if context.IsSet(LedgerFlag.Name) {
		res.Ledger = LedgerFlag.Fetch(context)
	}
	if context.IsSet(TorusFlag.Name) {
		res.Torus = TorusFlag.Fetch(context)
	}
	if context.IsSet(GasLimitFlag.Name) {
		res.GasLimit = GasLimitFlag.Fetch(context)
	}
	if context.IsSet(CheckInvariantsFlag.Name) {
		res.CheckInvariants = CheckInvariantsFlag.Fetch(context)
	}
	if err := res.Validate(); err != nil {
		return config.Config{}, err
	}
	return res, nil
}

var commonFlags = []cli.Flag{
	cpuProfileFlag,
	VerbosityFlag,
}

var cpuProfileFlag = &cli.StringFlag{
	Name:      "cpuprofile",
	Usage:     "store CPU profile in the provided filename",
	TakesFile: true,
}

// AddCommonFlags adds the profiling and logging flags to the given command.
// Logging is set up and CPU profiling is started before the command's action.
func AddCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, commonFlags...)

	action := command.Action
	command.Action = func(ctx *cli.Context) (err error) {
		SetupLogging(ctx)

		if cpuprofileFilename := ctx.String(cpuProfileFlag.Name); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return command
}

// SetupLogging installs a terminal logger on stderr filtering records below
// the level selected by the verbosity flag.
func SetupLogging(context *cli.Context) {
	level := log.FromLegacyLevel(VerbosityFlag.Fetch(context))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, true)))
}
