// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package model implements the Boltzmann wealth model: agents walk randomly on
// a grid and hand tokens of a stablecoin to agents they meet. The inequality
// of the resulting distribution is recorded after every tick.
package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"github.com/Fantom-foundation/Boltzmann/go/metrics"
	"github.com/Fantom-foundation/Boltzmann/go/space"
	"github.com/ethereum/go-ethereum/log"
	"pgregory.net/rand"
)

// ErrInvariantViolated is reported by CheckInvariants.
var ErrInvariantViolated = errors.New("invariant violated")

// State is the lifecycle phase of a model.
type State int

const (
	// Initialized models are funded and have collected tick 0.
	Initialized State = iota
	// Running models have started at least one tick.
	Running
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Model drives the simulation. All randomness is drawn from the injected
// source, so runs with equally seeded sources and equivalent ledgers are
// identical. A Model is not safe for concurrent use.
type Model struct {
	config    Config
	ledger    ledger.Ledger
	rnd       *rand.Rand
	grid      *space.MultiGrid[*Agent]
	agents    []*Agent
	collector *metrics.Collector
	steps     int
	state     State
	log       log.Logger
}

// New sets up a simulation on the given ledger. It deploys the stablecoin,
// registers the minter, funds a fresh wallet for every agent, places the
// agents on random cells and collects the initial metrics as tick 0.
func New(config Config, l ledger.Ledger, rnd *rand.Rand) (*Model, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if l == nil || rnd == nil {
		return nil, fmt.Errorf("ledger and random source are required")
	}
	grid, err := space.NewMultiGrid[*Agent](config.Width, config.Height, config.Boundary)
	if err != nil {
		return nil, err
	}
	m := &Model{
		config:    config,
		ledger:    l,
		rnd:       rnd,
		grid:      grid,
		collector: metrics.NewCollector(),
		log:       log.New("model", "boltzmann"),
	}

	if err := l.Deploy(config.Admin); err != nil {
		return nil, fmt.Errorf("failed to deploy stablecoin: %w", err)
	}
	m.log.Info("Deployed stablecoin", "admin", config.Admin)
	if err := l.AddMinter(config.Minter, config.Admin); err != nil {
		return nil, fmt.Errorf("failed to register minter: %w", err)
	}
	m.log.Info("Registered minter", "minter", config.Minter)

	wallets := newWallets(rnd, config.NumAgents, config.Admin, config.Minter)
	m.agents = make([]*Agent, 0, len(wallets))
	for i, wallet := range wallets {
		if err := l.Mint(wallet, config.InitialBalance, config.Minter); err != nil {
			return nil, fmt.Errorf("failed to fund wallet of agent %d: %w", i, err)
		}
		agent := &Agent{id: i, wallet: wallet, model: m}
		pos := space.Pos{X: rnd.Intn(config.Width), Y: rnd.Intn(config.Height)}
		if err := grid.Place(agent, pos); err != nil {
			return nil, fmt.Errorf("failed to place agent %d: %w", i, err)
		}
		m.agents = append(m.agents, agent)
	}
	m.log.Info("Funded agents", "agents", len(m.agents), "balance", config.InitialBalance)

	if err := m.collect(0); err != nil {
		return nil, err
	}
	return m, nil
}

// Tick activates all agents once in a random order and collects the metrics
// afterwards. If an agent fails, the tick is aborted and not counted; the
// ledger and grid keep the effects of the agents stepped so far.
func (m *Model) Tick() error {
	m.state = Running
	tick := m.steps + 1
	for _, i := range m.rnd.Perm(len(m.agents)) {
		if err := m.agents[i].Step(); err != nil {
			return fmt.Errorf("tick %d aborted: %w", tick, err)
		}
	}
	if err := m.collect(tick); err != nil {
		return err
	}
	m.steps = tick
	if last, found := m.collector.History().Last(); found {
		m.log.Debug("Tick completed", "tick", tick, "gini", last.Gini)
	}
	if m.config.CheckInvariants {
		if err := m.CheckInvariants(); err != nil {
			m.log.Error("Invariant check failed", "tick", tick, "err", err)
			return fmt.Errorf("tick %d: %w", tick, err)
		}
	}
	return nil
}

// Run performs exactly n ticks. The context is checked before each tick; a
// cancelled context stops the run between ticks.
func (m *Model) Run(ctx context.Context, n int) error {
	if n < 0 {
		return fmt.Errorf("invalid number of ticks: %d", n)
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// CheckInvariants verifies the consistency of grid and ledger: every agent
// is placed where it claims to be, the agents' balances add up to the minted
// supply, and the ledger's own bookkeeping agrees.
func (m *Model) CheckInvariants() error {
	if err := m.grid.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolated, err)
	}
	if want, got := len(m.agents), m.grid.Len(); want != got {
		return fmt.Errorf("%w: %d agents, %d placed", ErrInvariantViolated, want, got)
	}
	inspector, canInspect := m.ledger.(ledger.StorageInspector)
	sum := ledger.Amount{}
	for _, agent := range m.agents {
		if !m.grid.Contains(agent.pos) {
			return fmt.Errorf("%w: %v out of bounds at %v", ErrInvariantViolated, agent, agent.pos)
		}
		balance, err := agent.Balance()
		if err != nil {
			return err
		}
		if canInspect {
			stored, err := inspector.StoredBalanceOf(agent.wallet)
			if err != nil {
				return err
			}
			if stored != balance {
				return fmt.Errorf("%w: stored balance of %v is %v, reported %v", ErrInvariantViolated, agent, stored, balance)
			}
		}
		var overflow bool
		if sum, overflow = sum.Add(balance); overflow {
			return fmt.Errorf("%w: sum of balances overflows", ErrInvariantViolated)
		}
	}
	expected := m.ExpectedSupply()
	if sum != expected {
		return fmt.Errorf("%w: balances sum up to %v, expected %v", ErrInvariantViolated, sum, expected)
	}
	supply, err := m.ledger.TotalSupply()
	if err != nil {
		return err
	}
	if supply != expected {
		return fmt.Errorf("%w: total supply is %v, expected %v", ErrInvariantViolated, supply, expected)
	}
	if canInspect {
		stored, err := inspector.StoredTotalSupply()
		if err != nil {
			return err
		}
		if stored != supply {
			return fmt.Errorf("%w: stored total supply is %v, reported %v", ErrInvariantViolated, stored, supply)
		}
	}
	return nil
}

// collect records the wealth of all agents as the given tick.
func (m *Model) collect(tick int) error {
	wealth := make([]metrics.AgentWealth, 0, len(m.agents))
	for _, agent := range m.agents {
		balance, err := agent.Balance()
		if err != nil {
			return fmt.Errorf("failed to collect balance of %v: %w", agent, err)
		}
		wealth = append(wealth, metrics.AgentWealth{
			ID:      agent.id,
			Wealth:  balance.Display(),
			Balance: balance,
		})
	}
	if _, err := m.collector.Collect(tick, wealth); err != nil {
		return err
	}
	return nil
}

// Agents returns the agents ordered by their ID.
func (m *Model) Agents() []*Agent {
	res := make([]*Agent, len(m.agents))
	copy(res, m.agents)
	return res
}

func (m *Model) Grid() *space.MultiGrid[*Agent] {
	return m.grid
}

func (m *Model) History() *metrics.History {
	return m.collector.History()
}

// Steps returns the number of completed ticks.
func (m *Model) Steps() int {
	return m.steps
}

func (m *Model) State() State {
	return m.state
}

func (m *Model) Ledger() ledger.Ledger {
	return m.ledger
}

func (m *Model) Config() Config {
	return m.config
}

// ExpectedSupply is the total supply minted during setup.
func (m *Model) ExpectedSupply() ledger.Amount {
	return m.config.ExpectedSupply()
}
