// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package evm

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/types"
	geth "github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/holiman/uint256"
)

// Config parameterizes the embedded EVM.
type Config struct {
	// GasLimit is the gas granted to each transaction.
	GasLimit uint64
	// ChainID is reported by the CHAINID instruction.
	ChainID uint64
	// BlockTime is the timestamp of the simulated block.
	BlockTime uint64
	// SlotCacheSize bounds the number of cached balance storage keys.
	SlotCacheSize int
}

// DefaultConfig is used if no configuration is provided to the factory.
var DefaultConfig = Config{
	GasLimit:      10_000_000,
	ChainID:       1337,
	BlockTime:     1,
	SlotCacheSize: 1 << 12,
}

func init() {
	ledger.MustRegisterLedgerFactory("evm", func(config any) (ledger.Ledger, error) {
		switch c := config.(type) {
		case nil:
			return NewLedger(DefaultConfig)
		case Config:
			return NewLedger(c)
		case *Config:
			if c == nil {
				return NewLedger(DefaultConfig)
			}
			return NewLedger(*c)
		}
		return nil, fmt.Errorf("unsupported evm ledger configuration: %T", config)
	})
}

// Ledger runs the stablecoin contract on an embedded go-ethereum EVM backed
// by an in-memory state database. Every operation is executed as an
// individual transaction of the given caller.
type Ledger struct {
	config      Config
	chainConfig params.ChainConfig
	state       *state.StateDB
	contract    *common.Address
	slots       *lru.Cache[ledger.Address, common.Hash]
	stats       ledger.Stats
	log         log.Logger
}

var (
	_ ledger.ProfilingLedger  = (*Ledger)(nil)
	_ ledger.StorageInspector = (*Ledger)(nil)
)

// NewLedger creates an EVM ledger with an empty world state. The stablecoin
// needs to be deployed before it can be used.
func NewLedger(config Config) (*Ledger, error) {
	if config.GasLimit == 0 {
		return nil, fmt.Errorf("invalid configuration: gas limit must be positive")
	}
	if config.SlotCacheSize <= 0 {
		config.SlotCacheSize = DefaultConfig.SlotCacheSize
	}
	db, err := state.New(types.EmptyRootHash, state.NewDatabase(rawdb.NewMemoryDatabase()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create state database: %w", err)
	}
	slots, err := lru.New[ledger.Address, common.Hash](config.SlotCacheSize)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		config:      config,
		chainConfig: makeChainConfig(*params.AllEthashProtocolChanges, new(big.Int).SetUint64(config.ChainID)),
		state:       db,
		slots:       slots,
		log:         log.New("ledger", "evm"),
	}, nil
}

// makeChainConfig enables all forks up to Shanghai from the genesis block on.
func makeChainConfig(baseline params.ChainConfig, chainId *big.Int) params.ChainConfig {
	shanghaiTime := uint64(0)
	chainConfig := baseline
	chainConfig.ChainID = chainId
	chainConfig.ByzantiumBlock = big.NewInt(0)
	chainConfig.IstanbulBlock = big.NewInt(0)
	chainConfig.BerlinBlock = big.NewInt(0)
	chainConfig.LondonBlock = big.NewInt(0)
	chainConfig.MergeNetsplitBlock = big.NewInt(0)
	chainConfig.ShanghaiTime = &shanghaiTime
	chainConfig.CancunTime = nil
	return chainConfig
}

// Address returns the address of the deployed contract.
func (l *Ledger) Address() (ledger.Address, error) {
	if l.contract == nil {
		return ledger.Address{}, ledger.ErrNotDeployed
	}
	return ledger.Address(*l.contract), nil
}

func (l *Ledger) Deploy(admin ledger.Address) error {
	if l.contract != nil {
		return ledger.ErrAlreadyDeployed
	}
	evm := l.newEvm(admin)
	l.prepare(admin, nil, evm)
	_, created, gasLeft, err := evm.Create(geth.AccountRef(common.Address(admin)), stableCoinCode, l.config.GasLimit, uint256.NewInt(0))
	l.stats.Transactions++
	l.stats.GasUsed += l.config.GasLimit - gasLeft
	if err != nil {
		l.stats.Reverted++
		return &ledger.ExecutionError{Method: "deploy", Reason: "contract creation failed", Err: err}
	}
	l.state.Finalise(true)
	l.contract = &created
	l.log.Debug("Deployed stablecoin", "address", created, "admin", admin, "gas", l.config.GasLimit-gasLeft)
	return nil
}

func (l *Ledger) AddMinter(minter ledger.Address, caller ledger.Address) error {
	_, err := l.transact(caller, "addMinter", common.Address(minter))
	return err
}

func (l *Ledger) Mint(to ledger.Address, amount ledger.Amount, caller ledger.Address) error {
	_, err := l.transact(caller, "mint", common.Address(to), amount.ToBig())
	return err
}

func (l *Ledger) Transfer(to ledger.Address, amount ledger.Amount, caller ledger.Address) (bool, error) {
	output, err := l.transact(caller, "transfer", common.Address(to), amount.ToBig())
	if err != nil {
		return false, err
	}
	result, err := unpackSingle("transfer", output)
	if err != nil {
		return false, &ledger.ExecutionError{Method: "transfer", Reason: "invalid result", Err: err}
	}
	success, ok := result.(bool)
	if !ok {
		return false, &ledger.ExecutionError{Method: "transfer", Reason: fmt.Sprintf("unexpected result type %T", result)}
	}
	return success, nil
}

func (l *Ledger) Burn(amount ledger.Amount, caller ledger.Address) error {
	_, err := l.transact(caller, "burn", amount.ToBig())
	return err
}

func (l *Ledger) BalanceOf(owner ledger.Address) (ledger.Amount, error) {
	return l.queryAmount("balanceOf", common.Address(owner))
}

func (l *Ledger) TotalSupply() (ledger.Amount, error) {
	return l.queryAmount("totalSupply")
}

// StoredBalanceOf reads the balance of the given owner directly from the
// contract's storage.
func (l *Ledger) StoredBalanceOf(owner ledger.Address) (ledger.Amount, error) {
	if l.contract == nil {
		return ledger.Amount{}, ledger.ErrNotDeployed
	}
	slot, found := l.slots.Get(owner)
	if !found {
		slot = balanceSlotOf(owner)
		l.slots.Add(owner, slot)
	}
	return ledger.Amount(l.state.GetState(*l.contract, slot)), nil
}

// StoredTotalSupply reads the total supply directly from the contract's
// storage.
func (l *Ledger) StoredTotalSupply() (ledger.Amount, error) {
	if l.contract == nil {
		return ledger.Amount{}, ledger.ErrNotDeployed
	}
	slot := common.Hash{}
	slot[31] = totalSupplySlot
	return ledger.Amount(l.state.GetState(*l.contract, slot)), nil
}

func (l *Ledger) Stats() ledger.Stats {
	return l.stats
}

// transact runs a state-changing call of the given contract method.
func (l *Ledger) transact(caller ledger.Address, method string, args ...any) ([]byte, error) {
	if l.contract == nil {
		return nil, ledger.ErrNotDeployed
	}
	input, err := pack(method, args...)
	if err != nil {
		return nil, &ledger.ExecutionError{Method: method, Reason: "invalid arguments", Err: err}
	}
	evm := l.newEvm(caller)
	l.prepare(caller, l.contract, evm)
	output, gasLeft, err := evm.Call(geth.AccountRef(common.Address(caller)), *l.contract, input, l.config.GasLimit, uint256.NewInt(0))
	l.stats.Transactions++
	l.stats.GasUsed += l.config.GasLimit - gasLeft
	l.state.Finalise(true)
	if err != nil {
		l.stats.Reverted++
		return nil, l.classify(method, caller, output, err)
	}
	return output, nil
}

// queryAmount runs a read-only call of a contract method returning a uint256.
func (l *Ledger) queryAmount(method string, args ...any) (ledger.Amount, error) {
	if l.contract == nil {
		return ledger.Amount{}, ledger.ErrNotDeployed
	}
	input, err := pack(method, args...)
	if err != nil {
		return ledger.Amount{}, &ledger.ExecutionError{Method: method, Reason: "invalid arguments", Err: err}
	}
	evm := l.newEvm(ledger.Address{})
	l.prepare(ledger.Address{}, l.contract, evm)
	output, gasLeft, err := evm.StaticCall(geth.AccountRef(common.Address{}), *l.contract, input, l.config.GasLimit)
	l.stats.Queries++
	l.stats.GasUsed += l.config.GasLimit - gasLeft
	if err != nil {
		l.stats.Reverted++
		return ledger.Amount{}, l.classify(method, ledger.Address{}, output, err)
	}
	result, err := unpackSingle(method, output)
	if err != nil {
		return ledger.Amount{}, &ledger.ExecutionError{Method: method, Reason: "invalid result", Err: err}
	}
	value, ok := result.(*big.Int)
	if !ok {
		return ledger.Amount{}, &ledger.ExecutionError{Method: method, Reason: fmt.Sprintf("unexpected result type %T", result)}
	}
	return ledger.AmountFromBig(value)
}

// classify converts a failed EVM execution into a ledger error. Reverts of
// the role checks become authorization errors.
func (l *Ledger) classify(method string, caller ledger.Address, output []byte, err error) error {
	if !errors.Is(err, geth.ErrExecutionReverted) {
		l.log.Warn("Stablecoin call aborted", "method", method, "caller", caller, "err", err)
		return &ledger.ExecutionError{Method: method, Reason: err.Error(), Err: err}
	}
	reason := revertReason(output)
	l.log.Debug("Stablecoin call reverted", "method", method, "caller", caller, "reason", reason)
	if reason == ledger.ReasonNotMinter || reason == ledger.ReasonNotAdmin {
		return &ledger.AuthorizationError{Method: method, Caller: caller, Reason: reason}
	}
	return &ledger.ExecutionError{Method: method, Reason: reason, Err: err}
}

func (l *Ledger) newEvm(origin ledger.Address) *geth.EVM {
	blockCtx := geth.BlockContext{
		CanTransfer: canTransferFunc,
		Transfer:    transferFunc,
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
		Coinbase:    common.Address{},
		GasLimit:    l.config.GasLimit,
		BlockNumber: big.NewInt(1),
		Time:        l.config.BlockTime,
		Difficulty:  big.NewInt(0),
		BaseFee:     big.NewInt(0),
		// Setting the random signals to geth that a post-merge revision
		// should be utilized.
		Random: &common.Hash{},
	}
	txCtx := geth.TxContext{
		Origin:   common.Address(origin),
		GasPrice: big.NewInt(0),
	}
	return geth.NewEVM(blockCtx, txCtx, l.state, &l.chainConfig, geth.Config{})
}

// prepare resets the access list and transient storage for a new transaction.
func (l *Ledger) prepare(sender ledger.Address, dst *common.Address, evm *geth.EVM) {
	rules := l.chainConfig.Rules(evm.Context.BlockNumber, true, evm.Context.Time)
	l.state.Prepare(rules, common.Address(sender), evm.Context.Coinbase, dst, geth.ActivePrecompiles(rules), nil)
}

// The stablecoin never moves native currency, so only zero-value transfers
// are permitted.
func canTransferFunc(_ geth.StateDB, _ common.Address, value *uint256.Int) bool {
	return value.IsZero()
}

func transferFunc(_ geth.StateDB, _ common.Address, _ common.Address, value *uint256.Int) {
	if !value.IsZero() {
		panic("native value transfers are not supported")
	}
}
