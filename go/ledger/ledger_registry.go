// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// This file provides a registry for Ledger implementations.
//
// For an implementation to be available it needs to be registered. Typically,
// this registration is part of the init code of the package providing an
// implementation. Thus, by including the implementation package, ledgers
// become available in this central registry.

// NewLedger performs a lookup for the given name (case-insensitive) in the
// registry and creates a new Ledger using the given optional configuration.
// If no configuration is provided, the implementation uses its default
// configuration. An error is returned if no factory was registered under the
// given name.
func NewLedger(name string, config ...any) (Ledger, error) {
	if len(config) > 1 {
		return nil, fmt.Errorf("invalid configuration: too many arguments")
	}
	factory := GetLedgerFactory(name)
	if factory == nil {
		return nil, fmt.Errorf("ledger not found: %s, available: %v", name, GetRegisteredLedgerNames())
	}
	c := any(nil)
	if len(config) > 0 {
		c = config[0]
	}
	return factory(c)
}

// GetLedgerFactory performs a lookup for the given name (case-insensitive)
// in the registry. The result is nil if no factory was registered under the
// given name.
func GetLedgerFactory(name string) LedgerFactory {
	ledgerRegistryLock.Lock()
	defer ledgerRegistryLock.Unlock()
	return ledgerRegistry[strings.ToLower(name)]
}

// GetAllRegisteredLedgers obtains all registered implementations.
func GetAllRegisteredLedgers() map[string]LedgerFactory {
	ledgerRegistryLock.Lock()
	defer ledgerRegistryLock.Unlock()
	return maps.Clone(ledgerRegistry)
}

// GetRegisteredLedgerNames lists the names of all registered implementations
// in alphabetical order.
func GetRegisteredLedgerNames() []string {
	names := maps.Keys(GetAllRegisteredLedgers())
	slices.Sort(names)
	return names
}

// RegisterLedgerFactory registers a new Ledger implementation to be exported
// for general use in the binary. The name is not case-sensitive. An error is
// returned if a factory was bound to the same name before, or the factory is
// nil.
func RegisterLedgerFactory(name string, factory LedgerFactory) error {
	key := strings.ToLower(name)
	if factory == nil {
		return fmt.Errorf("invalid initialization: cannot register nil-factory using `%s`", key)
	}
	ledgerRegistryLock.Lock()
	defer ledgerRegistryLock.Unlock()
	if _, found := ledgerRegistry[key]; found {
		return fmt.Errorf("invalid initialization: multiple factories registered for `%s`", key)
	}
	ledgerRegistry[key] = factory
	return nil
}

// MustRegisterLedgerFactory is like RegisterLedgerFactory but panics on
// errors. It is intended to be used by package initialization code.
func MustRegisterLedgerFactory(name string, factory LedgerFactory) {
	if err := RegisterLedgerFactory(name, factory); err != nil {
		panic(err)
	}
}

// LedgerFactory is the type of a function that creates a new Ledger using an
// implementation specific configuration.
type LedgerFactory func(config any) (Ledger, error)

// ledgerRegistry is a global registry for Ledger factories of different
// implementations and configurations.
var ledgerRegistry = map[string]LedgerFactory{}

// ledgerRegistryLock to protect access to the registry.
var ledgerRegistryLock sync.Mutex
