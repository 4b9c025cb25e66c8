// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package ledger is a generated GoMock package.
package ledger

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockLedger is a mock of Ledger interface.
type MockLedger struct {
	ctrl     *gomock.Controller
	recorder *MockLedgerMockRecorder
}

// MockLedgerMockRecorder is the mock recorder for MockLedger.
type MockLedgerMockRecorder struct {
	mock *MockLedger
}

// NewMockLedger creates a new mock instance.
func NewMockLedger(ctrl *gomock.Controller) *MockLedger {
	mock := &MockLedger{ctrl: ctrl}
	mock.recorder = &MockLedgerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLedger) EXPECT() *MockLedgerMockRecorder {
	return m.recorder
}

// AddMinter mocks base method.
func (m *MockLedger) AddMinter(minter, caller Address) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddMinter", minter, caller)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddMinter indicates an expected call of AddMinter.
func (mr *MockLedgerMockRecorder) AddMinter(minter, caller any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddMinter", reflect.TypeOf((*MockLedger)(nil).AddMinter), minter, caller)
}

// BalanceOf mocks base method.
func (m *MockLedger) BalanceOf(owner Address) (Amount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BalanceOf", owner)
	ret0, _ := ret[0].(Amount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BalanceOf indicates an expected call of BalanceOf.
func (mr *MockLedgerMockRecorder) BalanceOf(owner any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BalanceOf", reflect.TypeOf((*MockLedger)(nil).BalanceOf), owner)
}

// Burn mocks base method.
func (m *MockLedger) Burn(amount Amount, caller Address) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Burn", amount, caller)
	ret0, _ := ret[0].(error)
	return ret0
}

// Burn indicates an expected call of Burn.
func (mr *MockLedgerMockRecorder) Burn(amount, caller any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Burn", reflect.TypeOf((*MockLedger)(nil).Burn), amount, caller)
}

// Deploy mocks base method.
func (m *MockLedger) Deploy(admin Address) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Deploy", admin)
	ret0, _ := ret[0].(error)
	return ret0
}

// Deploy indicates an expected call of Deploy.
func (mr *MockLedgerMockRecorder) Deploy(admin any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deploy", reflect.TypeOf((*MockLedger)(nil).Deploy), admin)
}

// Mint mocks base method.
func (m *MockLedger) Mint(to Address, amount Amount, caller Address) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Mint", to, amount, caller)
	ret0, _ := ret[0].(error)
	return ret0
}

// Mint indicates an expected call of Mint.
func (mr *MockLedgerMockRecorder) Mint(to, amount, caller any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Mint", reflect.TypeOf((*MockLedger)(nil).Mint), to, amount, caller)
}

// TotalSupply mocks base method.
func (m *MockLedger) TotalSupply() (Amount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TotalSupply")
	ret0, _ := ret[0].(Amount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TotalSupply indicates an expected call of TotalSupply.
func (mr *MockLedgerMockRecorder) TotalSupply() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TotalSupply", reflect.TypeOf((*MockLedger)(nil).TotalSupply))
}

// Transfer mocks base method.
func (m *MockLedger) Transfer(to Address, amount Amount, caller Address) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Transfer", to, amount, caller)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Transfer indicates an expected call of Transfer.
func (mr *MockLedgerMockRecorder) Transfer(to, amount, caller any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Transfer", reflect.TypeOf((*MockLedger)(nil).Transfer), to, amount, caller)
}

// MockStorageInspector is a mock of StorageInspector interface.
type MockStorageInspector struct {
	ctrl     *gomock.Controller
	recorder *MockStorageInspectorMockRecorder
}

// MockStorageInspectorMockRecorder is the mock recorder for MockStorageInspector.
type MockStorageInspectorMockRecorder struct {
	mock *MockStorageInspector
}

// NewMockStorageInspector creates a new mock instance.
func NewMockStorageInspector(ctrl *gomock.Controller) *MockStorageInspector {
	mock := &MockStorageInspector{ctrl: ctrl}
	mock.recorder = &MockStorageInspectorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStorageInspector) EXPECT() *MockStorageInspectorMockRecorder {
	return m.recorder
}

// StoredBalanceOf mocks base method.
func (m *MockStorageInspector) StoredBalanceOf(owner Address) (Amount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StoredBalanceOf", owner)
	ret0, _ := ret[0].(Amount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StoredBalanceOf indicates an expected call of StoredBalanceOf.
func (mr *MockStorageInspectorMockRecorder) StoredBalanceOf(owner any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StoredBalanceOf", reflect.TypeOf((*MockStorageInspector)(nil).StoredBalanceOf), owner)
}

// StoredTotalSupply mocks base method.
func (m *MockStorageInspector) StoredTotalSupply() (Amount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StoredTotalSupply")
	ret0, _ := ret[0].(Amount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StoredTotalSupply indicates an expected call of StoredTotalSupply.
func (mr *MockStorageInspectorMockRecorder) StoredTotalSupply() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StoredTotalSupply", reflect.TypeOf((*MockStorageInspector)(nil).StoredTotalSupply))
}

// MockProfilingLedger is a mock of ProfilingLedger interface.
type MockProfilingLedger struct {
	ctrl     *gomock.Controller
	recorder *MockProfilingLedgerMockRecorder
}

// MockProfilingLedgerMockRecorder is the mock recorder for MockProfilingLedger.
type MockProfilingLedgerMockRecorder struct {
	mock *MockProfilingLedger
}

// NewMockProfilingLedger creates a new mock instance.
func NewMockProfilingLedger(ctrl *gomock.Controller) *MockProfilingLedger {
	mock := &MockProfilingLedger{ctrl: ctrl}
	mock.recorder = &MockProfilingLedgerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockProfilingLedger) EXPECT() *MockProfilingLedgerMockRecorder {
	return m.recorder
}

// AddMinter mocks base method.
func (m *MockProfilingLedger) AddMinter(minter, caller Address) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddMinter", minter, caller)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddMinter indicates an expected call of AddMinter.
func (mr *MockProfilingLedgerMockRecorder) AddMinter(minter, caller any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddMinter", reflect.TypeOf((*MockProfilingLedger)(nil).AddMinter), minter, caller)
}

// BalanceOf mocks base method.
func (m *MockProfilingLedger) BalanceOf(owner Address) (Amount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BalanceOf", owner)
	ret0, _ := ret[0].(Amount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BalanceOf indicates an expected call of BalanceOf.
func (mr *MockProfilingLedgerMockRecorder) BalanceOf(owner any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BalanceOf", reflect.TypeOf((*MockProfilingLedger)(nil).BalanceOf), owner)
}

// Burn mocks base method.
func (m *MockProfilingLedger) Burn(amount Amount, caller Address) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Burn", amount, caller)
	ret0, _ := ret[0].(error)
	return ret0
}

// Burn indicates an expected call of Burn.
func (mr *MockProfilingLedgerMockRecorder) Burn(amount, caller any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Burn", reflect.TypeOf((*MockProfilingLedger)(nil).Burn), amount, caller)
}

// Deploy mocks base method.
func (m *MockProfilingLedger) Deploy(admin Address) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Deploy", admin)
	ret0, _ := ret[0].(error)
	return ret0
}

// Deploy indicates an expected call of Deploy.
func (mr *MockProfilingLedgerMockRecorder) Deploy(admin any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deploy", reflect.TypeOf((*MockProfilingLedger)(nil).Deploy), admin)
}

// Mint mocks base method.
func (m *MockProfilingLedger) Mint(to Address, amount Amount, caller Address) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Mint", to, amount, caller)
	ret0, _ := ret[0].(error)
	return ret0
}

// Mint indicates an expected call of Mint.
func (mr *MockProfilingLedgerMockRecorder) Mint(to, amount, caller any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Mint", reflect.TypeOf((*MockProfilingLedger)(nil).Mint), to, amount, caller)
}

// Stats mocks base method.
func (m *MockProfilingLedger) Stats() Stats {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Stats")
	ret0, _ := ret[0].(Stats)
	return ret0
}

// Stats indicates an expected call of Stats.
func (mr *MockProfilingLedgerMockRecorder) Stats() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Stats", reflect.TypeOf((*MockProfilingLedger)(nil).Stats))
}

// TotalSupply mocks base method.
func (m *MockProfilingLedger) TotalSupply() (Amount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TotalSupply")
	ret0, _ := ret[0].(Amount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TotalSupply indicates an expected call of TotalSupply.
func (mr *MockProfilingLedgerMockRecorder) TotalSupply() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TotalSupply", reflect.TypeOf((*MockProfilingLedger)(nil).TotalSupply))
}

// Transfer mocks base method.
func (m *MockProfilingLedger) Transfer(to Address, amount Amount, caller Address) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Transfer", to, amount, caller)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Transfer indicates an expected call of Transfer.
func (mr *MockProfilingLedgerMockRecorder) Transfer(to, amount, caller any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Transfer", reflect.TypeOf((*MockProfilingLedger)(nil).Transfer), to, amount, caller)
}
