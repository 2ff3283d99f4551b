// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package imock

import (
	"go.uber.org/mock/gomock"
)

// NewHostForTests creates a MockHost that answers Inventory lookups from inventory
func NewHostForTests(ctrl *gomock.Controller, inventory map[string]any) *MockHost {
	h := NewMockHost(ctrl)

	h.EXPECT().Inventory(gomock.Any()).DoAndReturn(func(key string) (any, bool) {
		v, ok := inventory[key]
		return v, ok
	}).AnyTimes()

	return h
}
