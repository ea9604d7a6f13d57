// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package boarddb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinBoards(t *testing.T) {
	assert := assert.New(t)

	db, err := OpenBoardDb("/nonexistent/boards.yaml")
	assert.NoError(err)

	name, ok := db.Lookup(0x3351103c)
	assert.True(ok)
	assert.Equal("Smart Array P420", name)

	_, ok = db.Lookup(0xdeadbeef)
	assert.False(ok)
}

func TestOverrideFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "boards.yaml")
	content := "boards:\n" +
		"  0xdeadbeef: Test Array X1\n" +
		"  0x3351103c: Renamed P420\n"
	assert.NoError(os.WriteFile(path, []byte(content), 0644))

	db, err := OpenBoardDb(path)
	assert.NoError(err)

	name, ok := db.Lookup(0xdeadbeef)
	assert.True(ok)
	assert.Equal("Test Array X1", name)

	// Override wins over the built-in entry
	name, _ = db.Lookup(0x3351103c)
	assert.Equal("Renamed P420", name)
}

func TestBadBoardId(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "boards.yaml")
	assert.NoError(os.WriteFile(path, []byte("boards:\n  notahexid: Bogus\n"), 0644))

	_, err := OpenBoardDb(path)
	assert.Error(err)
}
