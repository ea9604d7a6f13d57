// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package boarddb maps Smart Array board IDs (PCI subsystem vendor/device
// IDs as reported by BMIC_IDENTIFY_CONTROLLER) to controller model names.

package boarddb

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Controllers handled by the hpsa driver. Board IDs match the products table
// in drivers/scsi/hpsa.c.
var builtinBoards = map[uint32]string{
	0x3241103c: "Smart Array P212",
	0x3243103c: "Smart Array P410",
	0x3245103c: "Smart Array P410i",
	0x3247103c: "Smart Array P411",
	0x3249103c: "Smart Array P812",
	0x324a103c: "Smart Array P712m",
	0x324b103c: "Smart Array P711m",
	0x3350103c: "Smart Array P222",
	0x3351103c: "Smart Array P420",
	0x3352103c: "Smart Array P421",
	0x3354103c: "Smart Array P420i",
	0x3355103c: "Smart Array P220i",
	0x1920103c: "Smart Array P430i",
	0x1921103c: "Smart Array P830i",
	0x1922103c: "Smart Array P430",
	0x1923103c: "Smart Array P431",
	0x1924103c: "Smart Array P830",
	0x1926103c: "Smart Array P731m",
	0x1928103c: "Smart Array P230i",
	0x1929103c: "Smart Array P530",
	0x21bd103c: "Smart Array P244br",
	0x21be103c: "Smart Array P741m",
	0x21bf103c: "Smart HBA H240ar",
	0x21c0103c: "Smart Array P440ar",
	0x21c2103c: "Smart Array P440",
	0x21c3103c: "Smart Array P441",
	0x21c5103c: "Smart Array P841",
	0x21c6103c: "Smart HBA H244br",
	0x21c7103c: "Smart HBA H240",
	0x21c8103c: "Smart HBA H241",
}

type BoardDb struct {
	Boards map[uint32]string
}

// Database file format:
//
//	boards:
//	  0x3351103c: Smart Array P420
type dbFile struct {
	Boards map[string]string `yaml:"boards"`
}

// OpenBoardDb returns the built-in board table, extended or overridden by the
// YAML database at path. A missing file is not an error; the built-in table
// is used as-is.
func OpenBoardDb(path string) (BoardDb, error) {
	db := BoardDb{Boards: make(map[uint32]string, len(builtinBoards))}
	for id, name := range builtinBoards {
		db.Boards[id] = name
	}

	f, err := os.Open(path)
	if err != nil {
		return db, nil
	}
	defer f.Close()

	var raw dbFile
	if err := yaml.NewDecoder(f).Decode(&raw); err != nil {
		return db, fmt.Errorf("boarddb: %s: %w", path, err)
	}

	for idStr, name := range raw.Boards {
		id, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(idStr), "0x"), 16, 32)
		if err != nil {
			return db, fmt.Errorf("boarddb: %s: bad board id %q", path, idStr)
		}
		db.Boards[uint32(id)] = name
	}

	return db, nil
}

// Lookup returns the model name for a board ID.
func (db *BoardDb) Lookup(id uint32) (string, bool) {
	name, ok := db.Boards[id]
	return name, ok
}
