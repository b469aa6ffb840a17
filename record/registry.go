// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package record

import "fmt"

// Record types of the drawing (escher) layer.
const (
	TypeDggContainer    uint16 = 0xF000
	TypeBStoreContainer uint16 = 0xF001
	TypeDgContainer     uint16 = 0xF002
	TypeSpgrContainer   uint16 = 0xF003
	TypeSpContainer     uint16 = 0xF004
	TypeSolverContainer uint16 = 0xF005
	TypeDgg             uint16 = 0xF006
	TypeBSE             uint16 = 0xF007
	TypeDg              uint16 = 0xF008
	TypeSpgr            uint16 = 0xF009
	TypeSp              uint16 = 0xF00A
	TypeOpt             uint16 = 0xF00B
	TypeTextbox         uint16 = 0xF00C
	TypeClientTextbox   uint16 = 0xF00D
	TypeAnchor          uint16 = 0xF00E
	TypeChildAnchor     uint16 = 0xF00F
	TypeClientAnchor    uint16 = 0xF010
	TypeClientData      uint16 = 0xF011
	TypeSplitMenuColors uint16 = 0xF11E
)

// Record types of the document stream that the drawing layer nests inside.
const (
	TypeDocument         uint16 = 0x03E8
	TypeDocumentAtom     uint16 = 0x03E9
	TypeSlide            uint16 = 0x03EE
	TypeSlideAtom        uint16 = 0x03EF
	TypeNotes            uint16 = 0x03F0
	TypeEnvironment      uint16 = 0x03F2
	TypeSlidePersistAtom uint16 = 0x03F3
	TypeMainMaster       uint16 = 0x03F8
	TypeSlideShowInfo    uint16 = 0x03F9
	TypePPDrawingGroup   uint16 = 0x040B
	TypePPDrawing        uint16 = 0x040C
	TypeList             uint16 = 0x07D0
	TypeSlideListWithText uint16 = 0x0FF0
	TypeUserEditAtom     uint16 = 0x0FF5
	TypePersistPtrHolder uint16 = 0x1772
)

// knownContainers lists types that hold child records even though their
// wire headers do not all carry the 0xF version marker.
var knownContainers = map[uint16]bool{
	TypeDggContainer:      true,
	TypeBStoreContainer:   true,
	TypeDgContainer:       true,
	TypeSpgrContainer:     true,
	TypeSpContainer:       true,
	TypeSolverContainer:   true,
	TypeDocument:          true,
	TypeSlide:             true,
	TypeNotes:             true,
	TypeEnvironment:       true,
	TypeMainMaster:        true,
	TypePPDrawingGroup:    true,
	TypePPDrawing:         true,
	TypeList:              true,
	TypeSlideListWithText: true,
}

var typeNames = map[uint16]string{
	TypeDggContainer:      "DggContainer",
	TypeBStoreContainer:   "BStoreContainer",
	TypeDgContainer:       "DgContainer",
	TypeSpgrContainer:     "SpgrContainer",
	TypeSpContainer:       "SpContainer",
	TypeSolverContainer:   "SolverContainer",
	TypeDgg:               "Dgg",
	TypeBSE:               "BSE",
	TypeDg:                "Dg",
	TypeSpgr:              "Spgr",
	TypeSp:                "Sp",
	TypeOpt:               "Opt",
	TypeTextbox:           "Textbox",
	TypeClientTextbox:     "ClientTextbox",
	TypeAnchor:            "Anchor",
	TypeChildAnchor:       "ChildAnchor",
	TypeClientAnchor:      "ClientAnchor",
	TypeClientData:        "ClientData",
	TypeSplitMenuColors:   "SplitMenuColors",
	TypeDocument:          "Document",
	TypeDocumentAtom:      "DocumentAtom",
	TypeSlide:             "Slide",
	TypeSlideAtom:         "SlideAtom",
	TypeNotes:             "Notes",
	TypeEnvironment:       "Environment",
	TypeSlidePersistAtom:  "SlidePersistAtom",
	TypeMainMaster:        "MainMaster",
	TypeSlideShowInfo:     "SlideShowInfo",
	TypePPDrawingGroup:    "PPDrawingGroup",
	TypePPDrawing:         "PPDrawing",
	TypeList:              "List",
	TypeSlideListWithText: "SlideListWithText",
	TypeUserEditAtom:      "UserEditAtom",
	TypePersistPtrHolder:  "PersistPtrHolder",
}

// TypeName returns a human-readable name for a record type, falling back
// to the hex value for types we have no name for.
func TypeName(t uint16) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", t)
}
