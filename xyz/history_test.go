// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryUndoRedo(t *testing.T) {
	sc := NewScene("sc")
	hs := NewHistory(sc)
	defer hs.Close()

	gp := NewGroup("g")
	ms := NewMesh("m", nil)
	sc.AddChild(gp)
	gp.AddChild(ms)
	require.Len(t, hs.Recs, 2)
	assert.Equal(t, HistoryAdd, hs.Recs[0].Action)
	assert.Equal(t, Node(ms), hs.Recs[1].Node)
	assert.True(t, hs.IsUndoAvail())
	assert.False(t, hs.IsRedoAvail())

	rec := hs.Undo()
	require.NotNil(t, rec)
	assert.Nil(t, ms.Parent())
	assert.Nil(t, ms.Scene())
	assert.Len(t, hs.Recs, 2)
	assert.True(t, hs.IsRedoAvail())

	rec = hs.Redo()
	require.NotNil(t, rec)
	assert.Equal(t, gp, ms.Parent())
	assert.Equal(t, sc, ms.Scene())
	assert.Nil(t, hs.Redo())

	ms.SetVisible(false)
	require.Len(t, hs.Recs, 3)
	assert.Equal(t, HistoryVisibility, hs.Recs[2].Action)
	hs.Undo()
	assert.True(t, ms.Visible())

	// a new edit discards the undone one
	gp.RemoveChild(ms)
	require.Len(t, hs.Recs, 3)
	assert.Equal(t, HistoryRemove, hs.Recs[2].Action)
	hs.Undo()
	assert.Equal(t, gp, ms.Parent())

	hs.Undo()
	hs.Undo()
	assert.Nil(t, gp.Parent())
	assert.False(t, hs.IsUndoAvail())
	assert.Nil(t, hs.Undo())
}

func TestHistorySuspend(t *testing.T) {
	sc := NewScene("sc")
	hs := NewHistory(sc)
	hs.Suspend()
	sc.AddChild(NewGroup("g"))
	hs.Resume()
	assert.Empty(t, hs.Recs)
	hs.Close()
	sc.AddChild(NewGroup("g2"))
	assert.Empty(t, hs.Recs)
}

func TestHistoryMaxRecords(t *testing.T) {
	sc := NewScene("sc")
	hs := NewHistory(sc)
	hs.MaxRecords = 3
	for i := 0; i < 5; i++ {
		sc.AddChild(NewGroup("g"))
	}
	assert.Len(t, hs.Recs, 3)
	assert.Equal(t, 2, hs.Idx)
}

func TestHistoryMove(t *testing.T) {
	sc := NewScene("sc")
	a := NewGroup("a")
	b := NewGroup("b")
	ms := NewMesh("m", nil)
	sc.AddChildren(a, b)
	a.AddChild(ms)
	hs := NewHistory(sc)
	defer hs.Close()

	b.AddChild(ms)
	require.Len(t, hs.Recs, 1)
	rec := hs.Recs[0]
	assert.Equal(t, HistoryMove, rec.Action)
	assert.Equal(t, "Move", rec.Action.String())
	assert.Same(t, a, rec.From)
	assert.Same(t, b, rec.Parent)

	hs.Undo()
	assert.Same(t, a, ms.Parent())
	assert.Equal(t, sc, ms.Scene())
	assert.Empty(t, b.Children())
	assert.Len(t, hs.Recs, 1)

	hs.Redo()
	assert.Same(t, b, ms.Parent())
	assert.Empty(t, a.Children())

	// an explicit remove then add stays two records
	b.RemoveChild(ms)
	a.AddChild(ms)
	require.Len(t, hs.Recs, 3)
	assert.Equal(t, HistoryRemove, hs.Recs[1].Action)
	assert.Equal(t, HistoryAdd, hs.Recs[2].Action)
}

func TestHistoryMoveBatched(t *testing.T) {
	sc := NewScene("sc")
	a := NewGroup("a")
	b := NewGroup("b")
	ms := NewMesh("m", nil)
	sc.AddChildren(a, b)
	a.AddChild(ms)
	hs := NewHistory(sc)
	defer hs.Close()

	a.BeginUpdate()
	b.AddChild(ms)
	a.EndUpdate()
	require.Len(t, hs.Recs, 1)
	assert.Equal(t, HistoryMove, hs.Recs[0].Action)

	hs.Undo()
	assert.Same(t, a, ms.Parent())
}
