// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// DefaultMaxRecords is the default limit on the number of history records.
var DefaultMaxRecords = 1000

// HistoryActions are the kinds of recorded scene edit.
type HistoryActions int32

const (
	// HistoryAdd is a node added to a group.
	HistoryAdd HistoryActions = iota

	// HistoryRemove is a node removed from a group.
	HistoryRemove

	// HistoryVisibility is a node shown or hidden.
	HistoryVisibility

	// HistoryMove is a node moved from one group to another.
	HistoryMove
)

func (ha HistoryActions) String() string {
	switch ha {
	case HistoryRemove:
		return "Remove"
	case HistoryVisibility:
		return "Visibility"
	case HistoryMove:
		return "Move"
	}
	return "Add"
}

// HistoryRecord is one undoable scene edit.
type HistoryRecord struct {

	// Action is the kind of edit.
	Action HistoryActions

	// Node is the node that was edited.
	Node Node

	// Parent is the group the node was added to or removed from.
	Parent *Group

	// From is the group a moved node was removed from.
	From *Group

	undo func()
	redo func()
}

// History records structural and visibility edits of a scene as they
// are notified, and can undo and redo them. Edits made while undoing
// or redoing, or while suspended, are not recorded.
type History struct {

	// Idx is the index of the record that will be undone next,
	// or -1 if there is nothing to undo.
	Idx int

	// Recs are the records, oldest first.
	Recs []*HistoryRecord

	// MaxRecords is the maximum number of records kept.
	MaxRecords int

	scene     *Scene
	listener  ListenerID
	suspended int

	// moving is the node being removed from moveFrom by an
	// AddChild to another group, until that add is notified.
	moving   Node
	moveFrom *Group
}

// NewHistory returns a new history recording the edits of the given scene.
func NewHistory(sc *Scene) *History {
	hs := &History{Idx: -1, MaxRecords: DefaultMaxRecords, scene: sc}
	hs.listener = sc.AddListener(hs)
	return hs
}

// Close stops recording.
func (hs *History) Close() {
	hs.scene.RemoveListener(hs.listener)
}

// Suspend stops recording until the matching [History.Resume].
func (hs *History) Suspend() {
	hs.suspended++
}

// Resume ends a [History.Suspend].
func (hs *History) Resume() {
	if hs.suspended > 0 {
		hs.suspended--
	}
}

// OnObjectChanged records the undoable part of a change.
func (hs *History) OnObjectChanged(n Node, change ObjectChange) {
	if hs.suspended > 0 {
		return
	}
	switch {
	case change.Has(ChangeChildAdd):
		gp := n.AsGroup()
		child, ok := change.Target.(Node)
		if gp == nil || !ok {
			return
		}
		if hs.moving == child {
			from := hs.moveFrom
			hs.moving, hs.moveFrom = nil, nil
			hs.saveMove(child, from, gp)
			return
		}
		hs.save(&HistoryRecord{Action: HistoryAdd, Node: child, Parent: gp,
			undo: func() { gp.RemoveChild(child) },
			redo: func() { gp.AddChild(child) },
		})
	case change.Has(ChangeChildRemove):
		gp := n.AsGroup()
		child, ok := change.Target.(Node)
		if gp == nil || !ok {
			return
		}
		// a child that still has a parent is being moved by AddChild
		if to := child.AsNode().Parent(); to != nil {
			if to == gp {
				hs.moving, hs.moveFrom = child, gp
				return
			}
			// the add to the new group was delivered first
			if hs.Idx >= 0 {
				if last := hs.Recs[hs.Idx]; last.Action == HistoryAdd && last.Node == child && last.Parent == to {
					hs.Recs = hs.Recs[:hs.Idx]
					hs.Idx--
					hs.saveMove(child, gp, to)
					return
				}
			}
		}
		hs.save(&HistoryRecord{Action: HistoryRemove, Node: child, Parent: gp,
			undo: func() { gp.AddChild(child) },
			redo: func() { gp.RemoveChild(child) },
		})
	case change.Has(ChangeVisibility) && !change.IsAny(ChangeParent):
		nb := n.AsNode()
		vis := nb.Visible()
		hs.save(&HistoryRecord{Action: HistoryVisibility, Node: n, Parent: nb.Parent(),
			undo: func() { nb.SetVisible(!vis) },
			redo: func() { nb.SetVisible(vis) },
		})
	}
}

// saveMove records a move of child from one group to another,
// undone by adding it back to the first group.
func (hs *History) saveMove(child Node, from, to *Group) {
	hs.save(&HistoryRecord{Action: HistoryMove, Node: child, Parent: to, From: from,
		undo: func() { from.AddChild(child) },
		redo: func() { to.AddChild(child) },
	})
}

// save appends a record, discarding any records that were undone.
func (hs *History) save(rec *HistoryRecord) {
	hs.Recs = append(hs.Recs[:hs.Idx+1], rec)
	if hs.MaxRecords > 0 && len(hs.Recs) > hs.MaxRecords {
		hs.Recs = hs.Recs[len(hs.Recs)-hs.MaxRecords:]
	}
	hs.Idx = len(hs.Recs) - 1
}

// IsUndoAvail returns whether there is a record to undo.
func (hs *History) IsUndoAvail() bool {
	return hs.Idx >= 0
}

// IsRedoAvail returns whether there is a record to redo.
func (hs *History) IsRedoAvail() bool {
	return hs.Idx < len(hs.Recs)-1
}

// Undo reverts the last recorded edit, returning it, or nil if there is none.
// It must not be called from inside a change notification.
func (hs *History) Undo() *HistoryRecord {
	if hs.Idx < 0 {
		return nil
	}
	rec := hs.Recs[hs.Idx]
	hs.Idx--
	hs.Suspend()
	defer hs.Resume()
	rec.undo()
	return rec
}

// Redo reapplies the last undone edit, returning it, or nil if there is none.
func (hs *History) Redo() *HistoryRecord {
	if hs.Idx >= len(hs.Recs)-1 {
		return nil
	}
	hs.Idx++
	rec := hs.Recs[hs.Idx]
	hs.Suspend()
	defer hs.Resume()
	rec.redo()
	return rec
}

// Reset clears all records.
func (hs *History) Reset() {
	hs.Recs = nil
	hs.Idx = -1
	hs.moving, hs.moveFrom = nil, nil
}
