package store

import (
	"testing"
	"time"
)

func TestCreateMindMapDefaultRoot(t *testing.T) {
	s := NewMindMapStore(newTestKV(t))

	id := s.CreateMindMap("Biology Finals", nil, nil)
	if id == "" {
		t.Fatal("expected an id")
	}

	doc := s.CurrentMap()
	if doc == nil || doc.ID != id {
		t.Fatal("new map should become current")
	}
	if doc.Name != "Biology Finals" {
		t.Fatalf("unexpected name %q", doc.Name)
	}
	if len(doc.Nodes) != 1 {
		t.Fatalf("expected a single root node, got %d", len(doc.Nodes))
	}
	root := doc.Nodes[0]
	if root.Label != "Biology Finals" {
		t.Fatalf("root should carry the map name, got %q", root.Label)
	}
	if root.X != rootNodeX || root.Y != rootNodeY {
		t.Fatalf("root not at canvas origin: (%v, %v)", root.X, root.Y)
	}
	if root.Color != NodeColor("topic") {
		t.Fatalf("root should use the topic color, got %q", root.Color)
	}
	if len(doc.Edges) != 0 {
		t.Fatalf("fresh map should have no edges, got %d", len(doc.Edges))
	}
	if doc.CreatedAt.IsZero() || !doc.UpdatedAt.Equal(doc.CreatedAt) {
		t.Fatalf("bad timestamps: %v / %v", doc.CreatedAt, doc.UpdatedAt)
	}
}

func TestCreateMindMapWithSuppliedGraph(t *testing.T) {
	s := NewMindMapStore(newTestKV(t))

	nodes := []MapNode{
		{ID: "a", Label: "Cells", Color: NodeColor("topic")},
		{ID: "b", Label: "Mitosis", Color: NodeColor("subtopic")},
	}
	edges := []MapEdge{{ID: "e1", Source: "a", Target: "b"}}

	id := s.CreateMindMap("Template", nodes, edges)
	doc := s.CurrentMap()
	if doc.ID != id || len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Fatalf("supplied graph not kept: %+v", doc)
	}
}

func TestSaveMindMapFullReplace(t *testing.T) {
	s := NewMindMapStore(newTestKV(t))
	id := s.CreateMindMap("Map", []MapNode{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
		{ID: "c", Label: "C"},
	}, []MapEdge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "b", Target: "c"},
	})

	// Save a strict subset: replace, not merge.
	s.SaveMindMap(id, []MapNode{{ID: "a", Label: "A"}}, nil)

	doc := s.CurrentMap()
	if len(doc.Nodes) != 1 || doc.Nodes[0].ID != "a" {
		t.Fatalf("save should replace nodes wholesale: %+v", doc.Nodes)
	}
	if len(doc.Edges) != 0 {
		t.Fatalf("save should replace edges wholesale: %+v", doc.Edges)
	}
}

func TestSaveMindMapDropsDanglingEdges(t *testing.T) {
	s := NewMindMapStore(newTestKV(t))
	id := s.CreateMindMap("Map", nil, nil)

	nodes := []MapNode{{ID: "a"}, {ID: "b"}}
	edges := []MapEdge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "a", Target: "ghost"},
		{ID: "e3", Source: "ghost", Target: "b"},
	}
	s.SaveMindMap(id, nodes, edges)

	doc := s.CurrentMap()
	if len(doc.Edges) != 1 || doc.Edges[0].ID != "e1" {
		t.Fatalf("dangling edges should be compacted on save: %+v", doc.Edges)
	}
}

func TestSaveMindMapBumpsUpdatedAt(t *testing.T) {
	s := NewMindMapStore(newTestKV(t))
	created := noon(2026, time.March, 10)
	s.SetNowFunc(func() time.Time { return created })
	id := s.CreateMindMap("Map", nil, nil)

	s.SetNowFunc(func() time.Time { return created.Add(time.Hour) })
	s.SaveMindMap(id, s.CurrentMap().Nodes, nil)

	doc := s.CurrentMap()
	if !doc.CreatedAt.Equal(created) {
		t.Fatalf("createdAt must not move: %v", doc.CreatedAt)
	}
	if !doc.UpdatedAt.Equal(created.Add(time.Hour)) {
		t.Fatalf("updatedAt not bumped: %v", doc.UpdatedAt)
	}
}

func TestSaveMindMapUnknownID(t *testing.T) {
	s := NewMindMapStore(newTestKV(t))
	s.CreateMindMap("Map", nil, nil)

	// Silent no-op
	s.SaveMindMap("missing", nil, nil)
	if len(s.CurrentMap().Nodes) != 1 {
		t.Fatal("save with unknown id must not touch any document")
	}
}

func TestRenameMindMap(t *testing.T) {
	s := NewMindMapStore(newTestKV(t))
	id := s.CreateMindMap("Old", nil, nil)

	s.RenameMindMap(id, "New")
	doc := s.CurrentMap()
	if doc.Name != "New" {
		t.Fatalf("expected renamed doc, got %q", doc.Name)
	}
	// Graph content untouched; root keeps the original label.
	if doc.Nodes[0].Label != "Old" {
		t.Fatalf("rename must not touch graph content, got %q", doc.Nodes[0].Label)
	}

	s.RenameMindMap("missing", "X") // no-op
	if s.CurrentMap().Name != "New" {
		t.Fatal("unknown id rename changed a document")
	}
}

func TestDeleteCurrentRepointsToSurvivor(t *testing.T) {
	s := NewMindMapStore(newTestKV(t))
	first := s.CreateMindMap("One", nil, nil)
	second := s.CreateMindMap("Two", nil, nil)
	third := s.CreateMindMap("Three", nil, nil)

	s.SetCurrentMap(second)
	s.DeleteMindMap(second)

	doc := s.CurrentMap()
	if doc == nil {
		t.Fatal("pointer should move to a survivor, not clear")
	}
	if doc.ID != first && doc.ID != third {
		t.Fatalf("pointer landed on a stale id: %q", doc.ID)
	}

	s.DeleteMindMap(first)
	s.DeleteMindMap(third)
	if s.CurrentMap() != nil {
		t.Fatal("pointer should clear once every document is gone")
	}
}

func TestDeleteNonCurrentKeepsPointer(t *testing.T) {
	s := NewMindMapStore(newTestKV(t))
	first := s.CreateMindMap("One", nil, nil)
	second := s.CreateMindMap("Two", nil, nil)

	s.SetCurrentMap(first)
	s.DeleteMindMap(second)

	if doc := s.CurrentMap(); doc == nil || doc.ID != first {
		t.Fatal("deleting a non-current document moved the pointer")
	}
}

func TestCurrentMapStalePointer(t *testing.T) {
	s := NewMindMapStore(newTestKV(t))
	s.CreateMindMap("One", nil, nil)

	// The setter does not validate; the getter must.
	s.SetCurrentMap("stale")
	if s.CurrentMap() != nil {
		t.Fatal("stale pointer should resolve to nil")
	}

	s.SetCurrentMap("")
	if s.CurrentMap() != nil {
		t.Fatal("empty pointer should resolve to nil")
	}
}

func TestMindMapRoundTrip(t *testing.T) {
	kv := newTestKV(t)

	s := NewMindMapStore(kv)
	id := s.CreateMindMap("Persist", nil, nil)
	s.SaveMindMap(id, []MapNode{
		{ID: "a", X: 1, Y: 2, Label: "A", Color: "#fff", Notes: "note", Complete: true},
		{ID: "b", X: 3, Y: 4, Label: "B", Color: "#000"},
	}, []MapEdge{{ID: "e1", Source: "a", Target: "b"}})

	s2 := NewMindMapStore(kv)
	if len(s2.MindMaps()) != 1 {
		t.Fatalf("expected 1 document after reload, got %d", len(s2.MindMaps()))
	}
	doc := s2.CurrentMap()
	if doc == nil || doc.ID != id {
		t.Fatal("lastOpenedMapId should survive reload")
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Fatalf("graph lost in round trip: %+v", doc)
	}
	want := s.CurrentMap().Nodes[0]
	got := doc.Nodes[0]
	if got != want {
		t.Fatalf("node changed in round trip:\nwant %+v\ngot  %+v", want, got)
	}
}
