package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/studydesk/internal/storage"
)

const mindMapKey = "mindMapStudio"

// Canvas origin for the default root node of a new map.
const (
	rootNodeX = 400
	rootNodeY = 300
)

type mindMapEnvelope struct {
	Version         int               `json:"version"`
	MindMaps        []MindMapDocument `json:"mindMaps"`
	LastOpenedMapID string            `json:"lastOpenedMapId,omitempty"`
}

// MindMapStore owns the collection of mind-map documents and the pointer to
// the one currently open in the editor. The pointer is a weak reference: it
// is validated against the live collection on every read and re-pointed (or
// cleared) when the current document is deleted.
type MindMapStore struct {
	kv  storage.KV
	now func() time.Time

	maps      []MindMapDocument
	currentID string // "" when no document is open
}

// NewMindMapStore hydrates the document collection and last-opened pointer
// from storage.
func NewMindMapStore(kv storage.KV) *MindMapStore {
	s := &MindMapStore{kv: kv, now: time.Now}
	if raw, ok := kv.Get(mindMapKey); ok {
		var env mindMapEnvelope
		if err := json.Unmarshal([]byte(raw), &env); err == nil {
			s.maps = env.MindMaps
			s.currentID = env.LastOpenedMapID
		}
	}
	return s
}

// SetNowFunc overrides the clock used for document timestamps. Passing nil
// resets it to time.Now.
func (s *MindMapStore) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// CreateMindMap appends a new document and makes it current. When nodes is
// nil a single root node labeled with the map's name is synthesized at the
// canvas origin. Returns the new document's id.
func (s *MindMapStore) CreateMindMap(name string, nodes []MapNode, edges []MapEdge) string {
	if nodes == nil {
		nodes = []MapNode{{
			ID:    uuid.NewString(),
			X:     rootNodeX,
			Y:     rootNodeY,
			Label: name,
			Color: NodeColor("topic"),
		}}
	}

	now := s.now()
	doc := MindMapDocument{
		ID:        uuid.NewString(),
		Name:      name,
		Nodes:     nodes,
		Edges:     edges,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.maps = append(s.maps, doc)
	s.currentID = doc.ID
	s.persist()
	return doc.ID
}

// SaveMindMap replaces a document's graph content wholesale (not a merge)
// and bumps updatedAt. Edges referencing a node id absent from the supplied
// node set are dropped, so a stale editor can never persist dangling
// references. Unknown ids are a silent no-op.
func (s *MindMapStore) SaveMindMap(id string, nodes []MapNode, edges []MapEdge) {
	for i := range s.maps {
		if s.maps[i].ID != id {
			continue
		}
		s.maps[i].Nodes = nodes
		s.maps[i].Edges = compactEdges(nodes, edges)
		s.maps[i].UpdatedAt = s.now()
		s.persist()
		return
	}
}

// RenameMindMap updates a document's display name only. Unknown ids are a
// silent no-op.
func (s *MindMapStore) RenameMindMap(id, newName string) {
	for i := range s.maps {
		if s.maps[i].ID == id {
			s.maps[i].Name = newName
			s.maps[i].UpdatedAt = s.now()
			s.persist()
			return
		}
	}
}

// DeleteMindMap removes a document. If it was current, the pointer moves to
// the first surviving document, or clears when none remain.
func (s *MindMapStore) DeleteMindMap(id string) {
	for i := range s.maps {
		if s.maps[i].ID != id {
			continue
		}
		s.maps = append(s.maps[:i], s.maps[i+1:]...)
		if s.currentID == id {
			if len(s.maps) > 0 {
				s.currentID = s.maps[0].ID
			} else {
				s.currentID = ""
			}
		}
		s.persist()
		return
	}
}

// SetCurrentMap reassigns the open-document pointer. The id is not
// validated here; CurrentMap treats a stale pointer as nil.
func (s *MindMapStore) SetCurrentMap(id string) {
	s.currentID = id
	s.persist()
}

// CurrentMap resolves the open-document pointer against the live
// collection. Returns nil when the pointer is empty or stale.
func (s *MindMapStore) CurrentMap() *MindMapDocument {
	if s.currentID == "" {
		return nil
	}
	for i := range s.maps {
		if s.maps[i].ID == s.currentID {
			return &s.maps[i]
		}
	}
	return nil
}

// MindMaps returns all documents in creation order.
func (s *MindMapStore) MindMaps() []MindMapDocument {
	return s.maps
}

// compactEdges keeps only edges whose endpoints both exist in nodes.
func compactEdges(nodes []MapNode, edges []MapEdge) []MapEdge {
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
	}
	out := edges[:0:0]
	for _, e := range edges {
		if ids[e.Source] && ids[e.Target] {
			out = append(out, e)
		}
	}
	return out
}

func (s *MindMapStore) persist() {
	b, _ := json.Marshal(mindMapEnvelope{
		Version:         1,
		MindMaps:        s.maps,
		LastOpenedMapID: s.currentID,
	})
	s.kv.Set(mindMapKey, string(b))
}
